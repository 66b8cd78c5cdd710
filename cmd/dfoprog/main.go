package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/amrbekhit/dfoprog"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const appVersion = "0.1.0"

func newRootCmd() *cobra.Command {
	opts := new(options)

	// Format an empty profile in YAML format as an example.
	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.Encode(dfoprog.Profile{})

	cmd := &cobra.Command{
		Use:   "dfoprog DEVICE [-a I2C_ADDR] [-d] [-e] [-f HEXFILE]",
		Short: "Configure a DFO clock generator over I2C",
		Long: "Writes the default configuration or the contents of an Intel HEX file to the\n" +
			"clock generator, optionally commits it to EEPROM and dumps the configuration\n" +
			"registers.",
		Version:       appVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), opts, args)
			var cfgErr *dfoprog.ConfigError
			if errors.As(err, &cfgErr) {
				fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.address, "address", "a", fmt.Sprintf("%02x", dfoprog.DefaultAddress), "I2C slave address in hex.")
	flags.BoolVarP(&opts.writeDefaults, "defaults", "d", false, "Write the default configuration.")
	flags.BoolVarP(&opts.writeEEPROM, "eeprom", "e", false, "Commit the configuration registers to EEPROM.")
	flags.StringVarP(&opts.hexFile, "file", "f", "", "Intel HEX file to write, cannot be combined with -d.")
	flags.StringVar(&opts.driver, "driver", dfoprog.DriverDevfs, "Bus driver, one of: "+dfoprog.DriverDevfs+", "+dfoprog.DriverPeriph)
	flags.StringVar(&opts.profile, "profile", "", "Profile yaml file. Example:\n\n"+buf.String())
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging.")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts *options, args []string) error {
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}
	dfoprog.SetLogger(log.StandardLogger())

	cfg, err := opts.config(args)
	if err != nil {
		return err
	}
	progOpts, err := loadProfile(opts.profile)
	if err != nil {
		return err
	}
	logConfig(cfg)

	dev, err := dfoprog.OpenDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	prog := dfoprog.NewProgrammer(dev, progOpts...)
	return dfoprog.Run(ctx, prog, cfg, os.Stdout)
}
