package main

import (
	"fmt"
	"os"

	"github.com/amrbekhit/dfoprog"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type options struct {
	address       string
	writeDefaults bool
	writeEEPROM   bool
	hexFile       string
	driver        string
	profile       string
	verbose       bool
}

// config builds and validates the run configuration. Nothing touches the
// device before this succeeds.
func (o *options) config(args []string) (dfoprog.Config, error) {
	switch {
	case len(args) == 0:
		return dfoprog.Config{}, &dfoprog.ConfigError{Field: "device", Msg: "must specify device"}
	case len(args) > 1:
		return dfoprog.Config{}, &dfoprog.ConfigError{Msg: "extra arguments detected"}
	}

	addr, err := dfoprog.ParseAddress(o.address)
	if err != nil {
		return dfoprog.Config{}, err
	}

	cfg := dfoprog.NewConfig(args[0])
	cfg.Address = addr
	cfg.Driver = o.driver
	cfg.WriteDefaults = o.writeDefaults
	cfg.WriteEEPROM = o.writeEEPROM
	cfg.HexFile = o.hexFile
	if err := cfg.Validate(); err != nil {
		return dfoprog.Config{}, err
	}
	return cfg, nil
}

func loadProfile(fileName string) ([]dfoprog.Option, error) {
	if fileName == "" {
		return nil, nil
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open profile file")
	}
	defer f.Close()

	profile, err := dfoprog.LoadProfile(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse profile file")
	}
	log.Debugf("profile: %+v", profile)
	return profile.Options(), nil
}

func logConfig(cfg dfoprog.Config) {
	log.WithFields(log.Fields{
		"device":   cfg.Device,
		"address":  fmt.Sprintf("0x%02x", cfg.Address),
		"driver":   cfg.Driver,
		"defaults": cfg.WriteDefaults,
		"eeprom":   cfg.WriteEEPROM,
		"file":     cfg.HexFile,
	}).Info("options")
}
