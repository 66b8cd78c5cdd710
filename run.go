package dfoprog

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// Run performs one invocation described by cfg: it programs either the
// default configuration or the contents of cfg.HexFile, commits to EEPROM if
// requested and finally dumps the configuration registers to out. The first
// failure aborts the remaining steps.
func Run(ctx context.Context, p *Programmer, cfg Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch {
	case cfg.HexFile != "":
		img, err := LoadHexFile(cfg.HexFile)
		if err != nil {
			return errors.Wrap(err, "failed to load hex file")
		}
		if err := dumpImage(img, out); err != nil {
			return errors.Wrap(err, "failed to write hex file")
		}
		if err := p.ApplyBuffer(ctx, img); err != nil {
			return errors.Wrap(err, "failed to write hex file")
		}
	case cfg.WriteDefaults:
		if err := p.ApplyDefaults(ctx); err != nil {
			return errors.Wrap(err, "failed to write default values")
		}
	default:
		pkgLog.Infof("no configuration source selected, registers left untouched")
	}

	if cfg.WriteEEPROM {
		if err := p.CommitEEPROM(ctx); err != nil {
			return errors.Wrap(err, "failed to write EEPROM")
		}
	}

	return p.Report(ctx, out)
}

// Report reads back and prints the generic and PLL1 configuration registers.
func (p *Programmer) Report(ctx context.Context, out io.Writer) error {
	sections := []struct {
		title      string
		start, end byte
	}{
		{"Generic configuration register", ReportGenericStart, ReportGenericEnd},
		{"PLL1 configuration register", PLL1Start, PLL1End},
	}
	for _, s := range sections {
		regs, err := p.ReadRange(ctx, s.start, s.end)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", s.title)
		}
		if err := WriteDump(out, s.title, regs); err != nil {
			return err
		}
	}
	return nil
}

func dumpImage(img Image, out io.Writer) error {
	generic, err := img.Registers(GenericStart, GenericEnd)
	if err != nil {
		return err
	}
	pll1, err := img.Registers(PLL1Start, PLL1End)
	if err != nil {
		return err
	}
	if err := WriteDump(out, "Values to write to generic configuration register", generic); err != nil {
		return err
	}
	return WriteDump(out, "Values to write to PLL1 configuration register", pll1)
}
