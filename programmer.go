package dfoprog

import (
	"context"
	"time"
)

// Block is a contiguous run of register values starting at Start.
type Block struct {
	Start  byte
	Values []byte
}

// Registers returns the block as offset/value pairs in increasing offset order.
func (b Block) Registers() []Register {
	regs := make([]Register, len(b.Values))
	for i, v := range b.Values {
		regs[i] = Register{Offset: b.Start + byte(i), Value: v}
	}
	return regs
}

// Built-in default configuration.
var (
	GenericDefaults = Block{
		Start:  GenericStart,
		Values: []byte{0x01, 0xb4, 0x01, 0x02, 0x50},
	}
	PLL1Defaults = Block{
		Start: PLL1Start,
		Values: []byte{
			0x00, 0x00, 0x00, 0x00, 0xed, 0x02, 0x01, 0x01,
			0x00, 0x40, 0x02, 0x08, 0x00, 0x40, 0x02, 0x08,
		},
	}
)

// Options holds programming options.
type Options struct {
	// Delay between two reads of the EEPROM busy flag.
	PollInterval time.Duration
	// Number of busy reads after which a commit is abandoned.
	MaxPolls int

	Generic Block
	PLL1    Block
}

func defaultOptions() Options {
	return Options{
		PollInterval: 100 * time.Millisecond,
		MaxPolls:     50,
		Generic:      GenericDefaults,
		PLL1:         PLL1Defaults,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Options)

// WithPollInterval sets the delay between EEPROM busy flag reads.
func WithPollInterval(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.PollInterval = d
		}
	}
}

// WithMaxPolls bounds the number of EEPROM busy flag reads.
func WithMaxPolls(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxPolls = n
		}
	}
}

// WithGenericDefaults replaces the values written by ApplyGenericDefaults.
func WithGenericDefaults(values []byte) Option {
	return func(o *Options) {
		o.Generic = Block{Start: GenericStart, Values: append([]byte(nil), values...)}
	}
}

// WithPLL1Defaults replaces the values written by ApplyPLL1Defaults.
func WithPLL1Defaults(values []byte) Option {
	return func(o *Options) {
		o.PLL1 = Block{Start: PLL1Start, Values: append([]byte(nil), values...)}
	}
}

// Programmer applies configurations to the chip through a Transport.
type Programmer struct {
	transport Transport
	options   Options
}

// NewProgrammer creates a programmer that talks to the chip through t.
func NewProgrammer(t Transport, opts ...Option) *Programmer {
	p := &Programmer{
		transport: t,
		options:   defaultOptions(),
	}
	for _, opt := range opts {
		opt(&p.options)
	}
	return p
}

// Options returns the effective programming options.
func (p *Programmer) Options() Options {
	return p.options
}

// writeBlock writes a block one register at a time in increasing offset
// order, stopping at the first failure. The context is only checked before a
// register's command is issued.
func writeBlock(ctx context.Context, b Block, writeFunc func(offset, value byte) error) error {
	for i, v := range b.Values {
		offset := b.Start + byte(i)
		if err := ctx.Err(); err != nil {
			return &ProgramError{Offset: offset, Err: err}
		}
		if err := writeFunc(offset, v); err != nil {
			return &ProgramError{Offset: offset, Err: err}
		}
	}
	return nil
}

// checkBlock rejects a block that does not cover exactly [start, end).
func checkBlock(b Block, start, end byte) error {
	switch n := len(b.Values); {
	case b.Start != start:
		return &ProgramError{Offset: b.Start, Err: ErrOutOfRange}
	case n > int(end-start):
		return &ProgramError{Offset: end, Err: ErrOutOfRange}
	case n < int(end-start):
		return &ProgramError{Offset: start + byte(n), Err: ErrOutOfRange}
	}
	return nil
}

// ApplyGenericDefaults writes the default generic configuration to offsets 0x01-0x05.
func (p *Programmer) ApplyGenericDefaults(ctx context.Context) error {
	if err := checkBlock(p.options.Generic, GenericStart, GenericEnd); err != nil {
		return err
	}
	pkgLog.Infof("writing default generic configuration...")
	return writeBlock(ctx, p.options.Generic, p.transport.WriteRegister)
}

// ApplyPLL1Defaults writes the default PLL1 configuration to offsets 0x10-0x1F.
func (p *Programmer) ApplyPLL1Defaults(ctx context.Context) error {
	if err := checkBlock(p.options.PLL1, PLL1Start, PLL1End); err != nil {
		return err
	}
	pkgLog.Infof("writing default PLL1 configuration...")
	return writeBlock(ctx, p.options.PLL1, p.transport.WriteRegister)
}

// ApplyDefaults writes the default generic configuration followed by the default PLL1 configuration.
func (p *Programmer) ApplyDefaults(ctx context.Context) error {
	if err := p.ApplyGenericDefaults(ctx); err != nil {
		return err
	}
	return p.ApplyPLL1Defaults(ctx)
}

// ApplyBuffer writes buf[0x01:0x06] to the generic configuration and
// buf[0x10:0x20] to the PLL1 configuration. A buffer that does not cover both
// ranges is rejected before anything is written.
func (p *Programmer) ApplyBuffer(ctx context.Context, buf []byte) error {
	img := Image(buf)
	generic, err := img.Block(GenericStart, GenericEnd)
	if err != nil {
		return err
	}
	pll1, err := img.Block(PLL1Start, PLL1End)
	if err != nil {
		return err
	}

	pkgLog.Infof("writing generic configuration...")
	if err := writeBlock(ctx, generic, p.transport.WriteRegister); err != nil {
		return err
	}
	pkgLog.Infof("writing PLL1 configuration...")
	return writeBlock(ctx, pll1, p.transport.WriteRegister)
}
