package dfoprog

import (
	"github.com/pkg/errors"
)

var errBus = errors.New("bus error")

// simChip simulates the chip's register file behind an i2c-dev node. A one
// byte write selects the register returned by the next read; a two byte write
// stores a register.
type simChip struct {
	regs [offsetMask + 1]byte
	ptr  byte

	// writes records every register write in order.
	writes []Register
	// statusReads counts reads of RegStatus.
	statusReads int

	// busyReads is the number of status reads reporting busy after a commit.
	busyReads int
	busy      int

	failWrite map[byte]bool
	failRead  bool
	// failReadAt fails reads of the given registers.
	failReadAt map[byte]bool
	// readOffsets records the register of every successful read.
	readOffsets []byte
}

func newSimChip() *simChip {
	return &simChip{failWrite: map[byte]bool{}, failReadAt: map[byte]bool{}}
}

func (c *simChip) Write(p []byte) (int, error) {
	if len(p) == 0 || p[0]&commandByte == 0 {
		return 0, errors.New("block commands not supported")
	}
	offset := p[0] & offsetMask
	switch len(p) {
	case 1:
		c.ptr = offset
		return 1, nil
	case 2:
		if c.failWrite[offset] {
			return 0, errBus
		}
		c.writes = append(c.writes, Register{Offset: offset, Value: p[1]})
		if offset == RegEEPROMCommand && p[1] == EEPROMWrite {
			c.busy = c.busyReads
		}
		c.regs[offset] = p[1]
		return 2, nil
	default:
		return 0, errors.Errorf("unexpected %d byte frame", len(p))
	}
}

func (c *simChip) Read(p []byte) (int, error) {
	if c.failRead || c.failReadAt[c.ptr] {
		return 0, errBus
	}
	if len(p) == 0 {
		return 0, nil
	}
	v := c.regs[c.ptr]
	if c.ptr == RegStatus {
		c.statusReads++
		if c.busy > 0 {
			c.busy--
			v |= StatusEEPROMBusy
		}
	}
	p[0] = v
	c.readOffsets = append(c.readOffsets, c.ptr)
	return 1, nil
}

func (c *simChip) Close() error { return nil }

func (c *simChip) writtenOffsets() []byte {
	var offsets []byte
	for _, w := range c.writes {
		offsets = append(offsets, w.Offset)
	}
	return offsets
}
