package dfoprog

import (
	"context"
	"fmt"
	"io"
)

// ReadRange reads the registers in [start, end) in increasing offset order.
// The first failure stops the read; the registers read so far are returned
// along with the error.
func (p *Programmer) ReadRange(ctx context.Context, start, end byte) ([]Register, error) {
	var regs []Register
	for offset := int(start); offset < int(end); offset++ {
		if err := ctx.Err(); err != nil {
			return regs, err
		}
		v, err := p.transport.ReadRegister(byte(offset))
		if err != nil {
			return regs, err
		}
		regs = append(regs, Register{Offset: byte(offset), Value: v})
	}
	return regs, nil
}

// WriteDump prints title followed by one line per register.
func WriteDump(w io.Writer, title string, regs []Register) error {
	if _, err := fmt.Fprintf(w, "%s:\n", title); err != nil {
		return err
	}
	for _, r := range regs {
		if _, err := fmt.Fprintf(w, "\tByte 0x%02x: 0x%02x\n", r.Offset, r.Value); err != nil {
			return err
		}
	}
	return nil
}
