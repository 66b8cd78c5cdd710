package dfoprog

import (
	"io"
)

type frameTransport struct {
	rw io.ReadWriter
}

// NewTransport creates a Transport that frames register commands over rw.
// rw must already be bound to the chip's slave address; each Write is one bus
// write transaction and each Read is one bus read transaction.
func NewTransport(rw io.ReadWriter) Transport {
	return &frameTransport{rw: rw}
}

func (t *frameTransport) send(op string, cmd Command) error {
	tx := cmd.Bytes()
	n, err := t.rw.Write(tx)
	if err != nil || n != len(tx) {
		return &TransportError{Op: op, Offset: cmd.Offset, N: n, Want: len(tx), Err: err}
	}
	return nil
}

func (t *frameTransport) WriteRegister(offset, value byte) error {
	if err := t.send("write", NewWriteCommand(offset, value)); err != nil {
		return err
	}
	pkgLog.Debugf("wrote register 0x%02x = 0x%02x", offset, value)
	return nil
}

func (t *frameTransport) ReadRegister(offset byte) (byte, error) {
	if err := t.send("write", NewReadCommand(offset)); err != nil {
		return 0, err
	}

	var data [1]byte
	n, err := t.rw.Read(data[:])
	if err != nil || n != len(data) {
		return 0, &TransportError{Op: "read", Offset: offset, N: n, Want: len(data), Err: err}
	}
	pkgLog.Debugf("read register 0x%02x = 0x%02x", offset, data[0])
	return data[0], nil
}
