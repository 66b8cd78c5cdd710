package dfoprog

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// periphConn adapts a periph.io I2C device to the byte stream used by Transport.
type periphConn struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

func openPeriph(name string, addr byte) (*periphConn, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialise periph host drivers")
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open I2C bus %s", name)
	}
	return &periphConn{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: uint16(addr)},
	}, nil
}

func (c *periphConn) Read(p []byte) (int, error) {
	if err := c.dev.Tx(nil, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *periphConn) Write(p []byte) (int, error) {
	return c.dev.Write(p)
}

func (c *periphConn) Close() error {
	return c.bus.Close()
}
