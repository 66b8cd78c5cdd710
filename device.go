package dfoprog

import (
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Bus driver names accepted in Config.Driver.
const (
	DriverDevfs  = "devfs"
	DriverPeriph = "periph"
)

// Device is an open channel to a single I2C slave. It is owned by one run and
// must be closed once it is no longer in use; Close may be called more than once.
type Device struct {
	Transport

	conn      io.ReadWriteCloser
	closeOnce sync.Once
	closeErr  error
}

// NewDevice wraps an already bound connection. Most callers use OpenDevice.
func NewDevice(conn io.ReadWriteCloser) *Device {
	return &Device{
		Transport: NewTransport(conn),
		conn:      conn,
	}
}

// OpenDevice opens cfg.Device with the configured bus driver and binds it to cfg.Address.
func OpenDevice(cfg Config) (*Device, error) {
	var (
		conn io.ReadWriteCloser
		err  error
	)
	switch cfg.driver() {
	case DriverDevfs:
		conn, err = openDevfs(cfg.Device, cfg.Address)
	case DriverPeriph:
		conn, err = openPeriph(cfg.Device, cfg.Address)
	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	pkgLog.Debugf("opened %s via %s, slave address 0x%02x", cfg.Device, cfg.driver(), cfg.Address)
	return NewDevice(conn), nil
}

// Close releases the underlying device node.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.conn.Close()
	})
	return d.closeErr
}
