//go:build linux
// +build linux

package dfoprog

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// I2C_SLAVE from linux/i2c-dev.h
const ioctlI2CSlave = 0x0703

// devfsConn talks to an i2c-dev node with raw read(2) and write(2) calls, so
// that every Read and Write is exactly one bus transaction.
type devfsConn struct {
	fd int
}

func openDevfs(path string, addr byte) (*devfsConn, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open the device node %s", path)
	}
	if err := unix.IoctlSetInt(fd, ioctlI2CSlave, int(addr)); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "unable to set I2C slave address 0x%02x", addr)
	}
	return &devfsConn{fd: fd}, nil
}

func (c *devfsConn) Read(p []byte) (int, error) {
	return unix.Read(c.fd, p)
}

func (c *devfsConn) Write(p []byte) (int, error) {
	return unix.Write(c.fd, p)
}

func (c *devfsConn) Close() error {
	return unix.Close(c.fd)
}
