//go:build !linux
// +build !linux

package dfoprog

import (
	"io"
	"runtime"

	"github.com/pkg/errors"
)

func openDevfs(path string, addr byte) (io.ReadWriteCloser, error) {
	return nil, errors.Errorf("the %s driver is not supported on %s, use %s", DriverDevfs, runtime.GOOS, DriverPeriph)
}
