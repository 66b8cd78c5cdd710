package dfoprog

import (
	"strconv"
	"strings"
)

// DefaultAddress is the factory slave address of the chip.
const DefaultAddress = 0x65

// Config describes a single programming run.
type Config struct {
	// Device node of the I2C bus, e.g. /dev/i2c-1.
	Device string
	// 7-bit slave address.
	Address byte
	// Driver selects how Device is opened, DriverDevfs when empty.
	Driver string

	WriteDefaults bool
	WriteEEPROM   bool
	// HexFile, if set, is programmed instead of the defaults.
	HexFile string
}

// NewConfig returns a Config for device with the default address and driver.
func NewConfig(device string) Config {
	return Config{
		Device:  device,
		Address: DefaultAddress,
		Driver:  DriverDevfs,
	}
}

func (c Config) driver() string {
	if c.Driver == "" {
		return DriverDevfs
	}
	return c.Driver
}

// Validate checks the configuration before any device I/O is done.
func (c Config) Validate() error {
	if c.WriteDefaults && c.HexFile != "" {
		return &ConfigError{Msg: "options -d and -f are mutually exclusive"}
	}
	if c.Device == "" {
		return &ConfigError{Field: "device", Msg: "must specify device"}
	}
	if c.Address > 0x7F {
		return &ConfigError{Field: "I2C address", Msg: "0x" + strconv.FormatUint(uint64(c.Address), 16) + " is not a 7-bit address"}
	}
	switch c.driver() {
	case DriverDevfs, DriverPeriph:
	default:
		return &ConfigError{Field: "driver", Msg: strconv.Quote(c.Driver) + " is not one of " + DriverDevfs + ", " + DriverPeriph}
	}
	return nil
}

// ParseAddress parses a hexadecimal 7-bit slave address. A 0x prefix is optional.
func ParseAddress(s string) (byte, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	addr, err := strconv.ParseUint(digits, 16, 8)
	if err != nil || digits == "" || addr > 0x7F {
		return 0, &ConfigError{Field: "I2C address", Msg: strconv.Quote(s)}
	}
	return byte(addr), nil
}
