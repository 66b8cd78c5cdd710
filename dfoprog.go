// Package dfoprog implements the register programming protocol of an I2C
// clock generator (DFO) reachable through a Linux i2c-dev character device.
//
// The package contains three layers. Transport frames single register reads
// and writes as command byte sequences over any byte channel. Programmer uses a
// Transport to apply the built-in default configuration or an Intel HEX image,
// commit the working registers to EEPROM and read the registers back. Run ties
// these together for a single invocation described by a Config.
//
// Also included is a command line tool, found in the cmd/dfoprog directory,
// that opens and binds the device node and drives Run.
package dfoprog

// The Transport interface exposes the two register primitives of the chip.
// Implementations perform exactly one bus write per call, plus one bus read for
// ReadRegister.
type Transport interface {
	WriteRegister(offset, value byte) error
	ReadRegister(offset byte) (byte, error)
}

// Register holds the value of a single chip register.
type Register struct {
	Offset byte
	Value  byte
}

const (
	commandByte = 0x80
	offsetMask  = 0x7F
)

// Register map.
const (
	RegStatus        = 0x01
	RegEEPROMCommand = 0x06

	GenericStart = 0x01
	GenericEnd   = 0x06
	PLL1Start    = 0x10
	PLL1End      = 0x20

	// Readback covers the status register and the EEPROM command register too.
	ReportGenericStart = 0x00
	ReportGenericEnd   = 0x07
)

const (
	// EEPROMWrite is written to RegEEPROMCommand to start an EEPROM commit.
	EEPROMWrite = 0x41
	// StatusEEPROMBusy is set in RegStatus while an EEPROM write is in progress.
	StatusEEPROMBusy = 0x40
)

// Command represents a single register transaction.
type Command struct {
	Offset byte
	Value  byte
	// Write is false for the address phase of a read.
	Write bool
}

// Bytes returns the frame sent on the bus for the command.
func (c Command) Bytes() []byte {
	b := []byte{commandByte | (c.Offset & offsetMask)}
	if c.Write {
		b = append(b, c.Value)
	}
	return b
}

// NewWriteCommand returns the representation of a register write.
func NewWriteCommand(offset, value byte) Command {
	return Command{
		Offset: offset,
		Value:  value,
		Write:  true,
	}
}

// NewReadCommand returns the representation of the address phase of a register read.
func NewReadCommand(offset byte) Command {
	return Command{
		Offset: offset,
	}
}
