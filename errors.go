package dfoprog

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfRange is returned when a buffer does not cover the register ranges being programmed.
	ErrOutOfRange = errors.New("buffer does not cover register range")
	// ErrUnknownDriver is returned when a Config names a bus driver that does not exist.
	ErrUnknownDriver = errors.New("unknown bus driver")
)

// TransportError indicates that a bus transfer did not move the expected number of bytes.
type TransportError struct {
	Op     string
	Offset byte
	N      int
	Want   int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("I2C %s of register 0x%02x: %v", e.Op, e.Offset, e.Err)
	}
	return fmt.Sprintf("I2C %s of register 0x%02x: transferred %d bytes, want %d", e.Op, e.Offset, e.N, e.Want)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HexParseError indicates that a HEX file could not be read or contains malformed records.
type HexParseError struct {
	Path string
	Err  error
}

func (e *HexParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unable to read hex data: %v", e.Err)
	}
	return fmt.Sprintf("unable to read hex data from %s: %v", e.Path, e.Err)
}

func (e *HexParseError) Unwrap() error { return e.Err }

// BufferAllocError indicates that the register buffer for a HEX image could not be materialized.
type BufferAllocError struct {
	Size uint64
	Err  error
}

func (e *BufferAllocError) Error() string {
	return fmt.Sprintf("unable to convert hex data to a %d byte buffer: %v", e.Size, e.Err)
}

func (e *BufferAllocError) Unwrap() error { return e.Err }

// ProgramError identifies the register at which programming stopped.
type ProgramError struct {
	Offset byte
	Err    error
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("error at register 0x%02x: %v", e.Offset, e.Err)
}

func (e *ProgramError) Unwrap() error { return e.Err }

// EepromCommitError indicates a bus failure while issuing or polling an EEPROM commit.
type EepromCommitError struct {
	Err error
}

func (e *EepromCommitError) Error() string {
	return fmt.Sprintf("EEPROM commit failed: %v", e.Err)
}

func (e *EepromCommitError) Unwrap() error { return e.Err }

// EepromTimeoutError indicates that the busy flag was still set after the maximum number of polls.
type EepromTimeoutError struct {
	Polls int
}

func (e *EepromTimeoutError) Error() string {
	return fmt.Sprintf("EEPROM write still in progress after %d polls", e.Polls)
}

// ConfigError indicates invalid or conflicting options.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
