package dfoprog

import (
	"io"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"
)

// MaxImageSize bounds the register buffer built from a HEX file.
const MaxImageSize = 64 * 1024

// hexPadding fills addresses that no record references.
const hexPadding = 0x00

// Image is a flat register buffer built from an Intel HEX file, indexed by
// absolute register offset.
type Image []byte

// LoadHexFile loads and flattens the specified hex file.
func LoadHexFile(fileName string) (Image, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, &HexParseError{Path: fileName, Err: err}
	}
	defer file.Close()

	img, err := LoadHex(file)
	if perr, ok := err.(*HexParseError); ok {
		perr.Path = fileName
	}
	return img, err
}

// LoadHex parses Intel HEX data and returns a buffer covering every referenced
// address from 0 up to the highest one. Nothing is returned on error.
func LoadHex(r io.Reader) (Image, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, &HexParseError{Err: err}
	}

	var size uint64
	for _, segment := range mem.GetDataSegments() {
		end := uint64(segment.Address) + uint64(len(segment.Data))
		if end > size {
			size = end
		}
		pkgLog.Debugf("loaded hex segment at %X length %v", segment.Address, len(segment.Data))
	}

	switch {
	case size == 0:
		return nil, &BufferAllocError{Size: size, Err: errors.New("no data records")}
	case size > MaxImageSize:
		return nil, &BufferAllocError{Size: size, Err: errors.Errorf("exceeds %d bytes", MaxImageSize)}
	}

	return Image(mem.ToBinary(0, uint32(size), hexPadding)), nil
}

// Covers reports whether the image holds a value for every offset in [start, end).
func (img Image) Covers(start, end byte) bool {
	return int(end) <= len(img) && start <= end
}

// Block returns the values for [start, end) as a Block.
func (img Image) Block(start, end byte) (Block, error) {
	if !img.Covers(start, end) {
		return Block{}, &ProgramError{Offset: firstMissing(img, start), Err: ErrOutOfRange}
	}
	return Block{Start: start, Values: append([]byte(nil), img[start:end]...)}, nil
}

// Registers returns the values for [start, end) in increasing offset order.
func (img Image) Registers(start, end byte) ([]Register, error) {
	b, err := img.Block(start, end)
	if err != nil {
		return nil, err
	}
	return b.Registers(), nil
}

func firstMissing(img Image, start byte) byte {
	if len(img) < int(start) {
		return start
	}
	return byte(len(img))
}
