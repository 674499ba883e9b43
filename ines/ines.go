// Package ines parses iNES cartridge images into the two blobs the
// console consumes: the program ROM and the optional character ROM.
// Anything malformed aborts loading before any hardware is constructed.
package ines

import (
	"bytes"
	"fmt"
	"os"
)

const (
	kHEADER_SIZE  = 16
	kTRAINER_SIZE = 512
	kPRG_UNIT     = 16 * 1024
	kCHR_UNIT     = 8 * 1024

	kFLAGS6_TRAINER = uint8(0x04)
)

var kMAGIC = []byte("NES\x1a")

// Image holds the byte sequences sliced out of a cartridge file.
// Chr is nil for cartridges using character RAM instead of ROM.
type Image struct {
	Prg []uint8
	Chr []uint8
}

// Parse splits a raw cartridge image. The 16 byte header gives the PRG
// size in 16K units and the CHR size in 8K units; a 512 byte trainer
// (flags6 bit 2) sits between header and PRG and is skipped.
func Parse(data []uint8) (*Image, error) {
	if len(data) < kHEADER_SIZE || !bytes.Equal(data[0:4], kMAGIC) {
		return nil, fmt.Errorf("not an iNES image: bad magic header")
	}

	prgSize := kPRG_UNIT * int(data[4])
	chrSize := kCHR_UNIT * int(data[5])
	prgOffset := kHEADER_SIZE
	if data[6]&kFLAGS6_TRAINER != 0 {
		prgOffset += kTRAINER_SIZE
	}
	chrOffset := prgOffset + prgSize

	if len(data) < chrOffset+chrSize {
		return nil, fmt.Errorf("truncated iNES image: need %d bytes, have %d", chrOffset+chrSize, len(data))
	}

	img := &Image{
		Prg: data[prgOffset : prgOffset+prgSize],
	}
	if chrSize > 0 {
		img.Chr = data[chrOffset : chrOffset+chrSize]
	}
	return img, nil
}

// ParseFile reads and parses the cartridge image at path.
func ParseFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read cart image: %v", err)
	}
	return Parse(data)
}
