package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the full addressable space of the machine: 4 KiB.
	Size = 0x1000

	// FontAddress is where the builtin font glyphs are stored.
	FontAddress = 0x050

	// ProgramAddress is the conventional load address: programs are
	// copied here and execution starts here.
	ProgramAddress = 0x200
)

var (
	// ErrOutOfBounds signals an access outside the 4 KiB address space.
	ErrOutOfBounds = errors.New("memory access out of bounds")

	// ErrProgramTooLarge signals a program image that does not fit
	// between ProgramAddress and the end of memory.
	ErrProgramTooLarge = errors.New("program does not fit in memory")
)

// font holds the standard hexadecimal glyphs, 5 bytes per digit.
// Programs address them through the Fx29 instruction, so the bitmaps
// must match the reference interpreters bit for bit.
var font = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the byte addressable memory of the machine. Every access
// is bounds checked: the instruction set has no legal way to reach
// outside the address space, so an out of range access is fatal.
type Memory struct {
	data [Size]byte
}

// New returns zeroed memory with the font glyphs loaded at FontAddress.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontAddress:], font[:])
	return m
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if address >= Size {
		return 0, fmt.Errorf("%w: read at %#04x", ErrOutOfBounds, address)
	}
	return m.data[address], nil
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if address >= Size {
		return fmt.Errorf("%w: write at %#04x", ErrOutOfBounds, address)
	}
	m.data[address] = value
	return nil
}

// LoadProgram copies a program image to ProgramAddress.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > Size-ProgramAddress {
		return fmt.Errorf("%w: %d bytes", ErrProgramTooLarge, len(program))
	}
	copy(m.data[ProgramAddress:], program)
	return nil
}

// GlyphAddress returns the address of the font glyph for a hex digit.
// Only the low nibble of the digit is significant.
func GlyphAddress(digit byte) uint16 {
	return FontAddress + uint16(digit&0x0F)*5
}
