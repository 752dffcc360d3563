package cpu

import "github.com/tommi/go-chip8/chip8/bit"

// instruction is a decoded opcode, split into the fields the CHIP-8
// encoding defines. Register selectors are 4 bits wide, so x and y are
// always valid indexes into the register file.
type instruction struct {
	opcode uint16

	// the four nibbles, most significant first
	n1, n2, n3, n4 uint8

	x   uint8  // register selector, second nibble
	y   uint8  // register selector, third nibble
	n   uint8  // low nibble
	kk  uint8  // low byte
	nnn uint16 // low 12 bits
}

func decode(opcode uint16) instruction {
	n1 := bit.Nibble(opcode, 0)
	n2 := bit.Nibble(opcode, 1)
	n3 := bit.Nibble(opcode, 2)
	n4 := bit.Nibble(opcode, 3)

	return instruction{
		opcode: opcode,
		n1:     n1,
		n2:     n2,
		n3:     n3,
		n4:     n4,
		x:      n2,
		y:      n3,
		n:      n4,
		kk:     bit.Low(opcode),
		nnn:    opcode & 0x0FFF,
	}
}
