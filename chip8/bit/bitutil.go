package bit

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// High returns the high (MSB) part of a 16 bit number.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value)
}

// Nibble returns the 4 bit group at the given index of a 16 bit value.
// Index 0 is the most significant nibble, index 3 the least significant.
func Nibble(value uint16, index uint8) uint8 {
	shift := (3 - index) * 4
	return uint8(value>>shift) & 0xF
}

// CheckedAdd adds two 8 bit unsigned values and detects if an overflow happened.
func CheckedAdd(a, b uint8) (result uint8, overflow bool) {
	highBits := (uint16(a) + uint16(b)) & 0xFF00
	result = a + b
	overflow = highBits > 0
	return
}

// CheckedSub subtracts two 8 bit unsigned values and detects if a borrow happened.
func CheckedSub(a, b uint8) (result uint8, borrow bool) {
	highBits := (uint16(a) - uint16(b)) & 0xFF00
	result = a - b
	borrow = highBits > 0
	return
}
