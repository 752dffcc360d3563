package input

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad tracks the pressed state of the 16 hexadecimal keys and
// records discrete press events for the key-wait instruction. The
// machine owns it; front-end backends push events into it between
// frames.
type Keypad struct {
	pressed [KeyCount]bool

	pending    byte
	hasPending bool
}

// NewKeypad returns a keypad with no keys held.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks a key as held and records it as a discrete press event.
// Only the low nibble of the key is significant.
func (k *Keypad) Press(key byte) {
	key &= 0x0F
	k.pressed[key] = true
	k.pending = key
	k.hasPending = true
}

// Release marks a key as no longer held.
func (k *Keypad) Release(key byte) {
	k.pressed[key&0x0F] = false
}

// IsPressed reports whether a key is currently held.
func (k *Keypad) IsPressed(key byte) bool {
	return k.pressed[key&0x0F]
}

// TakePress consumes the most recent press event, if one is pending.
// The key-wait instruction uses this so that a single press resumes a
// single wait.
func (k *Keypad) TakePress() (byte, bool) {
	if !k.hasPending {
		return 0, false
	}
	k.hasPending = false
	return k.pending, true
}
