package timer

// Unit holds the delay and sound timers. Both decay at a fixed 60 Hz
// rate, independent of the instruction clock, and clamp at zero.
type Unit struct {
	delay byte
	sound byte

	// SoundHandler, when set, is called whenever the sound timer
	// transitions between active (nonzero) and idle. The audio
	// front-end hangs off this signal; the unit produces no sound
	// itself.
	SoundHandler func(active bool)
}

// Tick applies one 60 Hz clock tick, decrementing each nonzero timer.
func (u *Unit) Tick() {
	if u.delay > 0 {
		u.delay--
	}

	if u.sound > 0 {
		u.sound--
		if u.sound == 0 && u.SoundHandler != nil {
			u.SoundHandler(false)
		}
	}
}

// Delay returns the current delay timer value.
func (u *Unit) Delay() byte {
	return u.delay
}

// SetDelay loads the delay timer.
func (u *Unit) SetDelay(value byte) {
	u.delay = value
}

// Sound returns the current sound timer value.
func (u *Unit) Sound() byte {
	return u.sound
}

// SetSound loads the sound timer.
func (u *Unit) SetSound(value byte) {
	wasActive := u.sound > 0
	u.sound = value

	if u.SoundHandler != nil && wasActive != (value > 0) {
		u.SoundHandler(value > 0)
	}
}

// SoundActive reports whether the sound timer is currently running.
func (u *Unit) SoundActive() bool {
	return u.sound > 0
}
