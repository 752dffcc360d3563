package chip8

import "github.com/tommi/go-chip8/chip8/video"

// Emulator is the interface front-end backends run against.
type Emulator interface {
	// RunUntilFrame advances the machine by one display frame worth
	// of work: a batch of instruction-clock ticks followed by one
	// 60 Hz timer tick. Any error it returns is fatal.
	RunUntilFrame() error

	// GetCurrentFrame returns the live display buffer.
	GetCurrentFrame() *video.FrameBuffer

	// HandleKey delivers a keypad press or release event.
	HandleKey(key byte, pressed bool)

	// SoundActive reports whether the sound timer is running, for the
	// audio cue.
	SoundActive() bool
}

var _ Emulator = (*Machine)(nil)
