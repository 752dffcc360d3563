package backend

import "github.com/tommi/go-chip8/chip8/video"

// EventType classifies input events a backend can produce.
type EventType int

const (
	// KeyPress and KeyRelease carry a keypad key (0x0-0xF).
	KeyPress EventType = iota
	KeyRelease
	// Quit asks the frame loop to stop.
	Quit
)

// InputEvent is a single event delivered by a backend after a frame.
type InputEvent struct {
	Type EventType
	Key  byte
}

// Backend represents a front-end platform (rendering + input + audio cue).
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, files, etc.)
// - Translating platform-specific input into keypad events
// - Sounding the audio cue while the sound timer runs
type Backend interface {
	// Init configures the backend. Required before calling Update.
	Init(config Config) error

	// Update renders the frame and returns any input events collected
	// since the previous frame.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down.
	Cleanup() error
}

// Config holds configuration shared by all backends.
type Config struct {
	Title string

	// SoundActive reports whether the machine's sound timer is
	// currently running. Backends poll it once per frame.
	SoundActive func() bool
}
