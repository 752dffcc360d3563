package chip8

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tommi/go-chip8/chip8/cpu"
	"github.com/tommi/go-chip8/chip8/input"
	"github.com/tommi/go-chip8/chip8/memory"
	"github.com/tommi/go-chip8/chip8/timer"
	"github.com/tommi/go-chip8/chip8/video"
)

const (
	// TimerRate is the fixed rate of the delay/sound timers in Hz.
	TimerRate = 60

	// DefaultClockRate is the default instruction rate in Hz, in the
	// range the original interpreters ran at. It is configurable and
	// deliberately independent of TimerRate.
	DefaultClockRate = 700
)

// Machine wires the interpreter together: memory, CPU, display,
// keypad and timers. It owns all of the state; front-ends only read
// frame snapshots and push key events.
type Machine struct {
	cpu    *cpu.CPU
	mem    *memory.Memory
	frame  *video.FrameBuffer
	keypad *input.Keypad
	timers *timer.Unit

	clockRate int

	frameCount       uint64
	instructionCount uint64
}

// New creates a machine with no program loaded.
func New() *Machine {
	m := &Machine{
		mem:       memory.New(),
		frame:     video.NewFrameBuffer(),
		keypad:    input.NewKeypad(),
		timers:    &timer.Unit{},
		clockRate: DefaultClockRate,
	}

	m.cpu = cpu.New(m.mem, m.frame, m.keypad, m.timers)

	m.timers.SoundHandler = func(active bool) {
		slog.Debug("sound timer state changed", "active", active)
	}

	return m
}

// NewWithFile creates a machine and loads the program image at the
// given path into it.
func NewWithFile(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	m := New()
	if err := m.mem.LoadProgram(data); err != nil {
		return nil, err
	}

	slog.Info("loaded program", "path", path, "bytes", len(data))

	return m, nil
}

// SetClockRate sets the instruction rate in Hz. Rates below the timer
// rate are ignored: the machine must execute at least one instruction
// per frame.
func (m *Machine) SetClockRate(hz int) {
	if hz >= TimerRate {
		m.clockRate = hz
	}
}

// RunUntilFrame executes one frame: clockRate/TimerRate instruction
// ticks, then a single timer tick. The two clocks stay decoupled; only
// the instruction batch size changes with the configured rate. While
// the CPU waits on a key the instruction ticks are idle but the timer
// tick still lands.
func (m *Machine) RunUntilFrame() error {
	steps := m.clockRate / TimerRate

	for i := 0; i < steps; i++ {
		waiting := m.cpu.Waiting()

		if err := m.cpu.Step(); err != nil {
			return err
		}

		if !waiting {
			m.instructionCount++
		}
	}

	m.timers.Tick()
	m.frameCount++

	return nil
}

// GetCurrentFrame returns the display buffer.
func (m *Machine) GetCurrentFrame() *video.FrameBuffer {
	return m.frame
}

// HandleKey delivers a key press or release to the keypad.
func (m *Machine) HandleKey(key byte, pressed bool) {
	if pressed {
		m.keypad.Press(key)
	} else {
		m.keypad.Release(key)
	}
}

// SoundActive reports whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.timers.SoundActive()
}

// CPU exposes the processor for state inspection.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// FrameCount returns the number of completed frames.
func (m *Machine) FrameCount() uint64 {
	return m.frameCount
}

// InstructionCount returns the number of executed instructions.
func (m *Machine) InstructionCount() uint64 {
	return m.instructionCount
}
