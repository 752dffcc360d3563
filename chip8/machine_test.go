package chip8

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommi/go-chip8/chip8/bit"
	"github.com/tommi/go-chip8/chip8/cpu"
)

// newMachineWithProgram assembles raw opcodes into a loaded machine.
func newMachineWithProgram(t *testing.T, opcodes ...uint16) *Machine {
	t.Helper()

	program := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		program = append(program, bit.High(op), bit.Low(op))
	}

	m := New()
	require.NoError(t, m.mem.LoadProgram(program))
	return m
}

func TestRunUntilFrameBatchesInstructions(t *testing.T) {
	// A tight increment loop; one frame at the default 700 Hz clock
	// runs 700/60 = 11 instructions.
	m := newMachineWithProgram(t, 0x7101, 0x1200)

	require.NoError(t, m.RunUntilFrame())

	assert.Equal(t, uint64(11), m.InstructionCount())
	assert.Equal(t, uint64(1), m.FrameCount())
}

func TestClockRateChangesBatchSize(t *testing.T) {
	m := newMachineWithProgram(t, 0x7101, 0x1200)
	m.SetClockRate(120)

	require.NoError(t, m.RunUntilFrame())

	assert.Equal(t, uint64(2), m.InstructionCount())
}

func TestClockRateBelowTimerRateIgnored(t *testing.T) {
	m := New()
	m.SetClockRate(30)

	assert.Equal(t, DefaultClockRate, m.clockRate)
}

func TestTimersDecayOncePerFrame(t *testing.T) {
	// Load the delay timer then spin; each frame must decrement it
	// exactly once regardless of the instruction rate.
	m := newMachineWithProgram(t, 0x6005, 0xF015, 0x1204)
	m.SetClockRate(700)

	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, byte(4), m.timers.Delay())

	for i := 0; i < 4; i++ {
		require.NoError(t, m.RunUntilFrame())
	}
	assert.Equal(t, byte(0), m.timers.Delay())

	// Clamped at zero.
	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, byte(0), m.timers.Delay())
}

func TestTimersKeepTickingDuringKeyWait(t *testing.T) {
	m := newMachineWithProgram(t, 0xF00A)
	m.SetClockRate(60)
	m.timers.SetDelay(3)

	require.NoError(t, m.RunUntilFrame())
	assert.True(t, m.cpu.Waiting())
	assert.Equal(t, byte(2), m.timers.Delay())

	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, byte(1), m.timers.Delay())

	m.HandleKey(0x4, true)

	require.NoError(t, m.RunUntilFrame())
	assert.False(t, m.cpu.Waiting())
	assert.Equal(t, uint8(0x4), m.cpu.V(0))
}

func TestWaitingStepsDoNotCountAsInstructions(t *testing.T) {
	m := newMachineWithProgram(t, 0xF00A)
	m.SetClockRate(700)

	require.NoError(t, m.RunUntilFrame())

	// The key-wait instruction itself, then ten idle ticks.
	assert.Equal(t, uint64(1), m.InstructionCount())
}

func TestFatalErrorSurfacesFromFrame(t *testing.T) {
	m := newMachineWithProgram(t, 0x5001)

	err := m.RunUntilFrame()
	assert.ErrorIs(t, err, cpu.ErrUnknownOpcode)
}

func TestHandleKeyDrivesSkips(t *testing.T) {
	// SKP V0 with V0=0: the skip lands only when key 0 is held.
	m := newMachineWithProgram(t, 0xE09E)
	m.SetClockRate(60)
	m.HandleKey(0x0, true)

	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, uint16(0x204), m.cpu.PC())
}

func TestSoundActive(t *testing.T) {
	m := newMachineWithProgram(t, 0x6002, 0xF018)
	m.SetClockRate(120)

	assert.False(t, m.SoundActive())

	require.NoError(t, m.RunUntilFrame())

	// Timer was set to 2 and ticked once at the frame boundary.
	assert.True(t, m.SoundActive())
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	require.NoError(t, os.WriteFile(path, []byte{0x61, 0x42}, 0644))

	m, err := NewWithFile(path)
	require.NoError(t, err)
	m.SetClockRate(60)

	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, uint8(0x42), m.cpu.V(1))
}

func TestNewWithFileMissing(t *testing.T) {
	_, err := NewWithFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)
}
