package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommi/go-chip8/chip8/bit"
	"github.com/tommi/go-chip8/chip8/input"
	"github.com/tommi/go-chip8/chip8/memory"
	"github.com/tommi/go-chip8/chip8/timer"
	"github.com/tommi/go-chip8/chip8/video"
)

// testMachine wires a CPU to real components with a program assembled
// from raw opcodes at the standard load address.
type testMachine struct {
	cpu    *CPU
	mem    *memory.Memory
	fb     *video.FrameBuffer
	keypad *input.Keypad
	timers *timer.Unit
}

func newTestMachine(t *testing.T, opcodes ...uint16) *testMachine {
	t.Helper()

	mem := memory.New()
	program := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		program = append(program, bit.High(op), bit.Low(op))
	}
	require.NoError(t, mem.LoadProgram(program))

	fb := video.NewFrameBuffer()
	keypad := input.NewKeypad()
	timers := &timer.Unit{}

	c := New(mem, fb, keypad, timers)
	c.rng = rand.New(rand.NewSource(1))

	return &testMachine{cpu: c, mem: mem, fb: fb, keypad: keypad, timers: timers}
}

// step runs one cycle and fails the test on any error.
func (m *testMachine) step(t *testing.T) {
	t.Helper()
	require.NoError(t, m.cpu.Step())
}

func TestFetchAdvancesPC(t *testing.T) {
	m := newTestMachine(t, 0x6005)

	assert.Equal(t, uint16(memory.ProgramAddress), m.cpu.PC())

	m.step(t)

	assert.Equal(t, uint16(memory.ProgramAddress+2), m.cpu.PC())
	assert.Equal(t, uint16(0x6005), m.cpu.Opcode())
}

func TestFetchOutOfBounds(t *testing.T) {
	// Jump to the last byte of memory: the high byte of the fetch is
	// still in bounds, the low byte is not.
	m := newTestMachine(t, 0x1FFF)
	m.step(t)

	err := m.cpu.Step()
	assert.ErrorIs(t, err, memory.ErrOutOfBounds)
}

func TestSysIsIgnored(t *testing.T) {
	m := newTestMachine(t, 0x0123, 0x6105)
	m.step(t)
	m.step(t)

	assert.Equal(t, uint8(0x05), m.cpu.V(1))
}
