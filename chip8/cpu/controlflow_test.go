package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommi/go-chip8/chip8/bit"
	"github.com/tommi/go-chip8/chip8/memory"
)

func TestJump(t *testing.T) {
	m := newTestMachine(t, 0x1300)

	m.step(t)

	assert.Equal(t, uint16(0x300), m.cpu.PC())
}

func TestCallReturnRoundTrip(t *testing.T) {
	m := newTestMachine(t, 0x2300) // CALL 0x300

	// Subroutine body: a load followed by RET.
	require.NoError(t, m.mem.Write(0x300, 0x61))
	require.NoError(t, m.mem.Write(0x301, 0x42))
	require.NoError(t, m.mem.Write(0x302, 0x00))
	require.NoError(t, m.mem.Write(0x303, 0xEE))

	m.step(t)
	assert.Equal(t, uint16(0x300), m.cpu.PC())
	assert.Equal(t, uint8(1), m.cpu.SP())

	m.step(t)
	m.step(t)

	// Back at the instruction right after the CALL, stack empty.
	assert.Equal(t, uint16(0x202), m.cpu.PC())
	assert.Equal(t, uint8(0), m.cpu.SP())
	assert.Equal(t, uint8(0x42), m.cpu.V(1))
}

func TestNestedCallsToCapacity(t *testing.T) {
	// A chain of CALLs, each targeting the next instruction. The
	// 16th call fills the stack; the 17th overflows it.
	opcodes := make([]uint16, StackDepth+1)
	for i := range opcodes {
		target := memory.ProgramAddress + 2*(i+1)
		opcodes[i] = 0x2000 | uint16(target)
	}

	m := newTestMachine(t, opcodes...)

	for i := 0; i < StackDepth; i++ {
		m.step(t)
	}
	assert.Equal(t, uint8(StackDepth), m.cpu.SP())

	err := m.cpu.Step()
	assert.ErrorIs(t, err, ErrStackOverflow)
}

func TestNestedReturnsUnwindInOrder(t *testing.T) {
	// A ladder of subroutines: 0x200 calls 0x300 calls 0x310 calls
	// 0x320, which returns all the way back up.
	m := newTestMachine(t, 0x2300)

	write := func(address uint16, opcode uint16) {
		require.NoError(t, m.mem.Write(address, bit.High(opcode)))
		require.NoError(t, m.mem.Write(address+1, bit.Low(opcode)))
	}
	write(0x300, 0x2310)
	write(0x310, 0x2320)
	write(0x320, 0x00EE)
	write(0x312, 0x00EE)
	write(0x302, 0x00EE)

	for i := 0; i < 3; i++ {
		m.step(t)
	}
	require.Equal(t, uint8(3), m.cpu.SP())

	// Returns come back in reverse call order.
	wantPC := []uint16{0x312, 0x302, 0x202}
	for _, want := range wantPC {
		m.step(t)
		assert.Equal(t, want, m.cpu.PC())
	}
	assert.Equal(t, uint8(0), m.cpu.SP())
}

func TestReturnWithEmptyStack(t *testing.T) {
	m := newTestMachine(t, 0x00EE)

	err := m.cpu.Step()
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func TestSkipAddsToFetchAdvance(t *testing.T) {
	// With VA=5, 3A05 at 0x200 lands PC on 0x204: one fetch advance
	// of 2 plus one skip of 2.
	taken := newTestMachine(t, 0x3A05)
	taken.cpu.v[0xA] = 5

	taken.step(t)
	assert.Equal(t, uint16(0x204), taken.cpu.PC())

	// Without the match only the fetch advance applies.
	notTaken := newTestMachine(t, 0x3A05)

	notTaken.step(t)
	assert.Equal(t, uint16(0x202), notTaken.cpu.PC())
}
