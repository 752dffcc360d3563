package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tommi/go-chip8/chip8/bit"
	"github.com/tommi/go-chip8/chip8/memory"
)

// Bus is the memory interface the CPU fetches from and stores to.
type Bus interface {
	Read(address uint16) (byte, error)
	Write(address uint16, value byte) error
}

// Display receives the two display instructions.
type Display interface {
	Clear()
	DrawSprite(x, y byte, sprite []byte) bool
}

// Keypad exposes held-key state for the skip instructions and discrete
// press events for the key-wait instruction.
type Keypad interface {
	IsPressed(key byte) bool
	TakePress() (byte, bool)
}

// Timers exposes the delay and sound counters to the timer
// instructions. Ticking them is not the CPU's job.
type Timers interface {
	Delay() byte
	SetDelay(value byte)
	SetSound(value byte)
}

// StackDepth is the maximum subroutine nesting.
const StackDepth = 16

var (
	// ErrUnknownOpcode signals an instruction outside the defined set.
	ErrUnknownOpcode = errors.New("invalid instruction")

	// ErrStackOverflow signals a subroutine call past StackDepth.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow signals a return with no call in flight.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// CPU holds the interpreter state: the 16 general purpose registers,
// the index register, the program counter and the call stack. All
// errors it returns are fatal; the instruction set defines no way to
// recover from any of them.
type CPU struct {
	v  [16]uint8
	i  uint16
	pc uint16

	stack [StackDepth]uint16
	sp    uint8

	currentOpcode uint16

	// waiting marks the key-wait suspension: no fetch happens until a
	// press event is delivered, at which point the key value lands in
	// v[waitReg].
	waiting bool
	waitReg uint8

	rng *rand.Rand

	bus     Bus
	display Display
	keypad  Keypad
	timers  Timers
}

// New returns a CPU with the program counter at the conventional
// program start address.
func New(bus Bus, display Display, keypad Keypad, timers Timers) *CPU {
	return &CPU{
		pc:      memory.ProgramAddress,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		bus:     bus,
		display: display,
		keypad:  keypad,
		timers:  timers,
	}
}

// Step runs a single instruction cycle: fetch, decode, execute. While
// the CPU is suspended on the key-wait instruction no fetch happens;
// a pending press event resumes it instead.
func (c *CPU) Step() error {
	if c.waiting {
		key, ok := c.keypad.TakePress()
		if !ok {
			return nil
		}
		c.v[c.waitReg] = key
		c.waiting = false
		return nil
	}

	opcode, err := c.fetch()
	if err != nil {
		return err
	}
	c.currentOpcode = opcode

	return c.execute(decode(opcode))
}

// fetch reads the two bytes at PC (big endian) and advances PC by 2.
func (c *CPU) fetch() (uint16, error) {
	high, err := c.bus.Read(c.pc)
	if err != nil {
		return 0, fmt.Errorf("fetch at %#04x: %w", c.pc, err)
	}

	low, err := c.bus.Read(c.pc + 1)
	if err != nil {
		return 0, fmt.Errorf("fetch at %#04x: %w", c.pc, err)
	}

	c.pc += 2

	return bit.Combine(high, low), nil
}

func (c *CPU) push(address uint16) error {
	if c.sp >= StackDepth {
		return fmt.Errorf("%w: call at %#04x", ErrStackOverflow, c.currentOpcode&0x0FFF)
	}
	c.stack[c.sp] = address
	c.sp++
	return nil
}

func (c *CPU) pop() (uint16, error) {
	if c.sp == 0 {
		return 0, fmt.Errorf("%w: return at pc %#04x", ErrStackUnderflow, c.pc-2)
	}
	c.sp--
	return c.stack[c.sp], nil
}

// skip advances PC over the next instruction when the condition holds.
func (c *CPU) skip(condition bool) {
	if condition {
		c.pc += 2
	}
}

// Waiting reports whether the CPU is suspended on the key-wait
// instruction.
func (c *CPU) Waiting() bool {
	return c.waiting
}

// Getters for inspecting machine state from front-ends and tests.
func (c *CPU) V(index uint8) uint8 { return c.v[index&0x0F] }
func (c *CPU) I() uint16           { return c.i }
func (c *CPU) PC() uint16          { return c.pc }
func (c *CPU) SP() uint8           { return c.sp }
func (c *CPU) Opcode() uint16      { return c.currentOpcode }
