package cpu

import (
	"fmt"

	"github.com/tommi/go-chip8/chip8/bit"
	"github.com/tommi/go-chip8/chip8/memory"
)

// execute applies the semantics of one decoded instruction. Dispatch
// is on the nibble pattern; anything outside the defined set is a
// fatal invalid-instruction error carrying the raw opcode.
func (c *CPU) execute(in instruction) error {
	switch in.n1 {
	case 0x0:
		switch in.nnn {
		case 0x0E0: // CLS
			c.display.Clear()
		case 0x0EE: // RET
			address, err := c.pop()
			if err != nil {
				return err
			}
			c.pc = address
		default:
			// 0nnn, a machine code routine on the original hardware.
			// Ignored, like every modern interpreter does.
		}

	case 0x1: // JP addr
		c.pc = in.nnn

	case 0x2: // CALL addr
		if err := c.push(c.pc); err != nil {
			return err
		}
		c.pc = in.nnn

	case 0x3: // SE Vx, byte
		c.skip(c.v[in.x] == in.kk)

	case 0x4: // SNE Vx, byte
		c.skip(c.v[in.x] != in.kk)

	case 0x5: // SE Vx, Vy
		if in.n4 != 0x0 {
			return c.invalid(in)
		}
		c.skip(c.v[in.x] == c.v[in.y])

	case 0x6: // LD Vx, byte
		c.v[in.x] = in.kk

	case 0x7: // ADD Vx, byte
		c.v[in.x] += in.kk

	case 0x8:
		return c.executeALU(in)

	case 0x9: // SNE Vx, Vy
		if in.n4 != 0x0 {
			return c.invalid(in)
		}
		c.skip(c.v[in.x] != c.v[in.y])

	case 0xA: // LD I, addr
		c.i = in.nnn

	case 0xB: // JP V0, addr
		c.pc = in.nnn + uint16(c.v[0x0])

	case 0xC: // RND Vx, byte
		c.v[in.x] = uint8(c.rng.Intn(0x100)) & in.kk

	case 0xD: // DRW Vx, Vy, nibble
		return c.draw(in)

	case 0xE:
		switch in.kk {
		case 0x9E: // SKP Vx
			c.skip(c.keypad.IsPressed(c.v[in.x]))
		case 0xA1: // SKNP Vx
			c.skip(!c.keypad.IsPressed(c.v[in.x]))
		default:
			return c.invalid(in)
		}

	case 0xF:
		return c.executeMisc(in)
	}

	return nil
}

// executeALU handles the 8xyN register-to-register operations.
func (c *CPU) executeALU(in instruction) error {
	x, y := in.x, in.y

	switch in.n4 {
	case 0x0: // LD Vx, Vy
		c.v[x] = c.v[y]
	case 0x1: // OR Vx, Vy
		c.v[x] |= c.v[y]
	case 0x2: // AND Vx, Vy
		c.v[x] &= c.v[y]
	case 0x3: // XOR Vx, Vy
		c.v[x] ^= c.v[y]
	case 0x4: // ADD Vx, Vy
		result, carry := bit.CheckedAdd(c.v[x], c.v[y])
		c.v[x] = result
		c.setFlag(carry)
	case 0x5: // SUB Vx, Vy
		result, borrow := bit.CheckedSub(c.v[x], c.v[y])
		c.v[x] = result
		c.setFlag(!borrow)
	case 0x6: // SHR Vx
		shiftedOut := c.v[x] & 0x01
		c.v[x] >>= 1
		c.setFlag(shiftedOut != 0)
	case 0x7: // SUBN Vx, Vy
		result, borrow := bit.CheckedSub(c.v[y], c.v[x])
		c.v[x] = result
		c.setFlag(!borrow)
	case 0xE: // SHL Vx
		shiftedOut := c.v[x] & 0x80
		c.v[x] <<= 1
		c.setFlag(shiftedOut != 0)
	default:
		return c.invalid(in)
	}

	return nil
}

// executeMisc handles the FxNN operations.
func (c *CPU) executeMisc(in instruction) error {
	x := in.x

	switch in.kk {
	case 0x07: // LD Vx, DT
		c.v[x] = c.timers.Delay()

	case 0x0A: // LD Vx, K
		// Suspend until a press event arrives. Timers keep decaying
		// while the CPU waits; the scheduler owns that clock.
		if key, ok := c.keypad.TakePress(); ok {
			c.v[x] = key
			break
		}
		c.waiting = true
		c.waitReg = x

	case 0x15: // LD DT, Vx
		c.timers.SetDelay(c.v[x])

	case 0x18: // LD ST, Vx
		c.timers.SetSound(c.v[x])

	case 0x1E: // ADD I, Vx
		c.i += uint16(c.v[x])

	case 0x29: // LD F, Vx
		c.i = memory.GlyphAddress(c.v[x])

	case 0x33: // LD B, Vx
		value := c.v[x]
		if err := c.bus.Write(c.i, value/100); err != nil {
			return err
		}
		if err := c.bus.Write(c.i+1, (value/10)%10); err != nil {
			return err
		}
		if err := c.bus.Write(c.i+2, value%10); err != nil {
			return err
		}

	case 0x55: // LD [I], Vx
		for r := uint8(0); r <= x; r++ {
			if err := c.bus.Write(c.i+uint16(r), c.v[r]); err != nil {
				return err
			}
		}

	case 0x65: // LD Vx, [I]
		for r := uint8(0); r <= x; r++ {
			value, err := c.bus.Read(c.i + uint16(r))
			if err != nil {
				return err
			}
			c.v[r] = value
		}

	default:
		return c.invalid(in)
	}

	return nil
}

// draw implements Dxyn: XOR composite an n-byte sprite read from
// memory at I onto the display at (Vx, Vy), recording collisions in VF.
func (c *CPU) draw(in instruction) error {
	sprite := make([]byte, in.n)
	for row := uint16(0); row < uint16(in.n); row++ {
		value, err := c.bus.Read(c.i + row)
		if err != nil {
			return err
		}
		sprite[row] = value
	}

	collision := c.display.DrawSprite(c.v[in.x], c.v[in.y], sprite)
	c.setFlag(collision)

	return nil
}

// setFlag writes the VF flag register as 1 or 0.
func (c *CPU) setFlag(condition bool) {
	if condition {
		c.v[0xF] = 1
	} else {
		c.v[0xF] = 0
	}
}

func (c *CPU) invalid(in instruction) error {
	return fmt.Errorf("%w: %#04x at pc %#04x", ErrUnknownOpcode, in.opcode, c.pc-2)
}
