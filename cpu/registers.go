package cpu

import "github.com/joule-systems/pocketgb/bit"

// Flag identifies one of the four flag bits in the F register. The low
// nibble of F is always zero; only bits 4-7 are meaningful.
type Flag uint8

const (
	carryFlag     Flag = 1 << 4
	halfCarryFlag Flag = 1 << 5
	subFlag       Flag = 1 << 6
	zeroFlag      Flag = 1 << 7
)

func (c *CPU) hasFlag(f Flag) bool {
	return c.f&uint8(f) != 0
}

func (c *CPU) setFlag(f Flag) {
	c.f |= uint8(f)
}

func (c *CPU) clearFlag(f Flag) {
	c.f &^= uint8(f)
}

func (c *CPU) setFlagIf(f Flag, cond bool) {
	if cond {
		c.setFlag(f)
	} else {
		c.clearFlag(f)
	}
}

func (c *CPU) getAF() uint16 {
	return bit.Combine(c.a, c.f)
}

func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	c.f = bit.Low(value) & 0xF0
}

func (c *CPU) getBC() uint16 {
	return bit.Combine(c.b, c.c)
}

func (c *CPU) setBC(value uint16) {
	c.b = bit.High(value)
	c.c = bit.Low(value)
}

func (c *CPU) getDE() uint16 {
	return bit.Combine(c.d, c.e)
}

func (c *CPU) setDE(value uint16) {
	c.d = bit.High(value)
	c.e = bit.Low(value)
}

func (c *CPU) getHL() uint16 {
	return bit.Combine(c.h, c.l)
}

func (c *CPU) setHL(value uint16) {
	c.h = bit.High(value)
	c.l = bit.Low(value)
}

// regPtr returns a pointer to one of the eight addressable 8-bit registers
// using the standard opcode encoding: B,C,D,E,H,L,(n/a for index 6),A.
// Index 6 addresses memory at (HL) and has no register pointer; callers
// must special-case it.
func (c *CPU) regPtr(index uint8) *uint8 {
	switch index {
	case 0:
		return &c.b
	case 1:
		return &c.c
	case 2:
		return &c.d
	case 3:
		return &c.e
	case 4:
		return &c.h
	case 5:
		return &c.l
	case 7:
		return &c.a
	default:
		return nil
	}
}

// readR8 reads one of the eight opcode-addressable 8-bit operands, routing
// index 6 through (HL) on the bus instead of a register.
func (c *CPU) readR8(index uint8) uint8 {
	if index == 6 {
		return c.bus.Read(c.getHL())
	}
	return *c.regPtr(index)
}

// writeR8 is the write-side counterpart of readR8.
func (c *CPU) writeR8(index uint8, value uint8) {
	if index == 6 {
		c.bus.Write(c.getHL(), value)
		return
	}
	*c.regPtr(index) = value
}
