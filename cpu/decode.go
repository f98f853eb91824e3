package cpu

// Opcode is a decoded instruction handler: it performs the instruction's
// effect (immediate operands, if any, are read from PC by the handler
// itself) and returns the number of T-states consumed.
type Opcode func(*CPU) int

// Decode peeks at the opcode byte(s) at the CPU's current PC without
// mutating PC, records the resolved value (0xNN, or 0xCBNN for CB-prefixed
// instructions) in cpu.currentOpcode, and returns the handler to invoke.
// PC is advanced separately by the caller once the opcode width is known.
func Decode(c *CPU) Opcode {
	first := c.bus.Read(c.pc)
	if first != 0xCB {
		c.currentOpcode = uint16(first)
		return decode(c.currentOpcode)
	}

	second := c.bus.Read(c.pc + 1)
	c.currentOpcode = 0xCB00 | uint16(second)
	return decode(c.currentOpcode)
}

func decode(opcode uint16) Opcode {
	if opcode&0xCB00 == 0xCB00 {
		return opcodeCBMap[uint8(opcode)]
	}
	return opcodeMap[uint8(opcode)]
}
