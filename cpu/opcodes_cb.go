package cpu

// opcodeCBMap holds the 256 CB-prefixed opcode handlers. The entire table
// is regular: eight bit-shift/rotate operations across the eight operand
// registers (0x00-0x3F), then BIT/RES/SET across the eight bits and eight
// registers (0x40-0xFF). None of it is hand-written.
var opcodeCBMap [256]Opcode

func init() {
	buildCBShiftRotateGrid()
	buildCBBitGrid()
}

// buildCBShiftRotateGrid fills 0x00-0x3F: RLC, RRC, RL, RR, SLA, SRA, SWAP,
// SRL, each applied to every one of the eight opcode-addressable operands.
func buildCBShiftRotateGrid() {
	ops := []func(*CPU, *uint8){
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}
	for row := uint8(0); row < 8; row++ {
		op := ops[row]
		for reg := uint8(0); reg < 8; reg++ {
			opcode := row*8 + reg
			r := reg
			cost := 8
			if r == 6 {
				cost = 16
			}
			opcodeCBMap[opcode] = func(c *CPU) int {
				value := c.readR8(r)
				op(c, &value)
				c.writeR8(r, value)
				return cost
			}
		}
	}
}

// buildCBBitGrid fills 0x40-0xFF: BIT, RES, SET against every bit index and
// every operand register.
func buildCBBitGrid() {
	for bitIndex := uint8(0); bitIndex < 8; bitIndex++ {
		idx := bitIndex
		for reg := uint8(0); reg < 8; reg++ {
			r := reg

			bitCost := 8
			if r == 6 {
				bitCost = 12
			}
			opcodeCBMap[0x40+idx*8+r] = func(c *CPU) int {
				c.bit(idx, c.readR8(r))
				return bitCost
			}

			rwCost := 8
			if r == 6 {
				rwCost = 16
			}
			opcodeCBMap[0x80+idx*8+r] = func(c *CPU) int {
				value := c.readR8(r)
				c.res(idx, &value)
				c.writeR8(r, value)
				return rwCost
			}
			opcodeCBMap[0xC0+idx*8+r] = func(c *CPU) int {
				value := c.readR8(r)
				c.set(idx, &value)
				c.writeR8(r, value)
				return rwCost
			}
		}
	}
}
