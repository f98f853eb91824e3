package cpu

// opcodeMap holds the 256 non-prefixed opcode handlers. Regular blocks (the
// 8x8 LD r,r' grid, the ALU-on-A grid, the INC/DEC/LD-immediate column, and
// the 16-bit load/inc/dec/add-HL, conditional jump/call/return, RST and
// PUSH/POP groups) are generated by loops in init(); the remaining,
// genuinely irregular opcodes are assigned individually below.
var opcodeMap [256]Opcode

// regPair16 names the four 16-bit register-pair slots used by LD rr,nn /
// INC rr / DEC rr / ADD HL,rr, in opcode-encoding order.
type regPair16 int

const (
	pairBC regPair16 = iota
	pairDE
	pairHL
	pairSP
)

func (c *CPU) getPair(p regPair16) uint16 {
	switch p {
	case pairBC:
		return c.getBC()
	case pairDE:
		return c.getDE()
	case pairHL:
		return c.getHL()
	default:
		return c.sp
	}
}

func (c *CPU) setPair(p regPair16, value uint16) {
	switch p {
	case pairBC:
		c.setBC(value)
	case pairDE:
		c.setDE(value)
	case pairHL:
		c.setHL(value)
	default:
		c.sp = value
	}
}

// stackPair16 names the four register-pair slots used by PUSH/POP, where
// the fourth slot is AF instead of SP.
func (c *CPU) getStackPair(p regPair16) uint16 {
	if p == pairSP {
		return c.getAF()
	}
	return c.getPair(p)
}

func (c *CPU) setStackPair(p regPair16, value uint16) {
	if p == pairSP {
		c.setAF(value)
		return
	}
	c.setPair(p, value)
}

// condition names the four branch conditions used by JR/JP/CALL/RET cc.
type condition int

const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

func (c *CPU) checkCondition(cc condition) bool {
	switch cc {
	case condNZ:
		return !c.hasFlag(zeroFlag)
	case condZ:
		return c.hasFlag(zeroFlag)
	case condNC:
		return !c.hasFlag(carryFlag)
	default:
		return c.hasFlag(carryFlag)
	}
}

func init() {
	buildLoadGrid()
	buildALUGrid()
	buildIncDecLDImmediateColumn()
	build16BitGroups()
	buildConditionalBranches()
	buildRST()
	buildPushPop()
	buildHandwrittenOpcodes()
}

// buildLoadGrid fills 0x40-0x7F: LD r,r' for every (dst, src) pair, except
// 0x76 which is HALT rather than LD (HL),(HL).
func buildLoadGrid() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			d, s := dst, src
			cost := 4
			if d == 6 || s == 6 {
				cost = 8
			}
			opcodeMap[opcode] = func(c *CPU) int {
				c.writeR8(d, c.readR8(s))
				return cost
			}
		}
	}
}

// buildALUGrid fills 0x80-0xBF: ADD/ADC/SUB/SBC/AND/XOR/OR/CP against A for
// every source register, plus the matching immediate-operand forms at
// 0xC6 + 8*op (ADD A,n ... CP n).
func buildALUGrid() {
	ops := []func(*CPU, uint8){
		(*CPU).addToA,
		(*CPU).adc,
		(*CPU).sub,
		(*CPU).sbc,
		(*CPU).and,
		(*CPU).xor,
		(*CPU).or8,
		(*CPU).cp,
	}
	for row := uint8(0); row < 8; row++ {
		op := ops[row]
		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 + row*8 + src
			s := src
			cost := 4
			if s == 6 {
				cost = 8
			}
			opcodeMap[opcode] = func(c *CPU) int {
				op(c, c.readR8(s))
				return cost
			}
		}
		opcodeMap[0xC6+row*8] = func(c *CPU) int {
			op(c, c.readImmediateByte())
			return 8
		}
	}
}

// or8 adapts the (*CPU).or method (named "or" already) to the ops slice's
// shared signature; Go has no issue reusing the name, this just documents
// the column it fills.
func (c *CPU) or8(value uint8) { c.or(value) }

// buildIncDecLDImmediateColumn fills the 0x04/0x05/0x06 + 8*reg column: INC
// r, DEC r, LD r,n for each of the eight registers.
func buildIncDecLDImmediateColumn() {
	for reg := uint8(0); reg < 8; reg++ {
		r := reg
		incCost, decCost, ldCost := 4, 4, 8
		if r == 6 {
			incCost, decCost, ldCost = 12, 12, 12
		}

		opcodeMap[0x04+r*8] = func(c *CPU) int {
			c.writeR8(r, c.incValue(c.readR8(r)))
			return incCost
		}
		opcodeMap[0x05+r*8] = func(c *CPU) int {
			c.writeR8(r, c.decValue(c.readR8(r)))
			return decCost
		}
		opcodeMap[0x06+r*8] = func(c *CPU) int {
			c.writeR8(r, c.readImmediateByte())
			return ldCost
		}
	}
}

// build16BitGroups fills LD rr,nn / INC rr / DEC rr / ADD HL,rr for the
// four register pairs BC, DE, HL, SP.
func build16BitGroups() {
	pairs := []regPair16{pairBC, pairDE, pairHL, pairSP}
	for i, p := range pairs {
		base := uint8(i) * 0x10
		pair := p

		opcodeMap[0x01+base] = func(c *CPU) int {
			c.setPair(pair, c.readImmediateWord())
			return 12
		}
		opcodeMap[0x03+base] = func(c *CPU) int {
			c.setPair(pair, c.getPair(pair)+1)
			return 8
		}
		opcodeMap[0x09+base] = func(c *CPU) int {
			c.addToHL(c.getPair(pair))
			return 8
		}
		opcodeMap[0x0B+base] = func(c *CPU) int {
			c.setPair(pair, c.getPair(pair)-1)
			return 8
		}
	}
}

// buildConditionalBranches fills JR/JP/CALL/RET cc for the four conditions,
// plus their unconditional counterparts.
func buildConditionalBranches() {
	conds := []condition{condNZ, condZ, condNC, condC}
	for i, cc := range conds {
		base := uint8(i) * 0x08
		cond := cc

		opcodeMap[0x20+base] = func(c *CPU) int {
			taken := c.checkCondition(cond)
			offset := int8(c.readImmediateByte())
			if taken {
				c.pc = uint16(int32(c.pc) + int32(offset))
				return 12
			}
			return 8
		}

		jpBase := uint8(i) * 0x08
		opcodeMap[0xC2+jpBase] = func(c *CPU) int {
			target := c.readImmediateWord()
			if c.checkCondition(cond) {
				c.pc = target
				return 16
			}
			return 12
		}

		opcodeMap[0xC4+jpBase] = func(c *CPU) int {
			target := c.readImmediateWord()
			if c.checkCondition(cond) {
				c.pushStack(c.pc)
				c.pc = target
				return 24
			}
			return 12
		}

		opcodeMap[0xC0+jpBase] = func(c *CPU) int {
			if c.checkCondition(cond) {
				c.pc = c.popStack()
				return 20
			}
			return 8
		}
	}

	opcodeMap[0x18] = func(c *CPU) int {
		c.jr()
		return 12
	}
	opcodeMap[0xC3] = func(c *CPU) int {
		c.pc = c.readImmediateWord()
		return 16
	}
	opcodeMap[0xCD] = func(c *CPU) int {
		target := c.readImmediateWord()
		c.pushStack(c.pc)
		c.pc = target
		return 24
	}
}

// buildRST fills the eight fixed-vector RST opcodes.
func buildRST() {
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		opcodeMap[0xC7+i*8] = func(c *CPU) int {
			c.pushStack(c.pc)
			c.pc = vector
			return 16
		}
	}
}

// buildPushPop fills PUSH/POP for BC, DE, HL, AF.
func buildPushPop() {
	pairs := []regPair16{pairBC, pairDE, pairHL, pairSP}
	for i, p := range pairs {
		base := uint8(i) * 0x10
		pair := p

		opcodeMap[0xC5+base] = func(c *CPU) int {
			c.pushStack(c.getStackPair(pair))
			return 16
		}
		opcodeMap[0xC1+base] = func(c *CPU) int {
			c.setStackPair(pair, c.popStack())
			return 12
		}
	}
}

// buildHandwrittenOpcodes assigns every opcode that doesn't fit a regular
// block: accumulator rotates, DAA/CPL/SCF/CCF, the (BC)/(DE)/(HL+-) load
// forms, I/O shorthand forms, 16-bit SP arithmetic, and control opcodes.
func buildHandwrittenOpcodes() {
	opcodeMap[0x00] = func(c *CPU) int { return 4 }

	opcodeMap[0x07] = func(c *CPU) int { c.rlca(); return 4 }
	opcodeMap[0x0F] = func(c *CPU) int { c.rrca(); return 4 }
	opcodeMap[0x17] = func(c *CPU) int { c.rla(); return 4 }
	opcodeMap[0x1F] = func(c *CPU) int { c.rra(); return 4 }

	opcodeMap[0x02] = func(c *CPU) int { c.bus.Write(c.getBC(), c.a); return 8 }
	opcodeMap[0x12] = func(c *CPU) int { c.bus.Write(c.getDE(), c.a); return 8 }
	opcodeMap[0x0A] = func(c *CPU) int { c.a = c.bus.Read(c.getBC()); return 8 }
	opcodeMap[0x1A] = func(c *CPU) int { c.a = c.bus.Read(c.getDE()); return 8 }

	opcodeMap[0x22] = func(c *CPU) int {
		hl := c.getHL()
		c.bus.Write(hl, c.a)
		c.setHL(hl + 1)
		return 8
	}
	opcodeMap[0x32] = func(c *CPU) int {
		hl := c.getHL()
		c.bus.Write(hl, c.a)
		c.setHL(hl - 1)
		return 8
	}
	opcodeMap[0x2A] = func(c *CPU) int {
		hl := c.getHL()
		c.a = c.bus.Read(hl)
		c.setHL(hl + 1)
		return 8
	}
	opcodeMap[0x3A] = func(c *CPU) int {
		hl := c.getHL()
		c.a = c.bus.Read(hl)
		c.setHL(hl - 1)
		return 8
	}

	opcodeMap[0x08] = func(c *CPU) int {
		address := c.readImmediateWord()
		c.bus.Write(address, uint8(c.sp&0xFF))
		c.bus.Write(address+1, uint8(c.sp>>8))
		return 20
	}

	opcodeMap[0x10] = func(c *CPU) int {
		c.readImmediateByte() // STOP's second byte, conventionally 0x00
		return 4
	}

	opcodeMap[0x27] = func(c *CPU) int { c.daa(); return 4 }
	opcodeMap[0x2F] = func(c *CPU) int {
		c.a = ^c.a
		c.setFlag(subFlag)
		c.setFlag(halfCarryFlag)
		return 4
	}
	opcodeMap[0x37] = func(c *CPU) int {
		c.clearFlag(subFlag)
		c.clearFlag(halfCarryFlag)
		c.setFlag(carryFlag)
		return 4
	}
	opcodeMap[0x3F] = func(c *CPU) int {
		c.clearFlag(subFlag)
		c.clearFlag(halfCarryFlag)
		c.setFlagIf(carryFlag, !c.hasFlag(carryFlag))
		return 4
	}

	opcodeMap[0x76] = func(c *CPU) int {
		c.halted = true
		return 4
	}

	opcodeMap[0xE0] = func(c *CPU) int {
		offset := c.readImmediateByte()
		c.bus.Write(0xFF00+uint16(offset), c.a)
		return 12
	}
	opcodeMap[0xF0] = func(c *CPU) int {
		offset := c.readImmediateByte()
		c.a = c.bus.Read(0xFF00 + uint16(offset))
		return 12
	}
	opcodeMap[0xE2] = func(c *CPU) int {
		c.bus.Write(0xFF00+uint16(c.c), c.a)
		return 8
	}
	opcodeMap[0xF2] = func(c *CPU) int {
		c.a = c.bus.Read(0xFF00 + uint16(c.c))
		return 8
	}
	opcodeMap[0xEA] = func(c *CPU) int {
		c.bus.Write(c.readImmediateWord(), c.a)
		return 16
	}
	opcodeMap[0xFA] = func(c *CPU) int {
		c.a = c.bus.Read(c.readImmediateWord())
		return 16
	}

	opcodeMap[0xE8] = func(c *CPU) int {
		n := int8(c.readImmediateByte())
		c.sp = c.addToSP(n)
		return 16
	}
	opcodeMap[0xF8] = func(c *CPU) int {
		n := int8(c.readImmediateByte())
		c.setHL(c.addToSP(n))
		return 12
	}
	opcodeMap[0xF9] = func(c *CPU) int {
		c.sp = c.getHL()
		return 8
	}

	opcodeMap[0xF3] = func(c *CPU) int {
		c.interruptsEnabled = false
		c.eiPending = false
		return 4
	}
	opcodeMap[0xFB] = func(c *CPU) int {
		c.eiPending = true
		return 4
	}

	opcodeMap[0xC9] = func(c *CPU) int {
		c.pc = c.popStack()
		return 16
	}
	opcodeMap[0xD9] = func(c *CPU) int {
		c.pc = c.popStack()
		c.interruptsEnabled = true
		c.eiPending = false
		return 16
	}
	opcodeMap[0xE9] = func(c *CPU) int {
		c.pc = c.getHL()
		return 4
	}

	// Undocumented/illegal opcodes: real hardware locks up the CPU bus. This
	// core instead records the fault (retrievable via CPU.Fault) and treats
	// the instruction as a bare NOP, so a host can decide how to react
	// (cmd/pocketgb exits with status 2) instead of the emulator itself
	// hanging.
	for _, illegal := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		opcode := illegal
		opcodeMap[opcode] = func(c *CPU) int {
			c.recordFault(opcode)
			return 4
		}
	}
}
