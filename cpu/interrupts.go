package cpu

import "github.com/joule-systems/pocketgb/addr"

// handleInterrupts checks whether any enabled interrupt is pending and, if
// the interrupt master enable flag is set, services the highest-priority
// one (lowest bit index wins). Its return value always reports whether an
// interrupt is pending, regardless of IME: this lets HALT wake up on a
// pending interrupt even while IME is off, without actually servicing it.
func (c *CPU) handleInterrupts() bool {
	requested := c.bus.Read(addr.IF) & c.bus.Read(addr.IE) & 0x1F
	if requested == 0 {
		return false
	}
	if !c.interruptsEnabled {
		return true
	}

	for bit := uint8(0); bit < 5; bit++ {
		if requested&(1<<bit) == 0 {
			continue
		}
		interrupt := addr.Interrupt(bit)
		c.bus.Write(addr.IF, c.bus.Read(addr.IF)&^(1<<bit))
		c.interruptsEnabled = false
		c.pushStack(c.pc)
		c.pc = interrupt.Vector()
		c.cycles += 20
		break
	}
	return true
}

// Tick executes exactly one instruction (or, while halted, one idle step)
// and returns the number of T-states it cost, after ticking every bus
// peripheral for that same span.
func (c *CPU) Tick() int {
	cyclesBefore := c.cycles

	if c.halted {
		imeBefore := c.interruptsEnabled
		pending := c.handleInterrupts()
		if pending {
			c.halted = false
			if !imeBefore {
				c.haltBug = true
			}
		} else {
			c.cycles += 4
		}
		spent := int(c.cycles - cyclesBefore)
		c.bus.TickPeripherals(spent)
		return spent
	}

	applyEI := c.eiPending
	c.eiPending = false

	op := Decode(c)
	skipAdvance := c.haltBug
	c.haltBug = false

	if !skipAdvance {
		if c.currentOpcode&0xCB00 != 0 {
			c.pc += 2
		} else {
			c.pc++
		}
	}

	cost := op(c)
	c.cycles += uint64(cost)

	if applyEI {
		c.interruptsEnabled = true
	}

	pendingBefore := c.cycles
	c.handleInterrupts()
	serviceCost := c.cycles - pendingBefore
	_ = serviceCost

	spent := int(c.cycles - cyclesBefore)
	c.bus.TickPeripherals(spent)
	return spent
}
