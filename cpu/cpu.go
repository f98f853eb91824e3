// Package cpu implements the Sharp LR35902 instruction set: the register
// file, the primary and CB-prefixed opcode tables, and interrupt/HALT
// handling.
package cpu

import (
	"fmt"

	"github.com/joule-systems/pocketgb/memory"
)

// ConsoleMode selects which boot-time register values the CPU resets to.
// The two consoles leave slightly different values in A and the flags,
// which some games use to detect which hardware they are running on.
type ConsoleMode int

const (
	DMG ConsoleMode = iota
	CGB
)

// CPU is the Sharp LR35902 core: eight 8-bit registers (paired into
// AF/BC/DE/HL), the stack pointer, program counter, and the interrupt and
// HALT state machine.
type CPU struct {
	a, f, b, c, d, e, h, l uint8
	sp, pc                 uint16

	bus *memory.MMU

	interruptsEnabled bool
	eiPending         bool
	halted            bool
	haltBug           bool

	cycles        uint64
	currentOpcode uint16

	fault *IllegalOpcodeError
}

// IllegalOpcodeError reports that the CPU decoded an undocumented/locked
// opcode (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD).
// Real hardware hangs the address bus; this core instead executes a no-op
// and surfaces the fault so the host can decide how to react.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (c *CPU) recordFault(opcode uint8) {
	c.fault = &IllegalOpcodeError{Opcode: opcode, PC: c.pc - 1}
}

// Fault returns the most recent illegal-opcode fault, or nil if the CPU has
// never executed one since the last Reset.
func (c *CPU) Fault() *IllegalOpcodeError {
	return c.fault
}

// New creates a CPU wired to bus and reset to DMG post-boot-ROM state,
// matching the values the real boot ROM leaves behind.
func New(bus *memory.MMU) *CPU {
	cpu := &CPU{bus: bus}
	cpu.Reset(DMG)
	return cpu
}

// Reset seeds every register with the state the boot ROM leaves behind for
// the given console mode, as if execution had just jumped to 0x100.
func (c *CPU) Reset(mode ConsoleMode) {
	c.sp = 0xFFFE
	c.pc = 0x100
	c.interruptsEnabled = false
	c.eiPending = false
	c.halted = false
	c.haltBug = false
	c.cycles = 0
	c.fault = nil

	switch mode {
	case CGB:
		c.setAF(0x1180)
	default:
		c.setAF(0x01B0)
	}
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
}

// Cycles returns the total number of T-states executed since the last Reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// PC returns the current program counter, mainly for debugger/CLI use.
func (c *CPU) PC() uint16 {
	return c.pc
}

// Halted reports whether the CPU is in the HALT low-power state.
func (c *CPU) Halted() bool {
	return c.halted
}
