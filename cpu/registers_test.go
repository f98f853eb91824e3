package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_AFMasksLowNibble(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.setAF(0x12FF)
	assert.Equal(t, uint8(0x12), cpu.a)
	assert.Equal(t, uint8(0xF0), cpu.f)
	assert.Equal(t, uint16(0x12F0), cpu.getAF())
}

func TestRegisters_BCDEHL(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.setBC(0x1234)
	assert.Equal(t, uint16(0x1234), cpu.getBC())
	cpu.setDE(0x5678)
	assert.Equal(t, uint16(0x5678), cpu.getDE())
	cpu.setHL(0x9ABC)
	assert.Equal(t, uint16(0x9ABC), cpu.getHL())
}

func TestRegisters_flags(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.f = 0
	cpu.setFlag(zeroFlag)
	assert.True(t, cpu.hasFlag(zeroFlag))
	cpu.clearFlag(zeroFlag)
	assert.False(t, cpu.hasFlag(zeroFlag))
	cpu.setFlagIf(carryFlag, true)
	assert.True(t, cpu.hasFlag(carryFlag))
}

func TestRegisters_readWriteR8(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.b = 0x42
	assert.Equal(t, uint8(0x42), cpu.readR8(0))

	cpu.setHL(0xC000)
	cpu.writeR8(6, 0x99)
	assert.Equal(t, byte(0x99), cpu.bus.Read(0xC000))
	assert.Equal(t, uint8(0x99), cpu.readR8(6))
}
