package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReset_seedsDMGAndCGBRegisterValues(t *testing.T) {
	cpu := newTestCPU(t)

	cpu.Reset(DMG)
	assert.Equal(t, uint16(0x01B0), cpu.getAF())

	cpu.Reset(CGB)
	assert.Equal(t, uint16(0x1180), cpu.getAF())

	assert.Equal(t, uint16(0x0013), cpu.getBC())
	assert.Equal(t, uint16(0x00D8), cpu.getDE())
	assert.Equal(t, uint16(0x014D), cpu.getHL())
	assert.Equal(t, uint16(0xFFFE), cpu.sp)
	assert.Equal(t, uint16(0x0100), cpu.pc)
}

func TestFault_nilBeforeAnyIllegalOpcode(t *testing.T) {
	cpu := newTestCPU(t)
	assert.Nil(t, cpu.Fault())
}

func TestFault_recordedAfterIllegalOpcodeExecutes(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.pc = 0xC000
	cpu.bus.Write(0xC000, 0xD3)

	cost := cpu.Tick()

	assert.Equal(t, 4, cost)
	require := assert.New(t)
	require.NotNil(cpu.Fault())
	require.Equal(uint8(0xD3), cpu.Fault().Opcode)
	require.Equal(uint16(0xC000), cpu.Fault().PC)
}

func TestReset_clearsPriorFault(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.pc = 0xC000
	cpu.bus.Write(0xC000, 0xD3)
	cpu.Tick()
	require := assert.New(t)
	require.NotNil(cpu.Fault())

	cpu.Reset(DMG)
	require.Nil(cpu.Fault())
}
