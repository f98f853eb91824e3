// Package pocketgb wires the interpreter, memory bus, and pixel pipeline
// into a single runnable Game Boy core. It is the C1-C4 aggregate the
// scheduler and CLI drive; everything below this layer is independently
// testable in isolation (cpu, memory, video), and everything above it
// (scheduler, backend, cmd/pocketgb) only talks to the core through this
// package's exported surface.
package pocketgb

import (
	"fmt"

	"github.com/joule-systems/pocketgb/addr"
	"github.com/joule-systems/pocketgb/cpu"
	"github.com/joule-systems/pocketgb/memory"
	"github.com/joule-systems/pocketgb/serial"
	"github.com/joule-systems/pocketgb/video"
)

// CyclesPerFrame is the number of T-states in one 154-scanline Game Boy
// frame (70224 = 154 * 456), used by the scheduler to detect frame
// boundaries from the CPU's running cycle counter.
const CyclesPerFrame = 70224

// Emulator owns one cartridge's worth of running state: the CPU, the memory
// bus, and the pixel pipeline, wired together exactly once at construction.
type Emulator struct {
	CPU    *cpu.CPU
	MMU    *memory.MMU
	GPU    *video.GPU
	Serial *serial.LogSink

	mode cpu.ConsoleMode
}

// New builds an Emulator around an already-parsed cartridge. The console
// mode is auto-detected from the cartridge header's CGB flag unless
// forceModeSet is true, in which case forceMode is used instead.
func New(cart *memory.Cartridge, forceMode cpu.ConsoleMode, forceModeSet bool) *Emulator {
	mode := cpu.DMG
	if cart.IsCGB {
		mode = cpu.CGB
	}
	if forceModeSet {
		mode = forceMode
	}

	gpu := video.NewGPU(mode == cpu.CGB)

	var mmu *memory.MMU
	sink := serial.NewLogSink(func() { mmu.RequestInterrupt(addr.SerialInterrupt) })
	mmu = memory.NewMMU(cart, sink)
	mmu.SetVideoUnit(gpu)
	gpu.SetInterruptRequester(mmu)

	c := cpu.New(mmu)
	c.Reset(mode)

	return &Emulator{
		CPU:    c,
		MMU:    mmu,
		GPU:    gpu,
		Serial: sink,
		mode:   mode,
	}
}

// NewFromROM parses raw ROM bytes and builds an Emulator around the result.
// forceModeSet selects an explicit console mode override; when false the
// mode is auto-detected from the cartridge header.
func NewFromROM(raw []byte, forceMode cpu.ConsoleMode, forceModeSet bool) (*Emulator, error) {
	cart, err := memory.NewCartridgeFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("pocketgb: %w", err)
	}
	return New(cart, forceMode, forceModeSet), nil
}

// Step runs exactly one CPU instruction (or interrupt service / HALT tick)
// and feeds the elapsed T-states to the pixel pipeline, returning the cycle
// count consumed. The memory bus's own peripherals (timer, serial, OAM DMA)
// are already ticked internally by cpu.CPU.Tick.
func (e *Emulator) Step() int {
	cycles := e.CPU.Tick()
	e.GPU.Tick(cycles)
	return cycles
}

// Cycles returns the total T-states executed since reset.
func (e *Emulator) Cycles() uint64 {
	return e.CPU.Cycles()
}

// FrameBuffer returns the pixel pipeline's framebuffer. This is the buffer
// the GPU draws into, one scanline at a time; no separate copy is published
// at VBlank, so outside VBlank it holds rows of both the frame in progress
// and the previous one.
func (e *Emulator) FrameBuffer() *video.FrameBuffer {
	return e.GPU.FrameBuffer()
}

// PressButton and ReleaseButton forward host input edges to the joypad
// register, matching spec.md's joypad wiring ("only by the interfaces it
// presents to the core").
func (e *Emulator) PressButton(button memory.Button) {
	e.MMU.HandleKeyPress(button)
}

func (e *Emulator) ReleaseButton(button memory.Button) {
	e.MMU.HandleKeyRelease(button)
}

// Mode reports the console mode this Emulator was reset into.
func (e *Emulator) Mode() cpu.ConsoleMode {
	return e.mode
}

// Fault returns the most recent illegal-opcode fault the CPU has hit, or nil
// if none has occurred. cmd/pocketgb checks this after a headless run to
// decide its exit code.
func (e *Emulator) Fault() *cpu.IllegalOpcodeError {
	return e.CPU.Fault()
}
