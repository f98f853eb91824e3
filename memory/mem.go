// Package memory implements the Game Boy's 16-bit address bus: cartridge
// ROM/RAM banking, work RAM, high RAM, and register-level dispatch to the
// timer, serial port, joypad and video subsystems.
package memory

import (
	"log/slog"

	"github.com/joule-systems/pocketgb/addr"
	"github.com/joule-systems/pocketgb/bit"
	"github.com/joule-systems/pocketgb/serial"
)

// VideoUnit is the subset of the pixel pipeline the bus needs: VRAM/OAM
// storage, mode reporting (for access gating) and its own register file.
// Defined here rather than imported from the video package so memory has no
// dependency on it; the video package satisfies this interface structurally.
type VideoUnit interface {
	Mode() uint8
	ReadVRAM(address uint16) byte
	WriteVRAM(address uint16, value byte)
	ReadOAM(address uint16) byte
	WriteOAM(address uint16, value byte)
	ReadRegister(address uint16) byte
	WriteRegister(address uint16, value byte)
}

// GPU mode numbers, mirrored here so the bus can gate VRAM/OAM access
// without importing the video package.
const (
	modeHBlank     = 0
	modeVBlank     = 1
	modeOAMScan    = 2
	modePixelTxfer = 3
)

// MMU is the Game Boy memory bus.
type MMU struct {
	cart *Cartridge
	mbc  MBC

	wram     [8][0x1000]byte
	wramBank uint8 // 1-7, GBC only; DMG behaves as if always 1
	hram     [0x7F]byte
	io       [0x80]byte // catch-all storage for registers not separately modeled (APU, KEY1, boot lock, ...)

	ie    byte
	ifreg byte

	video  VideoUnit
	timer  *Timer
	serial serial.Port

	joypadButtons uint8 // bit set = released, matches hardware active-low wiring
	joypadDpad    uint8
	joypadSelect  uint8

	dmaActive    bool
	dmaRemaining int
	dmaSource    uint16

	isCGB  bool
	logger *slog.Logger
}

// NewMMU builds a bus around a parsed cartridge. The serial port is injected
// so tests can substitute a LogSink that captures transferred bytes.
func NewMMU(cart *Cartridge, serialPort serial.Port) *MMU {
	m := &MMU{
		cart:          cart,
		mbc:           newMBCFor(cart),
		serial:        serialPort,
		timer:         NewTimer(),
		joypadButtons: 0x0F,
		joypadDpad:    0x0F,
		isCGB:         cart.IsCGB,
		logger:        slog.Default(),
	}
	return m
}

// SetVideoUnit wires the bus to the pixel pipeline. Must be called before
// any VRAM/OAM/GPU-register access; pocketgb.New does this once at
// construction.
func (m *MMU) SetVideoUnit(v VideoUnit) {
	m.video = v
}

// RequestInterrupt sets the corresponding bit in IF, the same effect a
// hardware interrupt source has.
func (m *MMU) RequestInterrupt(i addr.Interrupt) {
	m.ifreg = bit.Set(uint8(i), m.ifreg)
}

func (m *MMU) Read(address uint16) byte {
	switch {
	case address < 0x8000:
		return m.mbc.ReadROM(address)
	case address < 0xA000:
		return m.readVRAM(address)
	case address < 0xC000:
		return m.mbc.ReadRAM(address)
	case address < 0xD000:
		return m.wram[0][address-0xC000]
	case address < 0xE000:
		return m.wram[m.effectiveWRAMBank()][address-0xD000]
	case address < 0xFE00:
		return m.Read(address - 0x2000)
	case address < 0xFEA0:
		return m.readOAM(address)
	case address < 0xFF00:
		return 0xFF
	case address < 0xFF80:
		return m.readIO(address)
	case address < 0xFFFF:
		return m.hram[address-0xFF80]
	default:
		return m.ie
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch {
	case address < 0x8000:
		m.mbc.WriteROM(address, value)
	case address < 0xA000:
		m.writeVRAM(address, value)
	case address < 0xC000:
		m.mbc.WriteRAM(address, value)
	case address < 0xD000:
		m.wram[0][address-0xC000] = value
	case address < 0xE000:
		m.wram[m.effectiveWRAMBank()][address-0xD000] = value
	case address < 0xFE00:
		m.Write(address-0x2000, value)
	case address < 0xFEA0:
		m.writeOAM(address, value)
	case address < 0xFF00:
		// unusable region, writes are dropped
	case address < 0xFF80:
		m.writeIO(address, value)
	case address < 0xFFFF:
		m.hram[address-0xFF80] = value
	default:
		m.ie = value
	}
}

func (m *MMU) effectiveWRAMBank() uint8 {
	if !m.isCGB || m.wramBank == 0 {
		return 1
	}
	return m.wramBank
}

// readVRAM/writeVRAM enforce that the CPU cannot observe or mutate VRAM
// while the pixel pipeline is mid pixel-transfer (mode 3): it reads as 0xFF
// and writes are silently dropped, matching real hardware contention.
func (m *MMU) readVRAM(address uint16) byte {
	if m.video == nil {
		return 0xFF
	}
	if m.video.Mode() == modePixelTxfer {
		return 0xFF
	}
	return m.video.ReadVRAM(address)
}

func (m *MMU) writeVRAM(address uint16, value byte) {
	if m.video == nil {
		return
	}
	if m.video.Mode() == modePixelTxfer {
		return
	}
	m.video.WriteVRAM(address, value)
}

// readOAM/writeOAM enforce the wider OAM access window: both OAM-scan
// (mode 2) and pixel-transfer (mode 3) block the CPU. An active OAM DMA
// transfer blocks it unconditionally, DMA source notwithstanding.
func (m *MMU) readOAM(address uint16) byte {
	if m.dmaActive || m.video == nil {
		return 0xFF
	}
	mode := m.video.Mode()
	if mode == modeOAMScan || mode == modePixelTxfer {
		return 0xFF
	}
	return m.video.ReadOAM(address)
}

func (m *MMU) writeOAM(address uint16, value byte) {
	if m.dmaActive || m.video == nil {
		return
	}
	mode := m.video.Mode()
	if mode == modeOAMScan || mode == modePixelTxfer {
		return
	}
	m.video.WriteOAM(address, value)
}

func (m *MMU) readIO(address uint16) byte {
	switch address {
	case addr.P1:
		return m.readJoypad()
	case addr.SB, addr.SC:
		return m.serial.Read(address)
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		return m.timer.Read(address)
	case addr.IF:
		return 0xE0 | m.ifreg
	case addr.LCDC, addr.STAT, addr.SCY, addr.SCX, addr.LY, addr.LYC,
		addr.BGP, addr.OBP0, addr.OBP1, addr.WY, addr.WX,
		addr.VBK, addr.BCPS, addr.BCPD, addr.OCPS, addr.OCPD:
		if m.video == nil {
			return 0xFF
		}
		return m.video.ReadRegister(address)
	case addr.DMA:
		return byte(m.dmaSource >> 8)
	case addr.SVBK:
		return 0xF8 | m.wramBank
	default:
		return m.io[address-0xFF00]
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch address {
	case addr.P1:
		m.joypadSelect = value
	case addr.SB, addr.SC:
		m.serial.Write(address, value)
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		m.timer.Write(address, value)
	case addr.IF:
		m.ifreg = value & 0x1F
	case addr.LCDC, addr.STAT, addr.SCY, addr.SCX, addr.LY, addr.LYC,
		addr.BGP, addr.OBP0, addr.OBP1, addr.WY, addr.WX,
		addr.VBK, addr.BCPS, addr.BCPD, addr.OCPS, addr.OCPD:
		if m.video != nil {
			m.video.WriteRegister(address, value)
		}
	case addr.DMA:
		m.startOAMDMA(value)
	case addr.SVBK:
		bank := value & 0x07
		if bank == 0 {
			bank = 1
		}
		m.wramBank = bank
	default:
		m.io[address-0xFF00] = value
	}
}

func (m *MMU) startOAMDMA(sourceHigh byte) {
	m.dmaSource = uint16(sourceHigh) << 8
	m.dmaActive = true
	m.dmaRemaining = 160 * 4
}

// TickDMA advances an in-flight OAM DMA transfer by the given number of
// T-states; one byte completes roughly every 4 cycles on real hardware, but
// this core copies the whole block in a single step once enough cycles have
// elapsed, which is indistinguishable to software that waits for completion.
func (m *MMU) TickDMA(cycles int) {
	if !m.dmaActive {
		return
	}
	m.dmaRemaining -= cycles
	if m.dmaRemaining > 0 {
		return
	}
	for i := uint16(0); i < 160; i++ {
		value := m.Read(m.dmaSource + i)
		if m.video != nil {
			m.video.WriteOAM(0xFE00+i, value)
		}
	}
	m.dmaActive = false
}

func (m *MMU) readJoypad() byte {
	result := byte(0xCF) // bits 6-7 unused, read as 1
	selectButtons := bit.IsSet(5, m.joypadSelect)
	selectDpad := bit.IsSet(4, m.joypadSelect)

	result |= m.joypadSelect & 0x30

	switch {
	case !selectButtons:
		result = (result &^ 0x0F) | (m.joypadButtons & 0x0F)
	case !selectDpad:
		result = (result &^ 0x0F) | (m.joypadDpad & 0x0F)
	default:
		result |= 0x0F
	}
	return result
}

// HandleKeyPress clears the corresponding bit (active-low) and requests a
// joypad interrupt, matching the real controller's wired-OR behavior.
func (m *MMU) HandleKeyPress(button Button) {
	if button.isDpad {
		m.joypadDpad = bit.Reset(button.bitIndex, m.joypadDpad)
	} else {
		m.joypadButtons = bit.Reset(button.bitIndex, m.joypadButtons)
	}
	m.RequestInterrupt(addr.JoypadInterrupt)
}

// HandleKeyRelease sets the corresponding bit back to its released state.
func (m *MMU) HandleKeyRelease(button Button) {
	if button.isDpad {
		m.joypadDpad = bit.Set(button.bitIndex, m.joypadDpad)
	} else {
		m.joypadButtons = bit.Set(button.bitIndex, m.joypadButtons)
	}
}

// TickPeripherals advances the timer and serial port by the number of
// T-states the CPU just spent, requesting interrupts as needed. Called by
// cpu.CPU.Tick at the end of every step; the video tick happens separately.
func (m *MMU) TickPeripherals(cycles int) {
	if m.timer.Tick(cycles) {
		m.RequestInterrupt(addr.TimerInterrupt)
	}
	m.serial.Tick(cycles)
	m.TickDMA(cycles)
}

// Cartridge exposes the loaded cartridge, e.g. for the CLI to print its title.
func (m *MMU) Cartridge() *Cartridge {
	return m.cart
}
