// Package video implements the pixel pipeline: VRAM/OAM storage, the PPU
// mode state machine driving STAT/LY, and background/window/sprite
// rendering into a packed RGBA framebuffer.
package video

import (
	"log/slog"

	"github.com/joule-systems/pocketgb/addr"
	"github.com/joule-systems/pocketgb/bit"
)

// GpuMode mirrors STAT bits 1-0 and the memory package's gating constants.
type GpuMode uint8

const (
	HBlankMode  GpuMode = 0
	VBlankMode  GpuMode = 1
	OAMScanMode GpuMode = 2
	PixelTxfer  GpuMode = 3
)

const (
	oamScanCycles  = 80
	pixelDrawCycles = 172
	hblankCycles   = 204
	scanlineCycles = oamScanCycles + pixelDrawCycles + hblankCycles // 456
	vblankLines    = 10
	visibleLines   = 144
	totalLines     = visibleLines + vblankLines
)

// InterruptRequester is the subset of the memory bus the GPU needs to raise
// VBlank/STAT interrupts. Declared here (not imported from memory) so the
// video package stays independent of the bus; *memory.MMU satisfies it.
type InterruptRequester interface {
	RequestInterrupt(i addr.Interrupt)
}

// GPU implements memory.VideoUnit: it owns VRAM/OAM storage directly and is
// driven once per CPU step by Tick.
type GPU struct {
	irq InterruptRequester

	isCGB bool

	vram [2][0x2000]byte // bank 1 only meaningful in CGB mode
	oam  [0xA0]byte

	lcdc, stat, scy, scx, ly, lyc byte
	bgp, obp0, obp1               byte
	wy, wx                        byte
	vbk                           byte

	bgPalette  paletteRAM
	objPalette paletteRAM

	mode   GpuMode
	cycles int

	framebuffer   *FrameBuffer
	bgPixelBuffer [FramebufferSize]byte

	spritePriority SpritePriorityBuffer
	windowLine     int
	lineDrawn      bool
}

// NewGPU creates a GPU with an empty (black) framebuffer, ready to be wired
// to the bus via mmu.SetVideoUnit and given an interrupt sink.
func NewGPU(isCGB bool) *GPU {
	return &GPU{
		isCGB:       isCGB,
		framebuffer: NewFrameBuffer(),
		mode:        OAMScanMode,
	}
}

// SetInterruptRequester wires the GPU to the bus so it can raise VBlank and
// STAT interrupts. Must be called once at startup, mirroring
// mmu.SetVideoUnit's role on the other side of the same dependency cycle.
func (g *GPU) SetInterruptRequester(irq InterruptRequester) {
	g.irq = irq
}

func (g *GPU) FrameBuffer() *FrameBuffer {
	return g.framebuffer
}

// Mode satisfies memory.VideoUnit: reports the current PPU stage so the bus
// can gate VRAM/OAM access.
func (g *GPU) Mode() uint8 {
	return uint8(g.mode)
}

func (g *GPU) vramBank() int {
	if g.isCGB && g.vbk&1 == 1 {
		return 1
	}
	return 0
}

func (g *GPU) ReadVRAM(address uint16) byte {
	return g.vram[g.vramBank()][address-0x8000]
}

func (g *GPU) WriteVRAM(address uint16, value byte) {
	g.vram[g.vramBank()][address-0x8000] = value
}

func (g *GPU) ReadOAM(address uint16) byte {
	return g.oam[address-0xFE00]
}

func (g *GPU) WriteOAM(address uint16, value byte) {
	g.oam[address-0xFE00] = value
}

func (g *GPU) ReadRegister(address uint16) byte {
	switch address {
	case addr.LCDC:
		return g.lcdc
	case addr.STAT:
		return g.stat | 0x80
	case addr.SCY:
		return g.scy
	case addr.SCX:
		return g.scx
	case addr.LY:
		return g.ly
	case addr.LYC:
		return g.lyc
	case addr.BGP:
		return g.bgp
	case addr.OBP0:
		return g.obp0
	case addr.OBP1:
		return g.obp1
	case addr.WY:
		return g.wy
	case addr.WX:
		return g.wx
	case addr.VBK:
		return 0xFE | g.vbk
	case addr.BCPS:
		return g.bgPalette.readSpec()
	case addr.BCPD:
		return g.bgPalette.readData()
	case addr.OCPS:
		return g.objPalette.readSpec()
	case addr.OCPD:
		return g.objPalette.readData()
	default:
		return 0xFF
	}
}

func (g *GPU) WriteRegister(address uint16, value byte) {
	switch address {
	case addr.LCDC:
		wasOn := bit.IsSet(7, g.lcdc)
		g.lcdc = value
		if wasOn && !bit.IsSet(7, value) {
			g.disableLCD()
		}
	case addr.STAT:
		g.stat = (g.stat & 0x07) | (value & 0x78)
	case addr.SCY:
		g.scy = value
	case addr.SCX:
		g.scx = value
	case addr.LY:
		// read-only on real hardware
	case addr.LYC:
		g.lyc = value
		g.compareLYToLYC()
	case addr.BGP:
		g.bgp = value
	case addr.OBP0:
		g.obp0 = value
	case addr.OBP1:
		g.obp1 = value
	case addr.WY:
		g.wy = value
	case addr.WX:
		g.wx = value
	case addr.VBK:
		g.vbk = value & 0x01
	case addr.BCPS:
		g.bgPalette.writeSpec(value)
	case addr.BCPD:
		g.bgPalette.writeData(value)
	case addr.OCPS:
		g.objPalette.writeSpec(value)
	case addr.OCPD:
		g.objPalette.writeData(value)
	}
}

// disableLCD resets PPU timing state the moment software turns the display
// off, matching the common convention of forcing mode 0 and LY 0.
func (g *GPU) disableLCD() {
	g.mode = HBlankMode
	g.cycles = 0
	g.ly = 0
	g.windowLine = 0
}

func (g *GPU) lcdEnabled() bool {
	return bit.IsSet(7, g.lcdc)
}

// Tick advances the PPU mode state machine by cycles T-states, rendering
// one full scanline's worth of pixels the instant pixel-transfer begins and
// raising VBlank/STAT interrupts on the mode transitions hardware defines.
func (g *GPU) Tick(cycles int) {
	if !g.lcdEnabled() {
		return
	}

	g.cycles += cycles

	switch g.mode {
	case OAMScanMode:
		if g.cycles < oamScanCycles {
			return
		}
		g.cycles -= oamScanCycles
		g.setMode(PixelTxfer)
		g.lineDrawn = false

	case PixelTxfer:
		if !g.lineDrawn {
			g.drawScanline()
			g.lineDrawn = true
		}
		if g.cycles < pixelDrawCycles {
			return
		}
		g.cycles -= pixelDrawCycles
		g.setMode(HBlankMode)
		if bit.IsSet(addr.StatHblankIRQ, g.stat) {
			g.irq.RequestInterrupt(addr.LCDSTATInterrupt)
		}

	case HBlankMode:
		if g.cycles < hblankCycles {
			return
		}
		g.cycles -= hblankCycles
		g.setLY(int(g.ly) + 1)

		if int(g.ly) == visibleLines {
			g.setMode(VBlankMode)
			g.irq.RequestInterrupt(addr.VBlankInterrupt)
			if bit.IsSet(addr.StatVblankIRQ, g.stat) {
				g.irq.RequestInterrupt(addr.LCDSTATInterrupt)
			}
		} else {
			g.setMode(OAMScanMode)
			if bit.IsSet(addr.StatOamIRQ, g.stat) {
				g.irq.RequestInterrupt(addr.LCDSTATInterrupt)
			}
		}

	case VBlankMode:
		if g.cycles < scanlineCycles {
			return
		}
		g.cycles -= scanlineCycles
		g.setLY(int(g.ly) + 1)

		if int(g.ly) >= totalLines {
			g.setLY(0)
			g.windowLine = 0
			g.setMode(OAMScanMode)
			if bit.IsSet(addr.StatOamIRQ, g.stat) {
				g.irq.RequestInterrupt(addr.LCDSTATInterrupt)
			}
		}
	}
}

func (g *GPU) setMode(mode GpuMode) {
	g.mode = mode
	g.stat = (g.stat &^ 0x03) | byte(mode)
}

func (g *GPU) setLY(line int) {
	g.ly = byte(line)
	g.compareLYToLYC()
}

func (g *GPU) compareLYToLYC() {
	if g.ly == g.lyc {
		g.stat = bit.Set(addr.StatLYCFlag, g.stat)
		if bit.IsSet(addr.StatLYCIRQ, g.stat) && g.irq != nil {
			g.irq.RequestInterrupt(addr.LCDSTATInterrupt)
		}
	} else {
		g.stat = bit.Reset(addr.StatLYCFlag, g.stat)
	}
}

// LCDC bit positions.
const (
	lcdDisplayEnable       = 7
	windowTileMapSelect    = 6
	windowDisplayEnable    = 5
	bgWindowTileDataSelect = 4
	bgTileMapDisplaySelect = 3
	objSize                = 2
	objDisplayEnable       = 1
	bgDisplay              = 0
)

func (g *GPU) lcdcBit(position uint8) bool {
	return bit.IsSet(position, g.lcdc)
}

func (g *GPU) drawScanline() {
	line := int(g.ly)
	if line >= FramebufferHeight {
		return
	}

	g.drawBackground(line)
	g.drawWindow(line)
	g.drawSprites(line)
	slog.Debug("scanline rendered", "line", line)
}
