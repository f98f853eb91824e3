package video

import (
	"testing"

	"github.com/joule-systems/pocketgb/addr"
)

type fakeIRQ struct {
	requested []addr.Interrupt
}

func (f *fakeIRQ) RequestInterrupt(i addr.Interrupt) {
	f.requested = append(f.requested, i)
}

func (f *fakeIRQ) has(i addr.Interrupt) bool {
	for _, r := range f.requested {
		if r == i {
			return true
		}
	}
	return false
}

func newTestGPU() (*GPU, *fakeIRQ) {
	g := NewGPU(false)
	irq := &fakeIRQ{}
	g.SetInterruptRequester(irq)
	g.WriteRegister(addr.LCDC, 0x91) // LCD on, BG on, tile data 0x8000
	return g, irq
}

func TestGPU_modeProgressesThroughScanline(t *testing.T) {
	g, _ := newTestGPU()

	if g.Mode() != uint8(OAMScanMode) {
		t.Fatalf("initial mode = %d, want OAMScanMode", g.Mode())
	}

	g.Tick(oamScanCycles)
	if g.Mode() != uint8(PixelTxfer) {
		t.Fatalf("mode after OAM scan = %d, want PixelTxfer", g.Mode())
	}

	g.Tick(pixelDrawCycles)
	if g.Mode() != uint8(HBlankMode) {
		t.Fatalf("mode after pixel transfer = %d, want HBlankMode", g.Mode())
	}
}

func TestGPU_vblankInterruptAtLine144(t *testing.T) {
	g, irq := newTestGPU()

	for line := 0; line < visibleLines; line++ {
		g.Tick(oamScanCycles)
		g.Tick(pixelDrawCycles)
		g.Tick(hblankCycles)
	}

	if !irq.has(addr.VBlankInterrupt) {
		t.Fatal("expected a VBlank interrupt after 144 scanlines")
	}
	if g.Mode() != uint8(VBlankMode) {
		t.Fatalf("mode = %d, want VBlankMode", g.Mode())
	}
}

func TestGPU_lineWrapsAfter154Lines(t *testing.T) {
	g, _ := newTestGPU()

	for line := 0; line < visibleLines; line++ {
		g.Tick(oamScanCycles)
		g.Tick(pixelDrawCycles)
		g.Tick(hblankCycles)
	}
	for line := 0; line < vblankLines; line++ {
		g.Tick(scanlineCycles)
	}

	if g.ReadRegister(addr.LY) != 0 {
		t.Fatalf("LY = %d, want 0 after the full 154-line frame", g.ReadRegister(addr.LY))
	}
	if g.Mode() != uint8(OAMScanMode) {
		t.Fatalf("mode = %d, want OAMScanMode", g.Mode())
	}
}

func TestGPU_backgroundTileRendersSolidColor(t *testing.T) {
	g, _ := newTestGPU()
	g.WriteRegister(addr.BGP, 0xE4)

	// Tile 0, all pixels = color 3 (white under the default palette).
	for row := 0; row < 8; row++ {
		g.WriteVRAM(0x8000+uint16(row*2), 0xFF)
		g.WriteVRAM(0x8000+uint16(row*2+1), 0xFF)
	}
	g.WriteVRAM(0x9800, 0x00) // tile map entry for (0,0) uses tile 0

	g.Tick(oamScanCycles)
	g.Tick(pixelDrawCycles / 2)
	g.Tick(pixelDrawCycles/2 + 1)

	if got := g.framebuffer.GetPixel(0, 0); got != WhiteColor {
		t.Errorf("background pixel (0,0) = %#x, want white", got)
	}
}

func TestGPU_lycMatchSetsStatFlagAndRequestsInterrupt(t *testing.T) {
	g, irq := newTestGPU()
	g.WriteRegister(addr.STAT, 1<<addr.StatLYCIRQ)
	g.WriteRegister(addr.LYC, 0)

	if !irq.has(addr.LCDSTATInterrupt) {
		t.Fatal("expected an LCDSTAT interrupt on immediate LY==LYC match")
	}
	if g.ReadRegister(addr.STAT)&(1<<addr.StatLYCFlag) == 0 {
		t.Fatal("expected the LYC coincidence flag to be set")
	}
}

func TestGPU_statModeBitsReflectCurrentMode(t *testing.T) {
	g, _ := newTestGPU()
	g.Tick(oamScanCycles)
	if g.ReadRegister(addr.STAT)&0x03 != uint8(PixelTxfer) {
		t.Fatalf("STAT mode bits = %d, want %d", g.ReadRegister(addr.STAT)&0x03, PixelTxfer)
	}
}

func TestGPU_spritePixelDrawnOverBackground(t *testing.T) {
	g, _ := newTestGPU()
	g.WriteRegister(addr.LCDC, 0x93) // LCD+BG+OBJ enabled
	g.WriteRegister(addr.OBP0, 0xE4)

	// Sprite tile 1: solid color 1.
	for row := 0; row < 8; row++ {
		g.WriteVRAM(0x8010+uint16(row*2), 0xFF)
		g.WriteVRAM(0x8010+uint16(row*2+1), 0x00)
	}
	// OAM entry 0: Y=16 (screen Y 0), X=8 (screen X 0), tile 1, no flags.
	g.WriteOAM(0xFE00, 16)
	g.WriteOAM(0xFE01, 8)
	g.WriteOAM(0xFE02, 1)
	g.WriteOAM(0xFE03, 0)

	g.Tick(oamScanCycles)
	g.Tick(pixelDrawCycles)

	if got := g.framebuffer.GetPixel(0, 0); got != DarkGreyColor {
		t.Errorf("sprite pixel (0,0) = %#x, want dark grey (color 1)", got)
	}
}
