package video

import "github.com/joule-systems/pocketgb/bit"

// tilePixel decodes one pixel (0-7, 0 = leftmost) out of a tile row's two
// bit-plane bytes into a 2-bit color index (0-3).
func tilePixel(low, high byte, pixelX int) uint8 {
	bitIndex := uint8(7 - pixelX)
	pixel := uint8(0)
	if bit.IsSet(bitIndex, low) {
		pixel |= 1
	}
	if bit.IsSet(bitIndex, high) {
		pixel |= 2
	}
	return pixel
}

// tileDataAddress resolves a tile map entry to the VRAM address of its
// first row, honoring LCDC's signed/unsigned addressing mode select.
func tileDataAddress(tilesBase uint16, signedMode bool, tileValue byte, rowOffset int) uint16 {
	if signedMode {
		return uint16(int(tilesBase) + int(int8(tileValue))*16 + rowOffset)
	}
	return tilesBase + uint16(int(tileValue)*16+rowOffset)
}
