// Package render holds rendering helpers shared by the terminal backend:
// quantizing a packed RGBA pixel down to one of the four DMG shades and
// picking the half-block glyph that best represents a pair of stacked
// pixels in a character cell.
package render

import (
	"image/color"

	"github.com/joule-systems/pocketgb/video"
)

// PixelToShade converts a packed framebuffer pixel to a shade level 0-3
// (black, dark grey, light grey, white).
func PixelToShade(pixel video.GBColor) int {
	switch pixel {
	case video.BlackColor:
		return 0
	case video.DarkGreyColor:
		return 1
	case video.LightGreyColor:
		return 2
	case video.WhiteColor:
		return 3
	default:
		// GBC colors don't land on one of the four DMG shades; quantize by
		// luminance so CGB ROMs still render something legible in a terminal.
		r := (uint32(pixel) >> 24) & 0xFF
		g := (uint32(pixel) >> 16) & 0xFF
		b := (uint32(pixel) >> 8) & 0xFF
		lum := (r*3 + g*6 + b) / 10
		switch {
		case lum < 64:
			return 0
		case lum < 128:
			return 1
		case lum < 192:
			return 2
		default:
			return 3
		}
	}
}

// ShadeFromRGBA quantizes an arbitrary RGBA color (as produced by
// ScaleFrame's resampling, which can blend DMG shades at cell boundaries)
// to one of the four terminal shade levels by luminance.
func ShadeFromRGBA(c color.Color) int {
	r, g, b, _ := c.RGBA()
	lum := (r*3 + g*6 + b) / 10 >> 8
	switch {
	case lum < 64:
		return 0
	case lum < 128:
		return 1
	case lum < 192:
		return 2
	default:
		return 3
	}
}

// HalfBlockChar returns the glyph used to render a terminal cell covering
// two vertically stacked pixels of the given shades.
func HalfBlockChar(topShade, bottomShade int) rune {
	switch {
	case topShade == bottomShade:
		return '█'
	case topShade == 3 && bottomShade != 3:
		return '▄'
	case topShade != 3 && bottomShade == 3:
		return '▀'
	default:
		return '▀'
	}
}
