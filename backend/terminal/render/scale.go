package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/joule-systems/pocketgb/video"
)

// toRGBA copies a framebuffer into a stdlib image so it can be fed through
// golang.org/x/image/draw's scalers.
func toRGBA(fb *video.FrameBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			px := uint32(fb.GetPixel(x, y))
			img.Set(x, y, color.RGBA{
				R: uint8(px >> 24),
				G: uint8(px >> 16),
				B: uint8(px >> 8),
				A: uint8(px),
			})
		}
	}
	return img
}

// ScaleFrame resizes a 160x144 framebuffer to fit the given cell grid,
// letting the terminal backend shrink the image to whatever size fits the
// host's terminal window rather than clipping it. Nearest-neighbor keeps
// flat-color tile art legible.
func ScaleFrame(fb *video.FrameBuffer, width, height int) *image.RGBA {
	if width == video.FramebufferWidth && height == video.FramebufferHeight {
		return toRGBA(fb)
	}

	src := toRGBA(fb)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
