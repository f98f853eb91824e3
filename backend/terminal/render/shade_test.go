package render

import (
	"testing"

	"github.com/joule-systems/pocketgb/video"
	"github.com/stretchr/testify/assert"
)

func TestPixelToShade_knownDMGColors(t *testing.T) {
	assert.Equal(t, 0, PixelToShade(video.BlackColor))
	assert.Equal(t, 1, PixelToShade(video.DarkGreyColor))
	assert.Equal(t, 2, PixelToShade(video.LightGreyColor))
	assert.Equal(t, 3, PixelToShade(video.WhiteColor))
}

func TestHalfBlockChar_sameShadeIsFullBlock(t *testing.T) {
	assert.Equal(t, '█', HalfBlockChar(1, 1))
}

func TestHalfBlockChar_topWhiteBottomNot(t *testing.T) {
	assert.Equal(t, '▄', HalfBlockChar(3, 0))
}

func TestHalfBlockChar_topNotBottomWhite(t *testing.T) {
	assert.Equal(t, '▀', HalfBlockChar(0, 3))
}

func TestScaleFrame_identitySizeReturnsSamePixels(t *testing.T) {
	fb := video.NewFrameBuffer()
	fb.SetPixel(0, 0, video.WhiteColor)

	img := ScaleFrame(fb, video.FramebufferWidth, video.FramebufferHeight)

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), g)
	assert.Equal(t, uint32(0xFFFF), b)
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestScaleFrame_downscaleProducesRequestedDimensions(t *testing.T) {
	fb := video.NewFrameBuffer()
	img := ScaleFrame(fb, 80, 72)

	bounds := img.Bounds()
	assert.Equal(t, 80, bounds.Dx())
	assert.Equal(t, 72, bounds.Dy())
}
