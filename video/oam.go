package video

import "github.com/joule-systems/pocketgb/bit"

// Sprite is a decoded OAM entry, exposed for debug tooling (e.g. a sprite
// viewer) independent of the per-scanline rendering path.
type Sprite struct {
	Y, X      int
	TileIndex uint8
	Flags     uint8
	OAMIndex  int

	PaletteOBP1 bool
	FlipX       bool
	FlipY       bool
	BehindBG    bool
}

func decodeSprite(index int, y, x, tile, flags byte) Sprite {
	return Sprite{
		Y:           int(y) - 16,
		X:           int(x) - 8,
		TileIndex:   tile,
		Flags:       flags,
		OAMIndex:    index,
		PaletteOBP1: bit.IsSet(4, flags),
		FlipX:       bit.IsSet(5, flags),
		FlipY:       bit.IsSet(6, flags),
		BehindBG:    bit.IsSet(7, flags),
	}
}

// GetSprite decodes one of the 40 OAM entries (0-39).
func (g *GPU) GetSprite(index int) Sprite {
	base := index * 4
	return decodeSprite(index, g.oam[base], g.oam[base+1], g.oam[base+2], g.oam[base+3])
}

// GetAllSprites decodes every OAM entry, for debug tooling.
func (g *GPU) GetAllSprites() []Sprite {
	sprites := make([]Sprite, 40)
	for i := range sprites {
		sprites[i] = g.GetSprite(i)
	}
	return sprites
}
