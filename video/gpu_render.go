package video

import "github.com/joule-systems/pocketgb/addr"

// vramRead reads directly from a specific VRAM bank, bypassing the VBK
// register — used internally by rendering since tile data and CGB tile
// attributes live in different banks at the same apparent address.
func (g *GPU) vramRead(bank int, address uint16) byte {
	return g.vram[bank][address-0x8000]
}

func (g *GPU) drawBackground(line int) {
	lineBase := line * FramebufferWidth

	if !g.lcdcBit(bgDisplay) && !g.isCGB {
		color := dmgColor(g.bgp, 0)
		for x := 0; x < FramebufferWidth; x++ {
			g.framebuffer.buffer[lineBase+x] = uint32(color)
			g.bgPixelBuffer[lineBase+x] = 0
		}
		return
	}

	signedMode := !g.lcdcBit(bgWindowTileDataSelect)
	tilesBase := uint16(addr.TileData0)
	if signedMode {
		tilesBase = addr.TileData2
	}
	tileMapBase := uint16(addr.TileMap1)
	if !g.lcdcBit(bgTileMapDisplaySelect) {
		tileMapBase = addr.TileMap0
	}

	scrolledY := (line + int(g.scy)) & 0xFF
	tileRow := (scrolledY / 8) * 32
	rowInTile := scrolledY % 8

	for x := 0; x < FramebufferWidth; x++ {
		mapX := (x + int(g.scx)) & 0xFF
		tileCol := mapX / 8
		colInTile := mapX % 8

		mapAddr := tileMapBase + uint16(tileRow+tileCol)
		tileValue := g.vramRead(0, mapAddr)

		var palette byte
		var colorIdx uint8
		if g.isCGB {
			attr := g.vramRead(1, mapAddr)
			bank := int((attr >> 3) & 1)
			flipX := attr&0x20 != 0
			flipY := attr&0x40 != 0
			pal := attr & 0x07

			row := rowInTile
			if flipY {
				row = 7 - row
			}
			col := colInTile
			if flipX {
				col = 7 - col
			}

			tileAddr := tileDataAddress(tilesBase, signedMode, tileValue, row*2)
			low := g.vramRead(bank, tileAddr)
			high := g.vramRead(bank, tileAddr+1)
			colorIdx = tilePixel(low, high, col)
			palette = pal

			position := lineBase + x
			g.framebuffer.buffer[position] = uint32(g.bgPalette.color(palette, colorIdx))
			g.bgPixelBuffer[position] = colorIdx
			continue
		}

		tileAddr := tileDataAddress(tilesBase, signedMode, tileValue, rowInTile*2)
		low := g.vramRead(0, tileAddr)
		high := g.vramRead(0, tileAddr+1)
		colorIdx = tilePixel(low, high, colInTile)

		position := lineBase + x
		g.framebuffer.buffer[position] = uint32(dmgColor(g.bgp, colorIdx))
		g.bgPixelBuffer[position] = colorIdx
	}
}

func (g *GPU) drawWindow(line int) {
	if !g.lcdcBit(windowDisplayEnable) {
		return
	}
	if int(g.wy) > line {
		return
	}
	wx := int(g.wx) - 7
	if wx >= FramebufferWidth {
		return
	}

	signedMode := !g.lcdcBit(bgWindowTileDataSelect)
	tilesBase := uint16(addr.TileData0)
	if signedMode {
		tilesBase = addr.TileData2
	}
	tileMapBase := uint16(addr.TileMap1)
	if !g.lcdcBit(windowTileMapSelect) {
		tileMapBase = addr.TileMap0
	}

	tileRow := (g.windowLine / 8) * 32
	rowInTile := g.windowLine % 8
	lineBase := line * FramebufferWidth

	for col := 0; col < 32; col++ {
		screenX0 := wx + col*8
		if screenX0 >= FramebufferWidth {
			break
		}

		mapAddr := tileMapBase + uint16(tileRow+col)
		tileValue := g.vramRead(0, mapAddr)

		bank := 0
		flipX, flipY := false, false
		palette := g.bgp
		var cgbPalette byte
		if g.isCGB {
			attr := g.vramRead(1, mapAddr)
			bank = int((attr >> 3) & 1)
			flipX = attr&0x20 != 0
			flipY = attr&0x40 != 0
			cgbPalette = attr & 0x07
		}

		row := rowInTile
		if flipY {
			row = 7 - row
		}
		tileAddr := tileDataAddress(tilesBase, signedMode, tileValue, row*2)
		low := g.vramRead(bank, tileAddr)
		high := g.vramRead(bank, tileAddr+1)

		for px := 0; px < 8; px++ {
			screenX := screenX0 + px
			if screenX < 0 || screenX >= FramebufferWidth {
				continue
			}
			col := px
			if flipX {
				col = 7 - px
			}
			colorIdx := tilePixel(low, high, col)
			position := lineBase + screenX

			if g.isCGB {
				g.framebuffer.buffer[position] = uint32(g.bgPalette.color(cgbPalette, colorIdx))
			} else {
				g.framebuffer.buffer[position] = uint32(dmgColor(palette, colorIdx))
			}
			g.bgPixelBuffer[position] = colorIdx
		}
	}
	g.windowLine++
}

type spriteEntry struct {
	y, x, tile, flags byte
	oamIndex          int
}

func (g *GPU) scanlineSprites(line int) []spriteEntry {
	spriteHeight := 8
	if g.lcdcBit(objSize) {
		spriteHeight = 16
	}

	var sprites []spriteEntry
	for i := 0; i < 40; i++ {
		base := i * 4
		y := int(g.oam[base]) - 16
		if y > line || y+spriteHeight <= line {
			continue
		}
		sprites = append(sprites, spriteEntry{
			y:        g.oam[base],
			x:        g.oam[base+1],
			tile:     g.oam[base+2],
			flags:    g.oam[base+3],
			oamIndex: i,
		})
		if len(sprites) >= 10 {
			break
		}
	}
	return sprites
}

func (g *GPU) drawSprites(line int) {
	if !g.lcdcBit(objDisplayEnable) {
		return
	}

	spriteHeight := 8
	if g.lcdcBit(objSize) {
		spriteHeight = 16
	}

	sprites := g.scanlineSprites(line)
	lineBase := line * FramebufferWidth

	g.spritePriority.Clear()
	if !g.isCGB {
		for _, s := range sprites {
			x := int(s.x) - 8
			for px := 0; px < 8; px++ {
				g.spritePriority.TryClaimPixel(x+px, s.oamIndex, x)
			}
		}
	}

	for _, s := range sprites {
		x := int(s.x) - 8
		y := int(s.y) - 16

		flipX := s.flags&0x20 != 0
		flipY := s.flags&0x40 != 0
		behindBG := s.flags&0x80 != 0

		row := line - y
		if flipY {
			row = spriteHeight - 1 - row
		}

		tileIndex := s.tile
		if spriteHeight == 16 {
			tileIndex &^= 0x01
			if row >= 8 {
				tileIndex |= 0x01
				row -= 8
			}
		}

		bank := 0
		palette := g.obp0
		var cgbPalette byte
		if g.isCGB {
			bank = int((s.flags >> 3) & 1)
			cgbPalette = s.flags & 0x07
		} else if s.flags&0x10 != 0 {
			palette = g.obp1
		}

		tileAddr := addr.TileData0 + uint16(int(tileIndex)*16+row*2)
		low := g.vramRead(bank, tileAddr)
		high := g.vramRead(bank, tileAddr+1)

		for px := 0; px < 8; px++ {
			screenX := x + px
			if screenX < 0 || screenX >= FramebufferWidth {
				continue
			}

			if !g.isCGB && g.spritePriority.GetOwner(screenX) != s.oamIndex {
				continue
			}

			col := px
			if flipX {
				col = 7 - px
			}
			colorIdx := tilePixel(low, high, col)
			if colorIdx == 0 {
				continue
			}

			position := lineBase + screenX
			if behindBG && g.bgPixelBuffer[position] != 0 {
				continue
			}

			if g.isCGB {
				g.framebuffer.buffer[position] = uint32(g.objPalette.color(cgbPalette, colorIdx))
			} else {
				g.framebuffer.buffer[position] = uint32(dmgColor(palette, colorIdx))
			}
		}
	}
}
