// This file is part of Saturnin.
//
// Saturnin is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saturnin is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saturnin.  If not, see <https://www.gnu.org/licenses/>.

package vdp2

import (
	"github.com/rtoumazet/saturnin-sub002/hardware/memory/bus"
	"github.com/rtoumazet/saturnin-sub002/video/parts"
)

// VDP2 is the background controller: its register window, the VRAM/CRAM
// it reads through the shared bus.Bus interface, the beam timing state
// machine driving its VBlank/HBlank edges, and the per-screen parts-list
// cache the frame-data builder fills.
type VDP2 struct {
	Regs *Registers
	Beam *Beam

	VRAM bus.Bus
	CRAM bus.Bus

	// SplitBanks mirrors RAMCTL's VRAM partitioning mode, consulted by the
	// cycle-pattern arbitration when deciding whether a screen's required
	// reads are satisfiable.
	SplitBanks bool

	dirty   [6]bool
	savedBG [6][]parts.RenderPart
}

// NewVDP2 builds a background controller over the given VRAM and colour
// RAM collaborators, with a beam state machine already running at the
// given standard and active-line count.
func NewVDP2(vram, cram bus.Bus, beam *Beam) *VDP2 {
	v := &VDP2{Regs: NewRegisters(), Beam: beam, VRAM: vram, CRAM: cram}
	for i := range v.dirty {
		v.dirty[i] = true
	}
	return v
}

// MarkDirty flags a screen's cached parts list as stale, forcing
// OnVBlankIn to rebuild it next time rather than reusing the snapshot.
// Real VDP2 has no such flag; it is this emulation's optimisation over
// rebuilding every screen's parts list on every single frame regardless
// of whether its character/pattern/palette data actually changed.
func (v *VDP2) MarkDirty(s Screen) { v.dirty[s] = true }

// SavedParts returns the most recent parts-list snapshot built for s,
// which may predate the current frame if s was neither displayed nor
// marked dirty since the last build.
func (v *VDP2) SavedParts(s Screen) []parts.RenderPart { return v.savedBG[s] }

// OnVBlankIn is VDP2's per-frame render-data builder, run once per frame
// at the VBlank-In edge. For each of the six scroll screens: if the VRAM
// cycle-pattern arbitration gates the screen off, its cached parts list is
// discarded; otherwise, if nothing has marked it dirty since the last
// build, the cached snapshot is reused unchanged; only a displayed, dirty
// screen is actually rebuilt from VRAM.
func (v *VDP2) OnVBlankIn() {
	for s := Screen(0); s < screenCount; s++ {
		if !IsScreenDisplayed(v.Regs, s, v.SplitBanks) {
			v.savedBG[s] = nil
			continue
		}

		if !v.dirty[s] {
			continue
		}

		v.savedBG[s] = v.buildScreenParts(s)
		v.dirty[s] = false
	}
}

// LayerFor maps a Screen to the compositor's Layer identifier, letting a
// caller combine SavedParts(s) with the screen's compositing key.
func LayerFor(s Screen) parts.Layer {
	switch s {
	case NBG0:
		return parts.LayerNBG0
	case NBG1:
		return parts.LayerNBG1
	case NBG2:
		return parts.LayerNBG2
	case NBG3:
		return parts.LayerNBG3
	case RBG0:
		return parts.LayerRBG0
	default:
		return parts.LayerRBG1
	}
}

// cellPixels is the fixed size, in pixels, of one VDP2 character cell.
const cellPixels = 8

// buildScreenParts builds the parts list a scroll screen contributes to the
// compositor for this frame. A bitmap-format screen emits a single
// full-screen textured quad, its texture key identifying the VRAM bitmap
// region that backs it. A cell-format screen walks its visible planes,
// pages and cells exactly per the frame-data build pseudocode: for each
// cell, decode its pattern-name-data entry and push one RenderPart whose
// vertices position that one cell, whose texture key encodes the decoded
// character/palette/flip so a renderer can tell two differently-tiled
// cells apart, and whose color-offset fields carry the screen's programmed
// color-offset record. Actually resolving a texture key's pixels (reading
// character-pattern data through CRAM) is the renderer's job, not this
// builder's, the same division of labour the frame-data build step in
// this emulation's generating source keeps.
func (v *VDP2) buildScreenParts(s Screen) []parts.RenderPart {
	st := v.Regs.ScreenState(s)

	if st.Format == FormatBitmap {
		return v.buildBitmapPart(s, st)
	}

	return v.buildCellParts(s, st)
}

func (v *VDP2) buildBitmapPart(s Screen, st ScreenState) []parts.RenderPart {
	mode := v.Regs.ScreenMode()
	w := int16(mode.Width)
	h := int16(mode.Height)

	colorSign, colorValue := v.colorOffsetFor(s)

	return []parts.RenderPart{{
		DrawType:   parts.TexturedPolygon,
		Priority:   v.Regs.PRI[s],
		TextureKey: textureKeyFor(s, st),
		Vertices: []parts.Vertex{
			vertex(0, 0, 0, 0, colorSign, colorValue),
			vertex(w, 0, 1, 0, colorSign, colorValue),
			vertex(w, h, 1, 1, colorSign, colorValue),
			vertex(0, h, 0, 1, colorSign, colorValue),
		},
	}}
}

// buildCellParts walks the visible planes, pages and cells of a cell-format
// screen, clipped to the area the current resolution actually displays
// (real hardware would wrap a scrolled map past that, but this emulation
// does not yet model per-screen scroll offsets), decoding one
// pattern-name-data entry and pushing one RenderPart per cell.
func (v *VDP2) buildCellParts(s Screen, st ScreenState) []parts.RenderPart {
	mode := v.Regs.ScreenMode()

	pageCells := st.PageCells
	if pageCells == 0 {
		pageCells = 64
	}
	planeCount := st.PlaneCount
	if planeCount == 0 {
		planeCount = 4
	}
	planesPerRow := 2
	if planeCount > 4 {
		planesPerRow = 4
	}
	planePixels := pageCells * cellPixels

	colorSign, colorValue := v.colorOffsetFor(s)
	priority := v.Regs.PRI[s]

	var out []parts.RenderPart
	for plane := 0; plane < planeCount; plane++ {
		planeRow := plane / planesPerRow
		planeCol := plane % planesPerRow
		planeOriginX := planeCol * planePixels
		planeOriginY := planeRow * planePixels
		if planeOriginX >= mode.Width || planeOriginY >= mode.Height {
			continue // plane entirely off the visible area at zero scroll
		}
		planeBase := st.MapBase + uint32(plane)*uint32(pageCells*pageCells)*pndEntrySize(st.ColorCount)

		for cellY := 0; cellY < pageCells && planeOriginY+cellY*cellPixels < mode.Height; cellY++ {
			for cellX := 0; cellX < pageCells && planeOriginX+cellX*cellPixels < mode.Width; cellX++ {
				entryAddr := planeBase + uint32(cellY*pageCells+cellX)*pndEntrySize(st.ColorCount)
				pnd := v.decodePatternName(entryAddr)

				px := int16(planeOriginX + cellX*cellPixels)
				py := int16(planeOriginY + cellY*cellPixels)
				w := int16(cellPixels)

				u0, u1 := float32(0), float32(1)
				v0, v1 := float32(0), float32(1)
				if pnd.HFlip {
					u0, u1 = u1, u0
				}
				if pnd.VFlip {
					v0, v1 = v1, v0
				}

				out = append(out, parts.RenderPart{
					DrawType:   parts.TexturedPolygon,
					Priority:   priority,
					TextureKey: cellTextureKey(s, st, pnd),
					Vertices: []parts.Vertex{
						vertex(px, py, u0, v0, colorSign, colorValue),
						vertex(px+w, py, u1, v0, colorSign, colorValue),
						vertex(px+w, py+w, u1, v1, colorSign, colorValue),
						vertex(px, py+w, u0, v1, colorSign, colorValue),
					},
				})
			}
		}
	}
	return out
}

func vertex(x, y int16, u, vv float32, colorSign, colorValue [3]uint8) parts.Vertex {
	return parts.Vertex{
		X: x, Y: y,
		TexCoord:         [3]float32{u, vv, 0},
		Color:            [4]uint8{255, 255, 255, 255},
		ColorOffsetSign:  colorSign,
		ColorOffsetValue: colorValue,
	}
}

// colorOffsetFor reads the color-offset record CLOFEN/CLOFSL select for a
// screen and returns it split into sign/value per channel the way
// parts.Vertex carries it.
func (v *VDP2) colorOffsetFor(s Screen) (sign, value [3]uint8) {
	if v.Regs.CLOFEN&(1<<uint(s)) == 0 {
		return [3]uint8{0, 0, 0}, [3]uint8{0, 0, 0}
	}
	r, g, b := v.Regs.COAR, v.Regs.COAG, v.Regs.COAB
	if v.Regs.CLOFSL&(1<<uint(s)) != 0 {
		r, g, b = v.Regs.COBR, v.Regs.COBG, v.Regs.COBB
	}
	return [3]uint8{signOf(r), signOf(g), signOf(b)}, [3]uint8{valueOf(r), valueOf(g), valueOf(b)}
}

func signOf(v uint16) uint8 {
	if v&0x100 != 0 {
		return 1
	}
	return 0
}

func valueOf(v uint16) uint8 { return uint8(v & 0xFF) }

// patternName is a decoded VDP2 pattern-name-data entry: the character
// number selecting which character-pattern data to display, the palette
// number selecting which CRAM bank it indexes into, and the per-cell flip
// flags.
type patternName struct {
	CharacterNumber uint16
	PaletteNumber   uint8
	HFlip, VFlip    bool
}

// decodePatternName reads one pattern-name-data entry from VRAM, using the
// one-word PND layout this emulation supports: bit 15 vertical flip, bit
// 14 horizontal flip, bits 10-13 palette number, bits 0-9 character
// number, per the publicly documented VDP2 pattern-name-data format.
func (v *VDP2) decodePatternName(addr uint32) patternName {
	raw := v.VRAM.Read16(addr)
	return patternName{
		CharacterNumber: raw & 0x03FF,
		PaletteNumber:   uint8((raw >> 10) & 0xF),
		HFlip:           raw&(1<<14) != 0,
		VFlip:           raw&(1<<15) != 0,
	}
}

// pndEntrySize is the byte size of one pattern-name-data entry: this
// emulation only builds the one-word (2-byte) layout.
func pndEntrySize(_ ColorCount) uint32 { return 2 }

// cellTextureKey derives a cache key for one decoded cell, distinct per
// screen/format/colour-depth (via textureKeyFor) and per character
// number/palette/flip combination, so that two cells drawing different
// tiles never collide in a renderer-side texture cache.
func cellTextureKey(s Screen, st ScreenState, pnd patternName) parts.TextureKey {
	key := uint64(textureKeyFor(s, st))
	key ^= uint64(pnd.CharacterNumber) << 32
	key ^= uint64(pnd.PaletteNumber) << 48
	if pnd.HFlip {
		key ^= 1 << 56
	}
	if pnd.VFlip {
		key ^= 1 << 57
	}
	return parts.TextureKey(key)
}

// textureKeyFor derives a cache key identifying the VRAM-backed pixel
// source for a screen, distinct per screen and per format/colour-depth
// combination so that a format change invalidates any renderer-side
// texture cache keyed off it.
func textureKeyFor(s Screen, st ScreenState) parts.TextureKey {
	key := uint64(s)
	key |= uint64(st.Format) << 8
	key |= uint64(st.ColorCount) << 16
	key |= uint64(st.Reduction) << 24
	return parts.TextureKey(key)
}
