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
	"testing"

	"github.com/rtoumazet/saturnin-sub002/hardware/clocks"
	"github.com/rtoumazet/saturnin-sub002/test"
)

func TestNTSCBeamEntersVBlankAtActiveLineBoundary(t *testing.T) {
	b := NewBeam(clocks.NTSC(), NTSC, 224)

	var sawVBlankIn bool
	for line := 0; line < 224; line++ {
		for _, ev := range b.Advance(b.cyclesPerLine) {
			if ev == VBlankIn {
				sawVBlankIn = true
			}
		}
	}

	test.ExpectEquality(t, sawVBlankIn, true)
	test.ExpectEquality(t, b.InVBlank(), true)
	test.ExpectEquality(t, b.CurrentLine(), 224)
}

func TestNTSCBeamCompletesFullFrame(t *testing.T) {
	b := NewBeam(clocks.NTSC(), NTSC, 224)

	var sawVBlankOut bool
	for line := 0; line < clocks.NTSCLinesPerFrame; line++ {
		for _, ev := range b.Advance(b.cyclesPerLine) {
			if ev == VBlankOut {
				sawVBlankOut = true
			}
		}
	}

	test.ExpectEquality(t, sawVBlankOut, true)
	test.ExpectEquality(t, b.InVBlank(), false)
	test.ExpectEquality(t, b.CurrentLine(), 0)
}

func TestBeamEntersHBlankWithinALine(t *testing.T) {
	b := NewBeam(clocks.NTSC(), NTSC, 224)

	events := b.Advance(b.cyclesPerHActive + 1)

	test.ExpectEquality(t, len(events) >= 1, true)
	test.ExpectEquality(t, events[0], HBlankIn)
	test.ExpectEquality(t, b.InHBlank(), true)
}

func TestScreenModeDecodesStandardResolution(t *testing.T) {
	r := NewRegisters()
	mode := r.ScreenMode()

	test.ExpectEquality(t, mode.Width, 320)
	test.ExpectEquality(t, mode.Height, 224)
}

func TestSetDisplayRoundTrips(t *testing.T) {
	r := NewRegisters()
	r.SetDisplay(true)
	test.ExpectEquality(t, r.TVMD&tvmdDISP != 0, true)

	r.SetDisplay(false)
	test.ExpectEquality(t, r.TVMD&tvmdDISP != 0, false)
}

func TestIsScreenDisplayedGatesOnEnableBit(t *testing.T) {
	r := NewRegisters()
	test.ExpectEquality(t, IsScreenDisplayed(r, NBG0, false), false)
}

func TestIsScreenDisplayedGatesOnCyclePatternBandwidth(t *testing.T) {
	r := NewRegisters()
	r.BGON = 1 << uint(NBG0)
	r.SetScreenState(NBG0, ScreenState{
		IsDisplayEnabled: true,
		Format:           FormatCell,
		ColorCount:       Color256,
		Reduction:        ReductionNone,
	})

	// no cycle-pattern slots programmed at all: required reads unmet.
	test.ExpectEquality(t, IsScreenDisplayed(r, NBG0, false), false)

	pattern, character := accessCommandsFor(NBG0)
	r.SetCyclePatternSlot(BankA0, 0, pattern)
	r.SetCyclePatternSlot(BankA0, 1, character)
	r.SetCyclePatternSlot(BankA0, 2, character)

	test.ExpectEquality(t, IsScreenDisplayed(r, NBG0, false), true)
}

func TestReductionLockedOutForNBG2AndNBG3(t *testing.T) {
	r := NewRegisters()
	r.BGON = 1<<uint(NBG0) | 1<<uint(NBG2)
	r.SetScreenState(NBG0, ScreenState{IsDisplayEnabled: true, Reduction: ReductionQuarter})
	r.SetScreenState(NBG2, ScreenState{IsDisplayEnabled: true, ColorCount: Color16})

	// NBG0 at 1/4 reduction locks out a 16-colour NBG2 regardless of
	// cycle-pattern bandwidth.
	test.ExpectEquality(t, IsScreenDisplayed(r, NBG2, false), false)

	// 256-colour NBG2 isn't locked out by 1/4 reduction, only by 1/2.
	r.SetScreenState(NBG2, ScreenState{IsDisplayEnabled: true, ColorCount: Color256})
	pattern, character := accessCommandsFor(NBG2)
	r.SetCyclePatternSlot(BankA0, 0, pattern)
	r.SetCyclePatternSlot(BankA0, 1, character)
	r.SetCyclePatternSlot(BankA0, 2, character)
	r.SetCyclePatternSlot(BankA0, 3, character)
	test.ExpectEquality(t, IsScreenDisplayed(r, NBG2, false), true)

	r.SetScreenState(NBG0, ScreenState{IsDisplayEnabled: true, Reduction: ReductionHalf})
	test.ExpectEquality(t, IsScreenDisplayed(r, NBG2, false), false)
}

func TestReductionLockedOutForNBG3AgainstNBG1(t *testing.T) {
	r := NewRegisters()
	r.BGON = 1<<uint(NBG1) | 1<<uint(NBG3)
	r.SetScreenState(NBG1, ScreenState{IsDisplayEnabled: true, Reduction: ReductionHalf})
	r.SetScreenState(NBG3, ScreenState{IsDisplayEnabled: true, ColorCount: Color256})

	test.ExpectEquality(t, IsScreenDisplayed(r, NBG3, false), false)
}

func TestDecodeIndexedZeroIsTransparent(t *testing.T) {
	c := DecodeIndexed(&fakeCRAM{}, 0, CRAMMode0, Color256, 0)
	test.ExpectEquality(t, c.A, uint8(0))
}

// fakeCRAM is a minimal bus.Bus returning a fixed opaque RGB555 word for
// any 16-bit read, enough to exercise DecodeIndexed's non-zero path.
type fakeCRAM struct{}

func (f *fakeCRAM) Read8(a uint32) uint8    { return 0 }
func (f *fakeCRAM) Read16(a uint32) uint16  { return 0x7FFF }
func (f *fakeCRAM) Read32(a uint32) uint32  { return 0 }
func (f *fakeCRAM) Write8(a uint32, v uint8)   {}
func (f *fakeCRAM) Write16(a uint32, v uint16) {}
func (f *fakeCRAM) Write32(a uint32, v uint32) {}

func TestDecodeIndexedNonZeroDecodesRGB555(t *testing.T) {
	c := DecodeIndexed(&fakeCRAM{}, 0, CRAMMode0, Color256, 1)
	test.ExpectEquality(t, c.A, uint8(0xFF))
	test.ExpectEquality(t, c.R > 0, true)
}

// flatVRAM is a minimal read/write bus.Bus standing in for VRAM, enough to
// plant pattern-name-data entries for buildCellParts to decode.
type flatVRAM struct {
	data [1 << 16]byte
}

func (m *flatVRAM) Read8(a uint32) uint8 { return m.data[a&0xFFFF] }
func (m *flatVRAM) Read16(a uint32) uint16 {
	a &= 0xFFFF
	return uint16(m.data[a])<<8 | uint16(m.data[a+1])
}
func (m *flatVRAM) Read32(a uint32) uint32 {
	a &= 0xFFFF
	return uint32(m.data[a])<<24 | uint32(m.data[a+1])<<16 | uint32(m.data[a+2])<<8 | uint32(m.data[a+3])
}
func (m *flatVRAM) Write8(a uint32, v uint8) { m.data[a&0xFFFF] = v }
func (m *flatVRAM) Write16(a uint32, v uint16) {
	a &= 0xFFFF
	m.data[a] = uint8(v >> 8)
	m.data[a+1] = uint8(v)
}
func (m *flatVRAM) Write32(a uint32, v uint32) {}

func TestBuildScreenPartsDecodesOnePerCellForCellFormat(t *testing.T) {
	vram := &flatVRAM{}
	v := NewVDP2(vram, &fakeCRAM{}, NewBeam(clocks.NTSC(), NTSC, 224))
	v.Regs.BGON = 1 << uint(NBG0)
	v.Regs.PRI[NBG0] = 3
	v.Regs.SetScreenState(NBG0, ScreenState{
		IsDisplayEnabled: true,
		Format:           FormatCell,
		ColorCount:       Color256,
		PlaneCount:       4,
		PageCells:        64,
	})

	// plant two distinguishable pattern-name entries at the first two
	// cells of plane 0 so the decode can be told apart from its neighbour.
	vram.Write16(0, 0x0005)          // character 5, palette 0, no flip
	vram.Write16(2, 0x0006|(1<<14))  // character 6, H flip set

	renderParts := v.buildScreenParts(NBG0)

	// NBG0 at the default 320x224 mode is 40x28 visible cells.
	test.ExpectEquality(t, len(renderParts), 40*28)
	test.ExpectEquality(t, renderParts[0].Priority, uint8(3))
	test.ExpectEquality(t, renderParts[0].TextureKey != renderParts[1].TextureKey, true)

	// the first cell's quad sits at the origin; the second starts one
	// cell to the right and is flipped, so its U coordinates are reversed.
	test.ExpectEquality(t, renderParts[0].Vertices[0].X, int16(0))
	test.ExpectEquality(t, renderParts[1].Vertices[0].X, int16(cellPixels))
	test.ExpectEquality(t, renderParts[1].Vertices[0].TexCoord[0], float32(1))
}

func TestBuildScreenPartsEmitsSingleQuadForBitmapFormat(t *testing.T) {
	vram := &flatVRAM{}
	v := NewVDP2(vram, &fakeCRAM{}, NewBeam(clocks.NTSC(), NTSC, 224))
	v.Regs.BGON = 1 << uint(NBG0)
	v.Regs.SetScreenState(NBG0, ScreenState{
		IsDisplayEnabled: true,
		Format:           FormatBitmap,
		ColorCount:       ColorRGB32K,
	})

	renderParts := v.buildScreenParts(NBG0)

	test.ExpectEquality(t, len(renderParts), 1)
	test.ExpectEquality(t, len(renderParts[0].Vertices), 4)
}
