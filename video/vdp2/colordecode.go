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

import "github.com/rtoumazet/saturnin-sub002/hardware/memory/bus"

// CRAMMode selects colour RAM's addressing mode, set by RAMCTL's CRMDn
// field. Modes 0 and 1 address colour RAM in 2-byte (RGB555) entries;
// mode 2 addresses it in 4-byte entries so a single bank can hold both an
// RGB555 and an RGB888 interpretation of the same palette.
type CRAMMode int

const (
	CRAMMode0 CRAMMode = iota
	CRAMMode1
	CRAMMode2
)

// entrySize returns the byte stride between consecutive colour RAM
// entries under mode.
func (m CRAMMode) entrySize() uint32 {
	if m == CRAMMode2 {
		return 4
	}
	return 2
}

// The bank masks below are the address masks CRAMBankAddress applies to
// CRAOFA/CRAOFB's colour-offset field for the given screen's palette bank, per the
// colour RAM offset rules: 8-bit-indexed screens select one of four
// 0x0FF0-spaced banks, 16-colour screens one of sixteen 0x0FC0/0x0F80/
// 0xFF00-spaced banks depending on mode.
const (
	bankMask8bit       = 0x0FF0
	bankMask4bitMode01 = 0x0FC0
	bankMask4bitMode2  = 0x0F80
	bankMaskHighest    = 0xFF00
)

// Color is a decoded RGBA pixel, 8 bits per channel, with Alpha 0 meaning
// transparent (the SPD "dot 0 is transparent" rule, or an explicit
// transparent palette entry).
type Color struct {
	R, G, B, A uint8
}

// DecodeIndexed resolves a palette index through colour RAM for the given
// colour count and CRAM mode, applying the SPD (special priority/
// transparency) rule that index 0 of a 4/6/7/8-bit palette is always
// transparent regardless of what colour RAM actually stores there.
func DecodeIndexed(b bus.Bus, cramBase uint32, mode CRAMMode, colors ColorCount, index uint32) Color {
	if index == 0 {
		return Color{}
	}

	addr := cramBase + index*mode.entrySize()
	if mode == CRAMMode2 {
		v := b.Read32(addr)
		return Color{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xFF,
		}
	}

	v := b.Read16(addr)
	return decodeRGB555(v)
}

// DecodeRGB resolves a direct-colour pixel: RGB16M mode reads a 32-bit
// RGB888 word (used by bitmap screens only), RGB32K reads a 16-bit RGB555
// word straight from VRAM rather than through colour RAM.
func DecodeRGB(raw uint32, colors ColorCount) Color {
	if colors == ColorRGB16M {
		c := Color{
			R: uint8(raw >> 16),
			G: uint8(raw >> 8),
			B: uint8(raw),
			A: 0xFF,
		}
		if raw&0x80000000 != 0 {
			c.A = 0
		}
		return c
	}
	return decodeRGB555(uint16(raw))
}

// decodeRGB555 expands a 15-bit-colour VDP2 word (bit 15 is the
// transparency flag under SPD, the remaining 15 bits 5 bits per channel)
// into an 8-bit-per-channel Color.
func decodeRGB555(v uint16) Color {
	r := uint8((v & 0x001F) << 3)
	g := uint8((v & 0x03E0) >> 5 << 3)
	b := uint8((v & 0x7C00) >> 10 << 3)
	a := uint8(0xFF)
	if v&0x8000 != 0 {
		a = 0
	}
	return Color{R: r, G: g, B: b, A: a}
}

// CRAMBankAddress computes the colour RAM bank base address a screen's
// palette indices are offset into, applying the CRAOFA/CRAOFB
// colour-offset field and bank mask appropriate to its colour depth and
// the current CRAM addressing mode.
func CRAMBankAddress(offsetField uint16, colors ColorCount, mode CRAMMode) uint32 {
	var mask uint16
	switch {
	case colors == Color256:
		mask = bankMask8bit
	case mode == CRAMMode2:
		mask = bankMask4bitMode2
	case mode == CRAMMode1:
		mask = bankMaskHighest
	default:
		mask = bankMask4bitMode01
	}
	return uint32(offsetField&mask) * mode.entrySize()
}
