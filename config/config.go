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

// Package config holds the handful of construction-time values the core
// itself needs. It is deliberately not a file-parsing layer: reading a
// config file from disk is a host concern, out of this module's scope.
package config

import "github.com/rtoumazet/saturnin-sub002/video/vdp2"

// VRAMSize is the amount of VRAM the emulated console is configured with.
type VRAMSize int

const (
	VRAM4Mbit VRAMSize = iota
	VRAM8Mbit
)

// Hardware is the set of values fixed for the lifetime of a run: which TV
// standard drives the beam timing, how much VRAM is installed, and the
// VDP2 register window's base address in the SH-2 address space.
type Hardware struct {
	Standard        vdp2.Standard
	VRAM            VRAMSize
	VDP2RegisterBase uint32
}

// DefaultNTSC returns the configuration this emulation assumes absent any
// host override: NTSC timing, 8Mbit VRAM, VDP2 registers at their
// documented base address.
func DefaultNTSC() Hardware {
	return Hardware{
		Standard:         vdp2.NTSC,
		VRAM:             VRAM8Mbit,
		VDP2RegisterBase: 0x25F80000,
	}
}

// DefaultPAL is DefaultNTSC with PAL timing.
func DefaultPAL() Hardware {
	h := DefaultNTSC()
	h.Standard = vdp2.PAL
	return h
}
