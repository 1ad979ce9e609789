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
	"github.com/rtoumazet/saturnin-sub002/hardware/clocks"
)

// Standard names the TV timing standard the beam state machine runs under.
type Standard int

const (
	NTSC Standard = iota
	PAL
)

// Event is one of the beam edges the state machine can emit while
// advancing. A single Advance call may emit several, in chronological
// order, if it is handed enough cycles to cross more than one boundary.
type Event int

const (
	HBlankIn Event = iota
	HBlankOut
	VBlankIn
	VBlankOut
)

// Beam is the VDP2 horizontal/vertical timing state machine. It tracks
// elapsed master-clock cycles within the current line and frame and
// derives HBlank/VBlank edges from the standard's line and frame geometry,
// the way real VDP2 timing is driven off the master clock rather than off
// wall-clock time.
type Beam struct {
	clock    clocks.ClockSource
	standard Standard

	linesPerFrame int
	activeLines   int

	cyclesPerLine    uint64
	cyclesPerHActive uint64
	cyclesPerFrame   uint64

	elapsedFrameCycles uint64
	elapsedLineCycles  uint64
	currentLine        int

	inHBlank bool
	inVBlank bool
}

// NewBeam builds a beam timing state machine for the given standard,
// clock, and number of active (non-blanked) scanlines.
func NewBeam(clock clocks.ClockSource, standard Standard, activeLines int) *Beam {
	b := &Beam{clock: clock, standard: standard, activeLines: activeLines}

	var lineDuration, hblankDuration = clocks.NTSCLineDuration, clocks.NTSCHBlankDuration
	b.linesPerFrame = clocks.NTSCLinesPerFrame
	if standard == PAL {
		lineDuration, hblankDuration = clocks.PALLineDuration, clocks.PALHBlankDuration
		b.linesPerFrame = clocks.PALLinesPerFrame
	}

	b.cyclesPerLine = clock.CyclesPer(lineDuration)
	b.cyclesPerHActive = b.cyclesPerLine - clock.CyclesPer(hblankDuration)
	b.cyclesPerFrame = b.cyclesPerLine * uint64(b.linesPerFrame)
	return b
}

// CurrentLine is the scanline the beam is currently drawing, 0-based.
func (b *Beam) CurrentLine() int { return b.currentLine }

// InHBlank reports whether the beam is currently within a line's HBlank
// portion.
func (b *Beam) InHBlank() bool { return b.inHBlank }

// InVBlank reports whether the beam is currently within the frame's
// VBlank portion.
func (b *Beam) InVBlank() bool { return b.inVBlank }

// Advance moves the beam forward by the given number of master-clock
// cycles, which may span any number of lines or frames, and returns the
// edges crossed in chronological order.
//
// Each iteration of the loop processes at most one line's worth of
// cycles, so a caller handing in an arbitrarily large cycle count still
// observes every HBlank/VBlank edge in between, not just the final state.
func (b *Beam) Advance(cycles uint64) []Event {
	var events []Event

	for cycles > 0 {
		remainingInLine := b.cyclesPerLine - b.elapsedLineCycles
		step := cycles
		if step > remainingInLine {
			step = remainingInLine
		}

		b.elapsedLineCycles += step
		b.elapsedFrameCycles += step
		cycles -= step

		if !b.inHBlank && b.elapsedLineCycles >= b.cyclesPerHActive {
			b.inHBlank = true
			events = append(events, HBlankIn)
		}

		if b.elapsedLineCycles >= b.cyclesPerLine {
			b.elapsedLineCycles -= b.cyclesPerLine
			b.inHBlank = false
			events = append(events, HBlankOut)

			b.currentLine++
			if !b.inVBlank && b.currentLine >= b.activeLines {
				b.inVBlank = true
				events = append(events, VBlankIn)
			}
			if b.currentLine >= b.linesPerFrame {
				b.currentLine = 0
				b.elapsedFrameCycles -= b.cyclesPerFrame
				b.inVBlank = false
				events = append(events, VBlankOut)
			}
		}
	}

	return events
}
