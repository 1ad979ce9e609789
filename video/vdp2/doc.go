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

// Package vdp2 implements the Saturn's background controller: the register
// window for its six scroll screens (NBG0-3, RBG0-1), the horizontal/
// vertical beam timing state machine, the VRAM cycle-pattern arbitration
// that gates whether a screen may display at all, and the per-frame
// render-data builder that hands a parts list to the compositor on every
// VBlank-In.
//
// Sprite generation (VDP1), CD-block, SCSP, and cartridge/BIOS loading are
// not modelled here; this package only consumes VRAM and colour RAM through
// the shared bus.Bus interface and only produces parts.RenderPart values, so
// none of those collaborators need to exist for this package to be useful.
package vdp2
