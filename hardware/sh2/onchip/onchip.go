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

// Package onchip groups the typed register views for every SH-2 on-chip
// peripheral block: INTC, BSC, CACHE, DMAC, DIVU, FRT, WDT, SCI and PDM.
//
// Each peripheral owns its registers as plain struct fields rather than a
// byte array sliced by hand-derived offsets -- the two are behaviourally
// equivalent for a 9-bit address window this small, and struct fields read
// far better at every call site. The owning SH-2 state still exposes the
// peripherals through a single 9-bit-masked address window (see
// hardware/sh2.State.OnChipRead32/OnChipWrite32). Only 32-bit access to
// that window is provided.
package onchip

// AddressMask is the 9-bit mask the on-chip register window is addressed
// with.
const AddressMask = 0x1FF

// Block is every on-chip peripheral an SH-2 owns.
type Block struct {
	INTC  INTC
	BSC   BSC
	Cache Cache
	DMAC  DMAC
	DIVU  DIVU
	FRT   FRT
	WDT   WDT
	SCI0  SCI
	SCI1  SCI
	PDM   PDM
}
