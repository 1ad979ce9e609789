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

package bus

// Bus is required of anything the SH-2 or VDP2 read from or write to:
// main RAM, the on-chip register windows, VRAM/CRAM, and whatever the host
// maps cartridge and CD-block ROM to. All three widths must be supported at
// any 32-bit address; a collaborator that only makes sense at one width
// (say, an 8-bit peripheral register) still implements all three and simply
// widens or narrows internally.
type Bus interface {
	Read8(address uint32) uint8
	Read16(address uint32) uint16
	Read32(address uint32) uint32

	Write8(address uint32, data uint8)
	Write16(address uint32, data uint16)
	Write32(address uint32, data uint32)
}

// DebugBus is implemented by the same memory areas as Bus but is reserved
// for debugger use: Peek/Poke never trigger the side effects that a normal
// Read/Write would (advancing a FIFO, clearing a status bit, and so on).
type DebugBus interface {
	Peek(address uint32) (uint32, error)
	Poke(address uint32, value uint32) error
}

// Interrupt is the record collaborators use to deliver an interrupt request
// to an SH-2. Level 0 means "don't fire"; the NMI vector is privileged and
// may evict the lowest-priority entry from a full pending queue.
type Interrupt struct {
	Vector uint8
	Level  uint8
	Name   string
}
