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

// Package bus defines the memory bus concept shared by every collaborator
// the core talks to: the SH-2 cores, the VDP2 register window, and (outside
// this module's scope) VDP1, the CD block, SCSP and SMPC.
//
// Address decoding, mirroring and endianness all live on the bus
// implementation, never in the core. The core only ever asks for 8, 16 or
// 32 bits at a 32-bit address and expects big-endian semantics on the
// emulated side, matching what the real SH-2 observes.
package bus
