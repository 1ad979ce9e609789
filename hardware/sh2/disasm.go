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

package sh2

import "fmt"

// Disassemble renders a human-readable line for the opcode at addr, for the
// debugger shim. Unknown opcodes render as a bare hex dump rather than
// panicking -- the debugger must be able to display a corrupted or
// data-as-code region without crashing the whole session.
func (s *State) Disassemble(addr uint32) string {
	op := s.bus.Read16(addr)
	def := dispatchTable[op]
	if def == nil {
		return fmt.Sprintf(".word %#04x", op)
	}
	if def.disasm != nil {
		return def.disasm(op)
	}
	return def.mnemonic
}
