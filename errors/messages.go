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

package errors

// error messages
const (
	// panics
	PanicError = "panic: %v: %v"

	// sh2
	IllegalSlotInstruction = "sh2 error: illegal instruction in delay slot (%#04x) at (%#08x)"
	UnknownOpcode          = "sh2 error: unknown opcode (%#04x) at (%#08x)"
	BreakpointHit          = "sh2 error: breakpoint hit at (%#08x)"
	InterruptQueueFull     = "sh2 error: pending interrupt queue full, dropped (%v)"
	CallstackUnderflow     = "sh2 error: callstack underflow on RTS"

	// memory bus
	UnmappedRead  = "bus error: unmapped read (width %d) at (%#08x)"
	UnmappedWrite = "bus error: unmapped write (width %d) at (%#08x)"
	UnpokeableAddress = "bus error: cannot poke address (%#08x)"
	UnpeekableAddress = "bus error: cannot peek address (%#08x)"

	// vdp2
	UnknownRegister        = "vdp2 error: unsupported register access (%#04x)"
	BadProtectedWrite      = "vdp2 error: protected register write rejected, missing 0xA55A key (%#04x)"
	ScreenNotDisplayable   = "vdp2 error: %v cannot be displayed this frame (%v)"
	CycleAllocationExceeded = "vdp2 error: vram cycle pattern cannot satisfy %v (needed %d, available %d)"

	// compositor
	PoolExhausted  = "compositor error: no free layer texture for (%v)"
	HandoffTimeout = "compositor error: parts list handoff did not complete"
)
