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

import (
	"github.com/rtoumazet/saturnin-sub002/errors"
	"github.com/rtoumazet/saturnin-sub002/logger"
)

// delaySlot executes the instruction at addr -- the slot immediately
// following a delay-branch -- before the branch that requested it commits
// its new PC. It returns the cycle count of the slot instruction, which the
// caller adds to its own.
//
// addr equal to delaySlotSentinelAddress is a no-op: the reset vector
// layout leaves PC+2 pointing there immediately after power-on, and fetching
// it would read uninitialised vector-table bytes rather than a real
// instruction.
func (s *State) delaySlot(addr uint32) uint8 {
	if s.suppressNextDelaySlot {
		s.suppressNextDelaySlot = false
		return 0
	}
	if addr == delaySlotSentinelAddress {
		return 0
	}

	op := s.bus.Read16(addr)
	def := dispatchTable[op]

	if def != nil && def.illegalInSlot {
		s.stopped = true
		s.stopReason = errors.Errorf(errors.IllegalSlotInstruction, op, addr).Error()
		s.log.Log(logger.Allow, "sh2", s.stopReason)
		return 1
	}

	prevOpcode := s.currentOpcode
	prevPC := s.PC
	prevCycles := s.cyclesElapsed

	s.currentOpcode = op
	s.PC = addr
	s.cyclesElapsed = 0

	if def == nil {
		s.badOpcode()
	} else {
		def.execute(s)
	}

	cycles := s.cyclesElapsed

	s.currentOpcode = prevOpcode
	s.PC = prevPC
	s.cyclesElapsed = prevCycles

	return cycles
}
