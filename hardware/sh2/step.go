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

// Step fetches the opcode at PC, dispatches and executes exactly one
// instruction (including any delay-slot instruction it pulls in), advances
// the on-chip FRT by the resulting cycle count, checks the breakpoint
// list, and returns the number of cycles this step consumed.
//
// If the core is already Stopped(), Step is a no-op that returns 0; the
// host is expected to stop calling it in that state until Reset().
func (s *State) Step() uint8 {
	if s.stopped {
		return 0
	}

	if i, ok := s.nextInterrupt(); ok {
		s.dispatchInterrupt(i)
	}

	op := s.bus.Read16(s.PC)
	s.currentOpcode = op
	s.cyclesElapsed = 0

	def := dispatchTable[op]
	if def == nil {
		s.badOpcode()
	} else {
		def.execute(s)
	}

	if s.cyclesElapsed == 0 {
		s.cyclesElapsed = 1
	}

	s.tickFRT(s.cyclesElapsed)

	s.pausedAtBreak = false
	for i := 0; i < maxBreakpoints; i++ {
		if s.breakpointSet[i] && s.breakpoints[i] == s.PC {
			s.pausedAtBreak = true
			break
		}
	}

	return s.cyclesElapsed
}

// badOpcode is dispatched for any fetched opcode with no matching static
// instruction entry. It logs and leaves PC unchanged; the host will stop
// calling Step() once it observes the "stopped" flag.
func (s *State) badOpcode() {
	s.stopped = true
	s.stopReason = errors.Errorf(errors.UnknownOpcode, s.currentOpcode, s.PC).Error()
	s.log.Log(logger.Allow, "sh2", s.stopReason)
	s.cyclesElapsed = 1
}

// tickFRT advances the free-running timer by cycles, queuing any interrupt
// the tick newly enables via IPRB/TIER.
func (s *State) tickFRT(cycles uint8) {
	ev := s.OnChip.FRT.Tick(cycles)

	level := s.OnChip.INTC.FRTPriority()
	if level == 0 {
		return
	}

	if ev.Overflow && s.OnChip.FRT.OverflowEnabled() {
		s.SendInterrupt(interruptFromVCR(s.OnChip.INTC.VCRD&0xFF, level, "FRT-OVI"))
	}
	if ev.CompareMatchA && s.OnChip.FRT.CompareAEnabled() {
		s.SendInterrupt(interruptFromVCR(s.OnChip.INTC.VCRC&0xFF, level, "FRT-OCIA"))
	}
	if ev.CompareMatchB && s.OnChip.FRT.CompareBEnabled() {
		s.SendInterrupt(interruptFromVCR((s.OnChip.INTC.VCRC>>8)&0xFF, level, "FRT-OCIB"))
	}
}
