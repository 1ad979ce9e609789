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
	"sort"

	"github.com/rtoumazet/saturnin-sub002/hardware/memory/bus"
	"github.com/rtoumazet/saturnin-sub002/logger"
)

// NMIVector is the privileged vector number reserved for non-maskable
// interrupts. An NMI may evict a lower-priority entry from a full pending
// queue; nothing else can.
const NMIVector = 11

// MaxPendingInterrupts bounds the pending queue. A full queue drops any
// further non-NMI request.
const MaxPendingInterrupts = 10

// SendInterrupt enqueues a pending interrupt exactly as INTC would:
//
//   - level == 0 is a no-op; nothing is enqueued and nothing is evicted.
//   - a full queue accepts only an NMI, which evicts the current
//     lowest-priority entry to make room.
//   - a full queue with a non-NMI request drops it silently (logged).
//   - at most one pending entry may exist per level; a duplicate level is
//     dropped.
//   - surviving insertions keep the queue sorted descending by level.
func (s *State) SendInterrupt(i bus.Interrupt) {
	if i.Level == 0 {
		return
	}

	if len(s.pendingInterrupts) >= MaxPendingInterrupts {
		if i.Vector != NMIVector {
			s.log.Logf(logger.Allow, "sh2", "interrupt queue full, dropped %s", i.Name)
			return
		}
		// evict the lowest-priority (last, since the queue is kept sorted
		// descending) entry to make room for the NMI.
		evicted := s.pendingInterrupts[len(s.pendingInterrupts)-1]
		s.isLevelInterrupted[evicted.Level] = false
		s.pendingInterrupts = s.pendingInterrupts[:len(s.pendingInterrupts)-1]
	} else if s.isLevelInterrupted[i.Level] {
		return
	}

	s.pendingInterrupts = append(s.pendingInterrupts, i)
	s.isLevelInterrupted[i.Level] = true
	sort.SliceStable(s.pendingInterrupts, func(a, b int) bool {
		return s.pendingInterrupts[a].Level > s.pendingInterrupts[b].Level
	})
}

// nextInterrupt returns the interrupt that should fire at the top of the
// current step, if any: the highest-level pending entry, provided its
// level exceeds the current interrupt mask, or any pending NMI regardless
// of mask.
func (s *State) nextInterrupt() (bus.Interrupt, bool) {
	for _, p := range s.pendingInterrupts {
		if p.Vector == NMIVector || p.Level > s.SR.I() {
			return p, true
		}
	}
	return bus.Interrupt{}, false
}

// dispatchInterrupt performs the interrupt-entry sequence: push PC and SR,
// raise the interrupt mask to the new level, and jump through the vector
// table at VBR + vector*4.
func (s *State) dispatchInterrupt(i bus.Interrupt) {
	s.R[15] -= 8
	s.bus.Write32(s.R[15], s.PC)
	s.bus.Write32(s.R[15]+4, s.SR.Value)

	s.SR.SetI(i.Level)
	s.PC = s.bus.Read32(s.VBR + uint32(i.Vector)*4)

	s.isInterrupted = true
	s.currentInterrupt = i

	s.removePending(i)
}

// interruptFromVCR builds the Interrupt record an on-chip peripheral sends
// for itself, using a vector number taken from one of its VCR registers.
func interruptFromVCR(vector uint16, level uint8, name string) bus.Interrupt {
	return bus.Interrupt{Vector: uint8(vector), Level: level, Name: name}
}

func (s *State) removePending(i bus.Interrupt) {
	for idx, p := range s.pendingInterrupts {
		if p == i {
			s.pendingInterrupts = append(s.pendingInterrupts[:idx], s.pendingInterrupts[idx+1:]...)
			break
		}
	}
	s.isLevelInterrupted[i.Level] = false
}
