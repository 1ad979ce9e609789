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

package compositor

import (
	"sync"

	"github.com/rtoumazet/saturnin-sub002/assert"
	"github.com/rtoumazet/saturnin-sub002/logger"
	"github.com/rtoumazet/saturnin-sub002/video/parts"
)

// FrameParts is a complete frame's worth of parts, grouped by the
// (priority, layer) key the compositor composites by.
type FrameParts map[parts.Key][]parts.RenderPart

// Handoff is the synchronization point between the emulation thread,
// which produces one FrameParts per frame, and the renderer thread, which
// composites the most recently published one. The emulation thread never
// blocks on Publish; the renderer thread blocks in Take until a frame it
// hasn't consumed yet exists, so the two run as independently as the host
// allows rather than in lockstep.
type Handoff struct {
	mu   sync.Mutex
	cond *sync.Cond

	current    FrameParts
	generation uint64
	consumed   uint64

	producer     uint64
	producerSeen bool
	log          *logger.Logger
}

// NewHandoff returns a ready-to-use handoff point.
func NewHandoff() *Handoff {
	h := &Handoff{log: logger.NewLogger(8)}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Publish makes fp the current frame and wakes any renderer thread
// blocked in Take. Called once per frame by the emulation thread, after
// VDP2's on_vblank_in has finished building every screen's parts list.
// Publish is only ever meant to be called from that one emulation thread;
// a second caller would race Take's generation/consumed bookkeeping, so a
// change of calling goroutine is logged rather than silently tolerated.
func (h *Handoff) Publish(fp FrameParts) {
	id := assert.GoroutineID()

	h.mu.Lock()
	if !h.producerSeen {
		h.producer = id
		h.producerSeen = true
	} else if h.producer != id {
		h.log.Log(logger.Allow, "compositor", "Publish called from a different goroutine than before")
	}
	h.current = fp
	h.generation++
	h.mu.Unlock()
	h.cond.Broadcast()
}

// Take blocks until a frame newer than the last one this caller consumed
// is available, then returns it. Intended to be called from a single
// renderer thread; concurrent callers would each consume disjoint frames
// rather than share one.
func (h *Handoff) Take() FrameParts {
	h.mu.Lock()
	defer h.mu.Unlock()
	for h.generation == h.consumed {
		h.cond.Wait()
	}
	h.consumed = h.generation
	return h.current
}

// TryTake returns the current frame and whether it is newer than the
// last one consumed, without blocking. Useful for a renderer thread that
// would rather redraw the previous frame than stall.
func (h *Handoff) TryTake() (fp FrameParts, fresh bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fresh = h.generation != h.consumed
	if fresh {
		h.consumed = h.generation
	}
	return h.current, fresh
}
