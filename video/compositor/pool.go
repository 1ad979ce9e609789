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
	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/rtoumazet/saturnin-sub002/video/parts"
)

// MaxPooledLayers caps how many distinct (priority, layer) textures the
// pool keeps alive at once.
const MaxPooledLayers = 20

type poolStatus int

const (
	statusUnused poolStatus = iota
	statusReuse
	statusToClear
)

type poolEntry struct {
	key     parts.Key
	status  poolStatus
	texture uint32
}

// LayerPool is the set of GPU textures the compositor draws each
// (priority, layer) group's parts into before compositing them together.
// Its slots are reused across frames by key so that a screen which keeps
// occupying the same priority doesn't need a fresh texture allocation
// every frame; a slot is only released once nothing asks for its key
// again.
type LayerPool struct {
	entries       [MaxPooledLayers]poolEntry
	index         map[parts.Key]int
	width, height int32
	fbo           uint32
}

// NewLayerPool returns an empty pool; Setup must be called once the
// output dimensions are known before any texture is usable.
func NewLayerPool() *LayerPool {
	p := &LayerPool{index: make(map[parts.Key]int)}
	gl.GenFramebuffers(1, &p.fbo)
	return p
}

// Destroy releases the pool's framebuffer object. Pooled textures are not
// deleted, here or when End frees a slot; a freed slot keeps its texture
// for the next key assigned to it.
func (p *LayerPool) Destroy() {
	gl.DeleteFramebuffers(1, &p.fbo)
}

// bind attaches pool slot i's texture as the active framebuffer's colour
// target, so subsequent draw calls render into that slot.
func (p *LayerPool) bind(i int) uint32 {
	id := p.entries[i].texture
	gl.BindFramebuffer(gl.FRAMEBUFFER, p.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, id, 0)
	return id
}

// Setup (re)allocates every pooled slot's backing texture at the given
// dimensions. Existing slot assignments are preserved; only the GPU
// storage is replaced.
func (p *LayerPool) Setup(width, height int32) {
	p.width, p.height = width, height
	for i := range p.entries {
		if p.entries[i].texture == 0 {
			gl.GenTextures(1, &p.entries[i].texture)
		}
		gl.BindTexture(gl.TEXTURE_2D, p.entries[i].texture)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
}

// Begin starts a frame's pool lifecycle: every slot reused last frame is
// provisionally marked to-clear. Acquire then promotes it back to reuse
// for any key requested again this frame; End releases whatever is still
// marked to-clear once every part has been acquired.
func (p *LayerPool) Begin() {
	for i := range p.entries {
		if p.entries[i].status == statusReuse {
			p.entries[i].status = statusToClear
		}
	}
}

// Acquire returns the pool slot index assigned to key for this frame,
// assigning a free or reclaimed slot if key wasn't already in use.
// isNew reports whether the slot's texture needs clearing before use.
func (p *LayerPool) Acquire(key parts.Key) (index int, isNew bool) {
	if i, ok := p.index[key]; ok {
		p.entries[i].status = statusReuse
		return i, false
	}

	for i := range p.entries {
		if p.entries[i].status == statusUnused {
			p.assign(i, key)
			return i, true
		}
	}

	for i := range p.entries {
		if p.entries[i].status == statusToClear {
			delete(p.index, p.entries[i].key)
			p.assign(i, key)
			return i, true
		}
	}

	return -1, false
}

func (p *LayerPool) assign(i int, key parts.Key) {
	p.entries[i].key = key
	p.entries[i].status = statusReuse
	p.index[key] = i
}

// End completes the frame's lifecycle, releasing every slot still marked
// to-clear (nothing re-acquired it this frame) and returning their
// indices so the caller can clear their GPU textures.
func (p *LayerPool) End() []int {
	var freed []int
	for i := range p.entries {
		if p.entries[i].status == statusToClear {
			delete(p.index, p.entries[i].key)
			p.entries[i].status = statusUnused
			freed = append(freed, i)
		}
	}
	return freed
}

// Texture returns the GPU texture name bound to pool slot i.
func (p *LayerPool) Texture(i int) uint32 { return p.entries[i].texture }

// Len reports how many slots the pool has, used and unused.
func (p *LayerPool) Len() int { return len(p.entries) }

// Clear fills slot i with transparent black, used before drawing a
// newly-acquired slot for the first time.
func (p *LayerPool) Clear(i int) {
	p.bind(i)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw binds slot i as the active framebuffer target and runs fn, which
// is expected to issue the actual draw calls for that slot's parts.
func (p *LayerPool) Draw(i int, fn func()) {
	p.bind(i)
	fn()
}
