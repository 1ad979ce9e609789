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
	"sort"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/rtoumazet/saturnin-sub002/logger"
	"github.com/rtoumazet/saturnin-sub002/video/parts"
)

// Compositor owns the pooled layer textures, the final output textures,
// and the parts-list handoff from the emulation thread, and turns one
// published FrameParts into pixels on OutputFront.
type Compositor struct {
	Pool    *LayerPool
	Output  *OutputSequence
	Handoff *Handoff
	Log     *logger.Logger
}

// NewCompositor builds a compositor with its own pool, output sequence,
// and handoff point.
func NewCompositor() *Compositor {
	return &Compositor{
		Pool:    NewLayerPool(),
		Output:  NewOutputSequence(),
		Handoff: NewHandoff(),
		Log:     logger.NewLogger(32),
	}
}

// Destroy releases the compositor's GPU resources.
func (c *Compositor) Destroy() {
	c.Pool.Destroy()
	c.Output.Destroy()
}

// RunOnce blocks for the next published frame and composites it. Intended
// to be the body of the renderer thread's per-frame loop.
func (c *Compositor) RunOnce() {
	c.CompositeFrame(c.Handoff.Take())
}

// CompositeFrame draws every (priority, layer) group in fp into its
// pooled layer texture, then blends the occupied pool slots onto
// OutputFront in descending priority order -- 7 first, 1 last -- each
// layer composited with standard alpha blending over whatever the
// previous layer left behind.
func (c *Compositor) CompositeFrame(fp FrameParts) {
	c.Pool.Begin()

	type occupied struct {
		key   parts.Key
		index int
	}
	occupiedSlots := make([]occupied, 0, len(fp))

	for key, rp := range fp {
		index, isNew := acquireLayer(c.Pool, c.Log, key)
		if index < 0 {
			continue
		}
		if isNew {
			c.Pool.Clear(index)
		}

		vertices, indices, batches := BuildBatches(rp)
		c.Pool.Draw(index, func() {
			drawBatches(vertices, indices, batches)
		})

		occupiedSlots = append(occupiedSlots, occupied{key: key, index: index})
	}

	sort.Slice(occupiedSlots, func(i, j int) bool {
		return occupiedSlots[i].key.Priority > occupiedSlots[j].key.Priority
	})

	c.Output.Draw(OutputFront, func() {
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		for _, s := range occupiedSlots {
			blendTexture(c.Pool.Texture(s.index))
		}
		gl.Disable(gl.BLEND)
	})

	c.Pool.End()
}

// acquireLayer wraps Pool.Acquire with pool-exhaustion reporting: a frame
// that asks for more than MaxPooledLayers distinct (priority, layer)
// groups drops the overflowing layer for that one frame rather than
// failing the frame, but the drop is logged so it's visible to anything
// tailing the logger instead of vanishing silently.
func acquireLayer(pool *LayerPool, log *logger.Logger, key parts.Key) (index int, isNew bool) {
	index, isNew = pool.Acquire(key)
	if index < 0 && log != nil {
		log.Logf(logger.Allow, "compositor", "layer pool exhausted, dropping %v for this frame", key)
	}
	return index, isNew
}

// drawBatches issues one draw call per batch against whatever
// framebuffer is currently bound. The vertex/index data itself is
// uploaded by the caller's GPU buffer layer, out of this package's scope;
// this function only walks the batch ranges in the order the renderer
// must submit them.
func drawBatches(vertices []parts.Vertex, indices []uint16, batches []Batch) {
	for _, b := range batches {
		switch b.DrawType {
		case parts.TexturedPolygon, parts.NonTexturedPolygon:
			gl.DrawElements(gl.TRIANGLES, int32(b.IndexCount), gl.UNSIGNED_SHORT, gl.PtrOffset(b.IndexStart*2))
		case parts.Polyline:
			gl.DrawElements(gl.LINE_LOOP, int32(b.IndexCount), gl.UNSIGNED_SHORT, gl.PtrOffset(b.IndexStart*2))
		case parts.Line:
			gl.DrawElements(gl.LINES, int32(b.IndexCount), gl.UNSIGNED_SHORT, gl.PtrOffset(b.IndexStart*2))
		}
	}
}

// blendTexture draws a single pooled layer texture as a full-viewport
// quad over whatever is already in the bound framebuffer, with
// ONE_MINUS_SRC_ALPHA blending active.
func blendTexture(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
}
