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
	"strings"
	"testing"
	"time"

	"github.com/rtoumazet/saturnin-sub002/logger"
	"github.com/rtoumazet/saturnin-sub002/test"
	"github.com/rtoumazet/saturnin-sub002/video/parts"
)

// newTestPool builds a LayerPool without touching the GPU, so its
// index-assignment logic can be exercised outside a GL context.
func newTestPool() *LayerPool {
	return &LayerPool{index: make(map[parts.Key]int)}
}

func TestPoolAcquireReusesSameKeyAcrossFrames(t *testing.T) {
	p := newTestPool()
	key := parts.Key{Priority: 4, Layer: parts.LayerNBG0}

	p.Begin()
	i1, isNew1 := p.Acquire(key)
	p.End()

	p.Begin()
	i2, isNew2 := p.Acquire(key)
	p.End()

	test.ExpectEquality(t, isNew1, true)
	test.ExpectEquality(t, isNew2, false)
	test.ExpectEquality(t, i1, i2)
}

func TestPoolReleasesSlotNotReacquired(t *testing.T) {
	p := newTestPool()
	key := parts.Key{Priority: 2, Layer: parts.LayerNBG1}

	p.Begin()
	i1, _ := p.Acquire(key)
	p.End()

	// next frame: key isn't requested at all.
	p.Begin()
	freed := p.End()

	test.ExpectEquality(t, len(freed), 1)
	test.ExpectEquality(t, freed[0], i1)

	// the slot is available again for a different key.
	p.Begin()
	i2, isNew := p.Acquire(parts.Key{Priority: 3, Layer: parts.LayerNBG2})
	p.End()

	test.ExpectEquality(t, isNew, true)
	test.ExpectEquality(t, i2, i1)
}

func TestPoolExhaustionReportsNoSlot(t *testing.T) {
	p := newTestPool()
	p.Begin()
	for i := 0; i < MaxPooledLayers; i++ {
		key := parts.Key{Priority: uint8(i % 7), Layer: parts.Layer(string(rune('A' + i)))}
		index, isNew := p.Acquire(key)
		test.ExpectEquality(t, index >= 0, true)
		test.ExpectEquality(t, isNew, true)
	}

	overflowIndex, _ := p.Acquire(parts.Key{Priority: 7, Layer: "overflow"})
	test.ExpectEquality(t, overflowIndex, -1)
}

func TestAcquireLayerLogsOnPoolExhaustion(t *testing.T) {
	p := newTestPool()
	log := logger.NewLogger(8)

	p.Begin()
	for i := 0; i < MaxPooledLayers; i++ {
		key := parts.Key{Priority: uint8(i % 7), Layer: parts.Layer(string(rune('A' + i)))}
		index, _ := acquireLayer(p, log, key)
		test.ExpectEquality(t, index >= 0, true)
	}

	index, _ := acquireLayer(p, log, parts.Key{Priority: 7, Layer: "overflow"})
	test.ExpectEquality(t, index, -1)

	var sb strings.Builder
	log.Write(&sb)
	test.ExpectEquality(t, strings.Contains(sb.String(), "compositor"), true)
	test.ExpectEquality(t, strings.Contains(sb.String(), "exhausted"), true)
}

func TestBuildBatchesGroupsConsecutiveSameDrawType(t *testing.T) {
	quad := func(dt parts.DrawType) parts.RenderPart {
		return parts.RenderPart{DrawType: dt, Vertices: make([]parts.Vertex, dt.VertexCount())}
	}

	renderParts := []parts.RenderPart{
		quad(parts.TexturedPolygon),
		quad(parts.TexturedPolygon),
		quad(parts.Line),
		quad(parts.TexturedPolygon),
	}

	vertices, indices, batches := BuildBatches(renderParts)

	test.ExpectEquality(t, len(batches), 3)
	test.ExpectEquality(t, batches[0].DrawType, parts.TexturedPolygon)
	test.ExpectEquality(t, batches[0].VertexCount, 8)
	test.ExpectEquality(t, batches[1].DrawType, parts.Line)
	test.ExpectEquality(t, batches[2].DrawType, parts.TexturedPolygon)
	test.ExpectEquality(t, len(vertices), 4+4+2+4)
	test.ExpectEquality(t, len(indices), 6+6+2+6)
}

func TestHandoffTakeBlocksUntilPublish(t *testing.T) {
	h := NewHandoff()
	done := make(chan FrameParts, 1)

	go func() {
		done <- h.Take()
	}()

	// give the goroutine a chance to block in Take before publishing.
	time.Sleep(10 * time.Millisecond)

	fp := FrameParts{parts.Key{Priority: 1, Layer: parts.LayerNBG0}: nil}
	h.Publish(fp)

	select {
	case got := <-done:
		test.ExpectEquality(t, len(got), len(fp))
	case <-time.After(time.Second):
		t.Fatal("Take did not unblock after Publish")
	}
}

func TestHandoffTryTakeReportsFreshness(t *testing.T) {
	h := NewHandoff()

	_, fresh := h.TryTake()
	test.ExpectEquality(t, fresh, false)

	h.Publish(FrameParts{})
	_, fresh = h.TryTake()
	test.ExpectEquality(t, fresh, true)

	_, fresh = h.TryTake()
	test.ExpectEquality(t, fresh, false)
}
