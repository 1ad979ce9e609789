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

import "github.com/rtoumazet/saturnin-sub002/video/parts"

// Batch is a contiguous run of one draw type within a vertex/index
// buffer, the unit the renderer issues one draw call per.
type Batch struct {
	DrawType    parts.DrawType
	VertexStart int
	VertexCount int
	IndexStart  int
	IndexCount  int
}

// BuildBatches lays out renderParts into a single vertex buffer and a
// single index buffer, grouping consecutive parts of the same draw type
// into one batch so the renderer only needs one draw call per uniform
// run rather than one per part. It does not reorder parts; callers that
// want draw-type locality should sort first.
func BuildBatches(renderParts []parts.RenderPart) (vertices []parts.Vertex, indices []uint16, batches []Batch) {
	var cur *Batch

	for _, rp := range renderParts {
		vertexBase := len(vertices)
		indexBase := len(indices)

		vertices = append(vertices, rp.Vertices...)
		indices = append(indices, quadIndices(rp.DrawType, uint16(vertexBase))...)

		if cur != nil && cur.DrawType == rp.DrawType {
			cur.VertexCount += len(rp.Vertices)
			cur.IndexCount += len(indices) - indexBase
			continue
		}

		batches = append(batches, Batch{
			DrawType:    rp.DrawType,
			VertexStart: vertexBase,
			VertexCount: len(rp.Vertices),
			IndexStart:  indexBase,
			IndexCount:  len(indices) - indexBase,
		})
		cur = &batches[len(batches)-1]
	}

	return vertices, indices, batches
}

// quadIndices produces the index sequence for a single part of the given
// draw type, with vertex indices offset by base so the part's vertices
// are addressed at their actual position in a shared vertex buffer.
func quadIndices(d parts.DrawType, base uint16) []uint16 {
	switch d {
	case parts.TexturedPolygon, parts.NonTexturedPolygon:
		return []uint16{base, base + 1, base + 2, base, base + 2, base + 3}
	case parts.Polyline:
		return []uint16{base, base + 1, base + 2, base + 3}
	case parts.Line:
		return []uint16{base, base + 1}
	default:
		return nil
	}
}
