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
)

// OutputLayer names one of the four textures a composited frame is built
// across: the visible front and back buffers, and two debug views that
// let a host UI inspect VDP1/VDP2 contributions in isolation.
type OutputLayer int

const (
	OutputFront OutputLayer = iota
	OutputBack
	OutputVDP1Debug
	OutputVDP2Debug
	outputLayerCount
)

// OutputSequence is the fixed-size set of framebuffer-backed textures the
// composition pass draws into, one per OutputLayer.
type OutputSequence struct {
	textures [outputLayerCount]uint32
	fbo      uint32
	width    int32
	height   int32
}

// NewOutputSequence allocates the framebuffer object shared by every
// output layer; Setup must still be called before any layer is drawable.
func NewOutputSequence() *OutputSequence {
	seq := &OutputSequence{}
	gl.GenFramebuffers(1, &seq.fbo)
	return seq
}

// Destroy releases the framebuffer object.
func (seq *OutputSequence) Destroy() {
	gl.DeleteFramebuffers(1, &seq.fbo)
}

// Setup (re)allocates every output layer's texture at the given
// dimensions. Returns true if a previous, differently-sized allocation
// was replaced.
func (seq *OutputSequence) Setup(width, height int32) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, seq.fbo)

	if seq.width == width && seq.height == height {
		return false
	}
	changed := seq.width != 0 || seq.height != 0

	seq.width, seq.height = width, height

	for i := range seq.textures {
		if seq.textures[i] == 0 {
			gl.GenTextures(1, &seq.textures[i])
		}
		gl.BindTexture(gl.TEXTURE_2D, seq.textures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}

	return changed
}

// Texture returns the GL texture name backing layer.
func (seq *OutputSequence) Texture(layer OutputLayer) uint32 { return seq.textures[layer] }

// bind attaches layer's texture as the framebuffer's colour target.
func (seq *OutputSequence) bind(layer OutputLayer) uint32 {
	id := seq.textures[layer]
	gl.BindFramebuffer(gl.FRAMEBUFFER, seq.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, id, 0)
	return id
}

// Clear fills layer with transparent black.
func (seq *OutputSequence) Clear(layer OutputLayer) {
	seq.bind(layer)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw binds layer as the active framebuffer target and runs fn, which is
// expected to issue the actual draw calls for one composition pass.
func (seq *OutputSequence) Draw(layer OutputLayer, fn func()) {
	seq.bind(layer)
	fn()
}
