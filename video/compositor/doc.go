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

// Package compositor turns the parts lists VDP2 (and, out of this
// module's scope, VDP1) builds each frame into pixels: a pool of GPU
// layer textures reused across frames, a parts-list handoff that lets the
// emulation thread run ahead of the renderer thread, and the composition
// pass itself, which blends every (priority, layer) group into a single
// output frame in reverse-priority order.
package compositor
