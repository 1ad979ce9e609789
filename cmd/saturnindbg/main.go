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

// Command saturnindbg is a headless, terminal-driven debug session for the
// SH-2 core: step, breakpoint, inspect registers, with no GUI or GL
// context required. It is the one place this module wires together its
// ambient debug tooling (cbreak terminal input, a memviz state dump, and
// a statsview metrics page) rather than any single core package owning
// them.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"

	"github.com/rtoumazet/saturnin-sub002/hardware/sh2"
)

func main() {
	var metrics bool
	var dumpPath string
	flag.BoolVar(&metrics, "metrics", false, "serve a live statsview dashboard on :18066")
	flag.StringVar(&dumpPath, "dump", "", "write a memviz state graph of the core to this path on exit")
	flag.Parse()

	if metrics {
		view := statsview.New()
		go view.Start()
		defer view.Stop()
	}

	term, err := newRawTerminal(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	term.CBreak()
	defer term.Restore()

	core := sh2.NewSH2(sh2.Master, &flatBus{})
	core.PowerOnReset()

	if dumpPath != "" {
		defer dumpState(dumpPath, core)
	}

	runSession(core, bufio.NewReader(os.Stdin), os.Stdout)
}

// dumpState writes a memviz graph of the core's state to path, for
// inspecting register/pointer relationships after a session ends.
func dumpState(path string, core *sh2.State) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "saturnindbg: dump:", err)
		return
	}
	defer f.Close()
	memviz.Map(f, core)
}

// flatBus is a minimal bus so the debug session has something to step
// against without requiring the full memory map: 1 MiB of big-endian RAM,
// mirrored across the whole address space. Accesses are not logged.
type flatBus struct {
	data [1 << 20]byte
}

func (b *flatBus) Read8(a uint32) uint8   { return b.data[a&(1<<20-1)] }
func (b *flatBus) Read16(a uint32) uint16 {
	a &= 1<<20 - 1
	return uint16(b.data[a])<<8 | uint16(b.data[a+1])
}
func (b *flatBus) Read32(a uint32) uint32 {
	a &= 1<<20 - 1
	return uint32(b.data[a])<<24 | uint32(b.data[a+1])<<16 | uint32(b.data[a+2])<<8 | uint32(b.data[a+3])
}
func (b *flatBus) Write8(a uint32, v uint8) { b.data[a&(1<<20-1)] = v }
func (b *flatBus) Write16(a uint32, v uint16) {
	a &= 1<<20 - 1
	b.data[a] = uint8(v >> 8)
	b.data[a+1] = uint8(v)
}
func (b *flatBus) Write32(a uint32, v uint32) {
	a &= 1<<20 - 1
	b.data[a] = uint8(v >> 24)
	b.data[a+1] = uint8(v >> 16)
	b.data[a+2] = uint8(v >> 8)
	b.data[a+3] = uint8(v)
}
