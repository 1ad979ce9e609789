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

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rtoumazet/saturnin-sub002/hardware/sh2"
)

// runSession drives a line-oriented debug loop against core: "s" steps
// once, "b <addr>" sets breakpoint slot 0, "c" continues until stopped or
// paused, "q" quits. Unrecognised input is echoed back as an error rather
// than silently ignored, so a typo is visible immediately.
func runSession(core *sh2.State, in *bufio.Reader, out io.Writer) {
	fmt.Fprintln(out, "saturnindbg ready. commands: s(tep) b(reak) <addr> c(ontinue) q(uit)")

	for {
		fmt.Fprintf(out, "%#08x> ", core.GetRegister(sh2.PC))

		line, err := in.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "s", "step":
			stepOnce(core, out)
		case "b", "break":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: b <addr>")
				continue
			}
			addr, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 32)
			if err != nil {
				fmt.Fprintln(out, "bad address:", err)
				continue
			}
			core.Breakpoint(0, uint32(addr), true)
			fmt.Fprintf(out, "breakpoint 0 set at %#08x\n", addr)
		case "c", "continue":
			for {
				stepOnce(core, out)
				if stopped, _ := core.Stopped(); stopped || core.Paused() {
					break
				}
			}
		case "q", "quit":
			return
		default:
			fmt.Fprintln(out, "unrecognised command:", fields[0])
		}
	}
}

// stepOnce steps the core once and reports the instruction it just
// executed along with whether it halted the core.
func stepOnce(core *sh2.State, out io.Writer) {
	pc := core.GetRegister(sh2.PC)
	disasm := core.Disassemble(pc)
	cycles := core.Step()
	fmt.Fprintf(out, "%#08x  %-24s  %d cycles\n", pc, disasm, cycles)

	if stopped, reason := core.Stopped(); stopped {
		fmt.Fprintln(out, "core stopped:", reason)
	}
}
