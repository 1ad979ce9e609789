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
	"fmt"
	"os"
	"sync"
	"syscall"

	"github.com/pkg/term/termios"
)

// rawTerminal puts stdin into cbreak mode for the duration of a debug
// session, so input reaches the process without terminal line editing.
// runSession still reads one newline-terminated command at a time.
type rawTerminal struct {
	input *os.File

	canAttr    syscall.Termios
	cbreakAttr syscall.Termios

	mu sync.Mutex
}

// newRawTerminal captures stdin's current mode and prepares a cbreak mode
// to switch into, without yet changing anything.
func newRawTerminal(input *os.File) (*rawTerminal, error) {
	if input == nil {
		return nil, fmt.Errorf("saturnindbg: terminal requires an input file")
	}

	t := &rawTerminal{input: input}
	if err := termios.Tcgetattr(t.input.Fd(), &t.canAttr); err != nil {
		return nil, fmt.Errorf("saturnindbg: reading terminal attributes: %w", err)
	}
	t.cbreakAttr = t.canAttr
	termios.Cfmakecbreak(&t.cbreakAttr)

	return t, nil
}

// CBreak switches stdin into cbreak mode.
func (t *rawTerminal) CBreak() {
	t.mu.Lock()
	defer t.mu.Unlock()
	termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.cbreakAttr)
}

// Restore returns stdin to the mode it was in before CBreak.
func (t *rawTerminal) Restore() {
	t.mu.Lock()
	defer t.mu.Unlock()
	termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
}
