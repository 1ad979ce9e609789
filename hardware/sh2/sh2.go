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

package sh2

import (
	"github.com/rtoumazet/saturnin-sub002/hardware/memory/bus"
	"github.com/rtoumazet/saturnin-sub002/hardware/sh2/onchip"
	"github.com/rtoumazet/saturnin-sub002/hardware/sh2/registers"
	"github.com/rtoumazet/saturnin-sub002/logger"
)

// Kind distinguishes the Saturn's two SH-2 cores. Both run the same
// instruction set; only reset vectors and which interrupts a collaborator
// chooses to route to them differ, and that's a host-level concern.
type Kind int

const (
	Master Kind = iota
	Slave
)

func (k Kind) String() string {
	if k == Slave {
		return "slave"
	}
	return "master"
}

// RegisterKind names a register for GetRegister, used by the debugger shim
// for read-only inspection.
type RegisterKind int

const (
	R0 RegisterKind = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	PC
	PR
	GBR
	VBR
	MACH
	MACL
	SR
)

// CallstackEntry records one subroutine call for the debugger shim.
type CallstackEntry struct {
	CallAddr   uint32
	ReturnAddr uint32
}

// maxBreakpoints bounds the PC match list the debugger shim supports.
const maxBreakpoints = 5

// State is the complete architectural and emulation-scratch state of one
// SH-2 core. Every instruction's execute function takes *State and mutates
// it directly; there is no module-level mutable state anywhere in this
// package.
type State struct {
	kind Kind
	bus  bus.Bus
	log  *logger.Logger

	R      [16]uint32
	PC     uint32
	PR     uint32
	GBR    uint32
	VBR    uint32
	MACH   uint32
	MACL   uint32
	SR     registers.Status
	OnChip onchip.Block

	// cyclesElapsed is scratch state every instruction must set before
	// returning; Step() returns its value.
	cyclesElapsed uint8

	// currentOpcode is the opcode most recently fetched by Step(), kept as
	// State so instructions never need a free-standing global.
	currentOpcode uint16

	pendingInterrupts  []bus.Interrupt
	isLevelInterrupted [17]bool
	isInterrupted      bool
	currentInterrupt   bus.Interrupt

	callstack []CallstackEntry

	breakpoints    [maxBreakpoints]uint32
	breakpointSet  [maxBreakpoints]bool
	pausedAtBreak  bool

	// stopped is set by bad-opcode or illegal-delay-slot detection. Once
	// set, the host is expected to stop calling Step() until Reset().
	stopped    bool
	stopReason string

	// suppressNextDelaySlot, when set, makes the next delay-slot fetch a
	// no-op once. Neither Reset nor PowerOnReset sets it; after power-on
	// the fetch is suppressed by delaySlotSentinelAddress instead.
	suppressNextDelaySlot bool
}

// delaySlotSentinelAddress is the address the reset sequence leaves PC+2
// pointing at; a delay-slot fetch here would read uninitialised vector
// table bytes, so delaySlot never fetches from this address.
const delaySlotSentinelAddress = 0x2000_0202

// NewSH2 constructs an SH-2 core of the given kind, attached to bus. The
// core starts in the same powered-off state as a freshly-allocated struct;
// callers almost always follow this with PowerOnReset.
func NewSH2(kind Kind, b bus.Bus) *State {
	return &State{
		kind: kind,
		bus:  b,
		log:  logger.NewLogger(512),
	}
}

// Kind returns which of the two cores this is.
func (s *State) Kind() Kind { return s.kind }

// Plumb attaches a new bus, used when the host rebuilds its memory map.
func (s *State) Plumb(b bus.Bus) { s.bus = b }

// Stopped reports whether bad-opcode or illegal-slot detection has halted
// this core. The only way to clear it is Reset/PowerOnReset.
func (s *State) Stopped() (bool, string) { return s.stopped, s.stopReason }

// Paused reports whether the last Step() landed on an armed breakpoint.
func (s *State) Paused() bool { return s.pausedAtBreak }

// GetRegister is a read-only accessor for the debugger shim.
func (s *State) GetRegister(k RegisterKind) uint32 {
	switch {
	case k >= R0 && k <= R15:
		return s.R[int(k-R0)]
	case k == PC:
		return s.PC
	case k == PR:
		return s.PR
	case k == GBR:
		return s.GBR
	case k == VBR:
		return s.VBR
	case k == MACH:
		return s.MACH
	case k == MACL:
		return s.MACL
	case k == SR:
		return s.SR.Value
	}
	return 0
}

// Breakpoint arms slot (0..4) to match addr. A slot may be disarmed by
// passing ok=false.
func (s *State) Breakpoint(slot int, addr uint32, ok bool) {
	if slot < 0 || slot >= maxBreakpoints {
		return
	}
	s.breakpoints[slot] = addr
	s.breakpointSet[slot] = ok
}

// AddToCallstack pushes a call/return address pair, used by BSR, BSRF and
// JSR.
func (s *State) AddToCallstack(callAddr, returnAddr uint32) {
	s.callstack = append(s.callstack, CallstackEntry{CallAddr: callAddr, ReturnAddr: returnAddr})
}

// PopFromCallstack pops the most recent call/return pair, used by RTS. It
// is a no-op (not a panic) if the callstack is already empty: RTS without a
// matching call is a valid, if unusual, program.
func (s *State) PopFromCallstack() (CallstackEntry, bool) {
	if len(s.callstack) == 0 {
		return CallstackEntry{}, false
	}
	e := s.callstack[len(s.callstack)-1]
	s.callstack = s.callstack[:len(s.callstack)-1]
	return e, true
}

// Callstack returns a snapshot copy of the current callstack, safe for a
// concurrent debugger to hold onto.
func (s *State) Callstack() []CallstackEntry {
	out := make([]CallstackEntry, len(s.callstack))
	copy(out, s.callstack)
	return out
}

// Reset performs a non-power-on reset: architectural registers are left
// alone except PC/SP, which are reloaded from the reset vectors, and SR.I,
// which is set to 0xF; pending interrupt/debug state is cleared.
func (s *State) Reset() {
	s.PC = s.bus.Read32(0x00000008)
	s.R[15] = s.bus.Read32(0x0000000C)
	s.SR.SetI(0xF)
	s.pendingInterrupts = nil
	for i := range s.isLevelInterrupted {
		s.isLevelInterrupted[i] = false
	}
	s.isInterrupted = false
	s.callstack = nil
	s.stopped = false
	s.stopReason = ""
	s.pausedAtBreak = false
}

// PowerOnReset performs the architectural power-on reset: every general
// register is zeroed, PC and R15 are loaded from the reset vector table at
// 0x00000008/0x0000000C, SR.I is set to 0xF (all interrupts masked), and
// every piece of debug/interrupt scratch state starts empty.
func (s *State) PowerOnReset() {
	for i := range s.R {
		s.R[i] = 0
	}
	s.PR = 0
	s.GBR = 0
	s.VBR = 0
	s.MACH = 0
	s.MACL = 0
	s.SR = registers.Status{}
	s.OnChip = onchip.Block{}
	s.Reset()
}
