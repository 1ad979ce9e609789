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

// Package sh2 implements a cycle-stepped decoder/executor for the Hitachi
// SH-2, the 32-bit RISC core used as both the Saturn's master and slave
// CPU. It covers fetch/decode/execute, delay-slot discipline, the pending
// interrupt queue (INTC), and the on-chip DMAC/DIVU/FRT peripherals.
//
// Every opcode is dispatched through a 65,536-entry table built once at
// package initialisation from a small static instruction list -- the same
// list that also marks which opcodes are illegal inside a delay slot and
// which ones push a return address onto the callstack. State is entirely
// contained in the State type; there is no package-level mutable state, so
// multiple SH-2 cores (master and slave) can run side by side.
package sh2
