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

package onchip

// INTC holds the interrupt controller's priority-level and vector-number
// registers. The pending-interrupt queue itself lives on the owning SH-2
// (hardware/sh2.State) since it is architectural CPU state rather than a
// memory-mapped register.
type INTC struct {
	ICR   uint16 // interrupt control register
	IPRA  uint16 // priority level for DIVU, DMAC, WDT
	IPRB  uint16 // priority level for SCI, FRT
	VCRA  uint16
	VCRB  uint16
	VCRC  uint16
	VCRD  uint16
	VCRWDT uint16
	VCRDIV uint16
	VCRDMA0 uint16
	VCRDMA1 uint16
}

// FRTPriority returns the interrupt priority level programmed for the FRT in
// IPRB, bits 8-11.
func (i INTC) FRTPriority() uint8 {
	return uint8((i.IPRB >> 8) & 0xF)
}

// DIVUPriority returns the interrupt priority level programmed for the DIVU
// in IPRA, bits 8-11.
func (i INTC) DIVUPriority() uint8 {
	return uint8((i.IPRA >> 8) & 0xF)
}

// DMACPriority returns the interrupt priority level programmed for the DMAC
// in IPRA, bits 4-7.
func (i INTC) DMACPriority() uint8 {
	return uint8((i.IPRA >> 4) & 0xF)
}

// WDTPriority returns the interrupt priority level programmed for the WDT
// in IPRA, bits 0-3.
func (i INTC) WDTPriority() uint8 {
	return uint8(i.IPRA & 0xF)
}
