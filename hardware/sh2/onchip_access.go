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
	"github.com/rtoumazet/saturnin-sub002/errors"
	"github.com/rtoumazet/saturnin-sub002/hardware/sh2/onchip"
	"github.com/rtoumazet/saturnin-sub002/logger"
)

// On-chip register offsets within the 9-bit-masked window. The real
// Hitachi SH7095 places these at fixed byte offsets from 0xFFFFFE00; only
// the relative layout matters to this emulation since the host's memory
// map is responsible for translating a 32-bit CPU address into this
// window.
const (
	offSMR0  = 0x000
	offBRR0  = 0x001
	offSCR0  = 0x002
	offTDR0  = 0x003
	offSSR0  = 0x004
	offRDR0  = 0x005
	offTIER  = 0x010
	offFTCSR = 0x011
	offFRCH  = 0x012
	offFRCL  = 0x013
	offOCRAH = 0x014 // OCRA/OCRB share this pair of addresses, selected by TOCR.OCRS
	offOCRAL = 0x015
	offTCR   = 0x016
	offTOCR  = 0x017
	offICRH  = 0x018
	offICRL  = 0x019
	offIPRB  = 0x060
	offVCRA  = 0x062
	offVCRB  = 0x064
	offVCRC  = 0x066
	offVCRD  = 0x068
	offDVSR   = 0x100
	offDVDNT  = 0x104
	offDVCR   = 0x108
	offVCRDIV = 0x10C
	offDVDNTH = 0x110
	offDVDNTL = 0x114
	offVCRWDT = 0x118
	offBCR1   = 0x11C
	offBCR2   = 0x11E
	offWCR    = 0x120
	offMCR    = 0x122
	offCCR    = 0x130
	offICR    = 0x132
	offIPRA   = 0x134
	offVCRWDT2 = 0x136
	offSAR0  = 0x140
	offDAR0  = 0x144
	offTCR0  = 0x148
	offCHCR0 = 0x14C
	offSAR1  = 0x150
	offDAR1  = 0x154
	offTCR1  = 0x158
	offCHCR1 = 0x15C
	offVCRDMA0 = 0x160
	offVCRDMA1 = 0x164
	offDMAOR   = 0x168
	offWTCSR  = 0x180
	offWTCNT  = 0x181
	offRSTCSR = 0x182
	offSBYCR  = 0x190
)

// OnChipRead32 services a 32-bit read that the host's memory map has
// already determined falls within this SH-2's on-chip register window
// (addr is masked to 9 bits here). Unknown offsets log and return 0.
func (s *State) OnChipRead32(addr uint32) uint32 {
	addr &= onchip.AddressMask
	switch addr {
	case offDVSR:
		return s.OnChip.DIVU.DVSR
	case offDVDNT:
		return s.OnChip.DIVU.DVDNT
	case offDVCR:
		return s.OnChip.DIVU.DVCR
	case offDVDNTH:
		return s.OnChip.DIVU.DVDNTH
	case offDVDNTL:
		return s.OnChip.DIVU.DVDNTL
	case offSAR0:
		return s.OnChip.DMAC.Channels[0].SAR
	case offDAR0:
		return s.OnChip.DMAC.Channels[0].DAR
	case offTCR0:
		return s.OnChip.DMAC.Channels[0].TCR
	case offCHCR0:
		return s.OnChip.DMAC.Channels[0].CHCR.Raw()
	case offSAR1:
		return s.OnChip.DMAC.Channels[1].SAR
	case offDAR1:
		return s.OnChip.DMAC.Channels[1].DAR
	case offTCR1:
		return s.OnChip.DMAC.Channels[1].TCR
	case offCHCR1:
		return s.OnChip.DMAC.Channels[1].CHCR.Raw()
	default:
		s.log.Logf(logger.Allow, "sh2", errors.UnmappedRead, 32, addr)
		return 0
	}
}

// OnChipWrite32 drives write-triggered peripherals: writing DVDNT triggers
// a 32/32 divide, DVDNTL a 64/32 divide.
func (s *State) OnChipWrite32(addr uint32, v uint32) {
	addr &= onchip.AddressMask
	switch addr {
	case offDVSR:
		s.OnChip.DIVU.DVSR = v
	case offDVDNT:
		s.OnChip.DIVU.DVDNT = v
		s.divide32Triggered(v)
	case offDVCR:
		s.OnChip.DIVU.DVCR = v
	case offDVDNTH:
		s.OnChip.DIVU.DVDNTH = v
	case offDVDNTL:
		s.OnChip.DIVU.DVDNTL = v
		s.divide64Triggered()
	case offSAR0:
		s.OnChip.DMAC.Channels[0].SAR = v
	case offDAR0:
		s.OnChip.DMAC.Channels[0].DAR = v
	case offTCR0:
		s.OnChip.DMAC.Channels[0].TCR = v
	case offCHCR0:
		s.OnChip.DMAC.Channels[0].CHCR.SetRaw(v)
	case offSAR1:
		s.OnChip.DMAC.Channels[1].SAR = v
	case offDAR1:
		s.OnChip.DMAC.Channels[1].DAR = v
	case offTCR1:
		s.OnChip.DMAC.Channels[1].TCR = v
	case offCHCR1:
		s.OnChip.DMAC.Channels[1].CHCR.SetRaw(v)
	case offBCR1:
		onchip.ProtectedWrite(&s.OnChip.BSC.BCR1, v)
	case offBCR2:
		onchip.ProtectedWrite(&s.OnChip.BSC.BCR2, v)
	case offWCR:
		onchip.ProtectedWrite(&s.OnChip.BSC.WCR, v)
	case offMCR:
		onchip.ProtectedWrite(&s.OnChip.BSC.MCR, v)
	default:
		s.log.Logf(logger.Allow, "sh2", errors.UnmappedWrite, 32, addr)
	}
}

func (s *State) divide32Triggered(v uint32) {
	overflow := s.OnChip.DIVU.Divide32(int32(v), int32(s.OnChip.DIVU.DVSR))
	if overflow && s.OnChip.DIVU.OverflowEnabled() {
		level := s.OnChip.INTC.DIVUPriority()
		if level > 0 {
			s.SendInterrupt(interruptFromVCR(s.OnChip.INTC.VCRDIV, level, "DIVU"))
		}
	}
}

func (s *State) divide64Triggered() {
	dividend := int64(int32(s.OnChip.DIVU.DVDNTH))<<32 | int64(s.OnChip.DIVU.DVDNTL)
	overflow := s.OnChip.DIVU.Divide64(dividend, int32(s.OnChip.DIVU.DVSR))
	if overflow && s.OnChip.DIVU.OverflowEnabled() {
		level := s.OnChip.INTC.DIVUPriority()
		if level > 0 {
			s.SendInterrupt(interruptFromVCR(s.OnChip.INTC.VCRDIV, level, "DIVU"))
		}
	}
}

// RunDMAC attempts to run both DMAC channels, in the order the round-robin
// (or fixed-priority) latch selects. Each runnable channel transfers its
// entire remaining count in one call -- the specification does not require
// interleaving DMAC transfers with CPU execution at sub-transfer
// granularity, only that the channel selection order and completion/
// interrupt behaviour are correct.
func (s *State) RunDMAC() {
	order := [2]int{0, 1}
	if first := s.OnChip.DMAC.NextChannel(); first == 1 {
		order = [2]int{1, 0}
	}

	ran := false
	for _, idx := range order {
		ch := &s.OnChip.DMAC.Channels[idx]
		if !ch.Runnable(s.OnChip.DMAC.DMAOR.NMIF, s.OnChip.DMAC.DMAOR.AE) {
			continue
		}
		s.runChannel(idx, ch)
		ran = true
	}
	if ran {
		s.OnChip.DMAC.AdvanceRoundRobin()
	}
}

func (s *State) runChannel(idx int, ch *onchip.Channel) {
	unit := uint32(ch.CHCR.TS)
	if unit == 0 {
		unit = 1
	}

	for ch.TCR > 0 {
		switch unit {
		case 1:
			s.bus.Write8(ch.DAR, s.bus.Read8(ch.SAR))
		case 2:
			s.bus.Write16(ch.DAR, s.bus.Read16(ch.SAR))
		case 16:
			// 16-byte transfers move four consecutive longwords per beat;
			// SAR/DAR only advance by the full 16 bytes once the whole
			// block has moved.
			for i := uint32(0); i < 16; i += 4 {
				s.bus.Write32(ch.DAR+i, s.bus.Read32(ch.SAR+i))
			}
		default:
			s.bus.Write32(ch.DAR, s.bus.Read32(ch.SAR))
		}

		ch.SAR = advanceAddress(ch.SAR, ch.CHCR.SM, unit)
		ch.DAR = advanceAddress(ch.DAR, ch.CHCR.DM, unit)
		ch.TCR--
	}

	ch.CHCR.TE = true

	if ch.CHCR.IE {
		level := s.OnChip.INTC.DMACPriority()
		if level > 0 {
			vcr := s.OnChip.INTC.VCRDMA0
			if idx == 1 {
				vcr = s.OnChip.INTC.VCRDMA1
			}
			s.SendInterrupt(interruptFromVCR(vcr, level, "DMAC"))
		}
	}
}

func advanceAddress(addr uint32, mode onchip.AddressMode, unit uint32) uint32 {
	switch mode {
	case onchip.AddressIncrement:
		return addr + unit
	case onchip.AddressDecrement:
		return addr - unit
	default:
		return addr
	}
}
