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

import "math"

// DVCR bit positions.
const (
	DVCROVF   = 1 << 0
	DVCROVFIE = 1 << 1
)

// DIVU is the on-chip 32/32 and 64/32 signed divider.
type DIVU struct {
	DVSR  uint32 // divisor
	DVDNT uint32 // dividend / quotient result (32/32 path)
	DVCR  uint32

	DVDNTH uint32
	DVDNTL uint32

	// shadow copies mirrored on every divide, as the real chip does.
	DVDNTUH uint32
	DVDNTUL uint32
}

// Divide32 performs the 32/32 signed division triggered by a write to
// DVDNT. The quotient is written to DVDNTL, the sign-extended dividend-as-
// remainder bookkeeping to DVDNTH, matching the layout a 64/32 divide would
// have left behind. Returns true if the division overflowed.
func (d *DIVU) Divide32(dividend int32, divisor int32) (overflow bool) {
	if divisor == 0 {
		d.DVCR |= DVCROVF
		d.DVDNTL = uint32(dividend)
		if dividend < 0 {
			d.DVDNTH = 0xFFFFFFFF
		} else {
			d.DVDNTH = 0
		}
		d.mirror()
		return true
	}

	if dividend == math.MinInt32 && divisor == -1 {
		d.DVCR |= DVCROVF
		d.DVDNTL = uint32(dividend)
		d.DVDNTH = 0xFFFFFFFF
		d.mirror()
		return true
	}

	quotient := dividend / divisor
	remainder := dividend % divisor

	d.DVDNTL = uint32(quotient)
	d.DVDNTH = uint32(remainder)
	d.mirror()
	return false
}

// Divide64 performs the 64/32 signed division triggered by a write to
// DVDNTL, using the current DVDNTH:DVDNTL pair as the 64-bit dividend.
func (d *DIVU) Divide64(dividend int64, divisor int32) (overflow bool) {
	if divisor == 0 {
		d.DVCR |= DVCROVF
		d.mirror()
		return true
	}

	q := dividend / int64(divisor)
	r := dividend % int64(divisor)

	if q > math.MaxInt32 || q < math.MinInt32 {
		d.DVCR |= DVCROVF
		// clamp quotient into DVDNTL on overflow, matching the 32/32 path
		if q > 0 {
			d.DVDNTL = uint32(math.MaxInt32)
		} else {
			d.DVDNTL = 0x80000000 // math.MinInt32 as a 32-bit pattern
		}
		d.DVDNTH = uint32(int32(r))
		d.mirror()
		return true
	}

	d.DVDNTL = uint32(int32(q))
	d.DVDNTH = uint32(int32(r))
	d.mirror()
	return false
}

func (d *DIVU) mirror() {
	d.DVDNTUH = d.DVDNTH
	d.DVDNTUL = d.DVDNTL
	d.DVDNT = d.DVDNTL
}

// OverflowEnabled reports whether DVCR.OVFIE permits the division-overflow
// interrupt to be queued.
func (d DIVU) OverflowEnabled() bool {
	return d.DVCR&DVCROVFIE != 0
}

// Overflowed reports whether DVCR.OVF is currently set.
func (d DIVU) Overflowed() bool {
	return d.DVCR&DVCROVF != 0
}
