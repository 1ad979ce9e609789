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

package vdp2

// requiredPatternNameReads is indexed by [reduction][colorCount] and gives
// the number of VRAM reads a cell-format scroll screen needs per character
// pattern to fetch its pattern name data. Bitmap-format screens don't
// consult this table; see requiredCharacterPatternReads for the character
// (or bitmap) data fetch cost.
var requiredPatternNameReads = [3][5]int{
	ReductionNone:    {1, 1, 1, 1, 1},
	ReductionHalf:    {2, 2, 2, 2, 2},
	ReductionQuarter: {4, 4, 4, 4, 4},
}

// requiredCharacterPatternReads is indexed by [reduction][colorCount] and
// gives the number of VRAM reads needed to fetch one character pattern's
// (or, for bitmap screens, one screen's worth of) pixel data, which grows
// with colour depth because higher depths pack fewer pixels per word.
var requiredCharacterPatternReads = [3][5]int{
	ReductionNone:    {1, 1, 2, 2, 4},
	ReductionHalf:    {2, 2, 4, 4, 8},
	ReductionQuarter: {4, 4, 8, 8, 16},
}

// RequiredPatternNameReads reports how many VRAM reads a cell-format
// screen at the given reduction and colour depth needs for pattern names.
func RequiredPatternNameReads(reduction Reduction, colors ColorCount) int {
	return requiredPatternNameReads[reduction][colors]
}

// RequiredCharacterPatternReads reports how many VRAM reads a screen at
// the given reduction and colour depth needs for character (or bitmap)
// pattern data.
func RequiredCharacterPatternReads(reduction Reduction, colors ColorCount) int {
	return requiredCharacterPatternReads[reduction][colors]
}

// cpdTimingSlots is the relaxed baseline CPD (character pattern data)
// timing table: which of a bank's eight T0..T7 slots a screen may use for
// character-pattern reads, keyed by [screenMode]. The strict form, which
// additionally depends on the screen's own reduction and colour depth
// rather than only on the overall screen resolution, is not implemented;
// every screen in normal resolution may use all eight slots, and in
// hi-res/exclusive modes only the first four, matching the table's two
// coarse rows in the console's technical documentation.
var cpdTimingSlots = map[bool][8]bool{
	false: {true, true, true, true, true, true, true, true}, // normal resolution
	true:  {true, true, true, true, false, false, false, false}, // hi-res/exclusive
}

// CPDTimingSlotAvailable reports whether timing slot T[slot] may be used
// for character pattern data fetches at the current screen mode.
func CPDTimingSlotAvailable(hiRes bool, slot int) bool {
	if slot < 0 || slot > 7 {
		return false
	}
	return cpdTimingSlots[hiRes][slot]
}

// reductionLockedOut reports VDP2's cross-screen reduction/colour-depth
// restriction: NBG2 cannot display if NBG0 is using ¼ reduction while NBG2
// is in 16-colour mode, or ½ reduction while NBG2 is in 256-colour mode;
// NBG3 is restricted the same way against NBG1. Screens other than NBG2/
// NBG3 have no such restriction.
func reductionLockedOut(r *Registers, s Screen) bool {
	var partner Screen
	switch s {
	case NBG2:
		partner = NBG0
	case NBG3:
		partner = NBG1
	default:
		return false
	}

	partnerReduction := r.ScreenState(partner).Reduction
	colors := r.ScreenState(s).ColorCount

	switch partnerReduction {
	case ReductionQuarter:
		return colors == Color16
	case ReductionHalf:
		return colors == Color256
	default:
		return false
	}
}

// bankUsage totals the VRAM reads a screen's cycle pattern demands from a
// single bank, used by SelectBanks to decide how banks must be combined.
type bankUsage struct {
	bank  VRAMBank
	reads int
}

// countReads returns how many of a bank's eight timing slots are assigned
// to cmd.
func countReads(r *Registers, bank VRAMBank, cmd VRAMAccessCommand) int {
	n := 0
	for slot := 0; slot < 8; slot++ {
		if r.CyclePatternSlot(bank, slot) == cmd {
			n++
		}
	}
	return n
}

// SelectBanks applies VDP2's bank-selection rule for a screen's required
// read count: when VRSIZE selects the split-bank layout (A0/A1 and B0/B1
// addressable independently), the available bandwidth for a command is
// the larger of what A0+B0 or A1+B1 can together provide; in the unified
// layout it is the straight sum across all four banks. This mirrors the
// real arbitration, where a screen is only displayable if its required
// read count is actually satisfiable by the banks' programmed cycle
// patterns.
func SelectBanks(r *Registers, cmd VRAMAccessCommand, splitBanks bool) int {
	a0 := countReads(r, BankA0, cmd)
	a1 := countReads(r, BankA1, cmd)
	b0 := countReads(r, BankB0, cmd)
	b1 := countReads(r, BankB1, cmd)

	if !splitBanks {
		return a0 + a1 + b0 + b1
	}

	set0 := a0 + b0
	set1 := a1 + b1
	if set0 > set1 {
		return set0
	}
	return set1
}

// IsScreenDisplayed applies the full VRAM cycle-pattern arbitration gate:
// a screen only actually displays when BGON enables it, its reduction is
// one the screen supports, and the banks' programmed cycle patterns
// supply at least as many reads as the screen's format/reduction/colour
// combination requires, for both pattern names (cell format only) and
// character/bitmap data.
func IsScreenDisplayed(r *Registers, s Screen, splitBanks bool) bool {
	if !r.ScreenEnabled(s) {
		return false
	}

	st := r.ScreenState(s)
	if reductionLockedOut(r, s) {
		return false
	}

	patternCmd, charCmd := accessCommandsFor(s)

	charReads := RequiredCharacterPatternReads(st.Reduction, st.ColorCount)
	if SelectBanks(r, charCmd, splitBanks) < charReads {
		return false
	}

	if st.Format == FormatCell {
		nameReads := RequiredPatternNameReads(st.Reduction, st.ColorCount)
		if SelectBanks(r, patternCmd, splitBanks) < nameReads {
			return false
		}
	}

	return true
}

// accessCommandsFor maps a scroll screen to the pair of VRAM access
// commands (pattern name, character pattern) its cycle pattern slots must
// be programmed with. RBG0/RBG1 have no commands of their own in this
// emulation and use NBG0's pair; their rotation-parameter reads are not
// modelled.
func accessCommandsFor(s Screen) (pattern, character VRAMAccessCommand) {
	switch s {
	case NBG0:
		return AccessNBG0PatternName, AccessNBG0CharacterPattern
	case NBG1:
		return AccessNBG1PatternName, AccessNBG1CharacterPattern
	case NBG2:
		return AccessNBG2PatternName, AccessNBG2CharacterPattern
	case NBG3:
		return AccessNBG3PatternName, AccessNBG3CharacterPattern
	default:
		return AccessNBG0PatternName, AccessNBG0CharacterPattern
	}
}
