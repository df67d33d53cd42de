// This file is part of mtkboot.
//
// mtkboot is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// mtkboot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with mtkboot.  If not, see <https://www.gnu.org/licenses/>.

package arm

import (
	"encoding/binary"
	"fmt"
)

// decodeThumb32 attempts to decode a single 32-bit Thumb-2 instruction at
// data[offset:]. Only the handful of wide encodings this toolkit actually
// needs are recognised - BL, the wide unconditional and conditional
// branches, and MOVW/MOVT - everything else (wide data-processing, VFP,
// coprocessor, wide loads/stores) is left undecoded; the greedy caller will
// skip ahead a byte at a time looking for something recognisable.
func decodeThumb32(data []byte, offset int) (Instruction, bool) {
	if offset+4 > len(data) {
		return Instruction{}, false
	}
	hi := binary.LittleEndian.Uint16(data[offset:])
	lo := binary.LittleEndian.Uint16(data[offset+2:])

	switch hi >> 11 {
	case 0x1d, 0x1e, 0x1f:
		// confirmed 32-bit prefix, fall through to the specific matches below
	default:
		return Instruction{}, false
	}

	switch {
	case hi&0xf800 == 0xf000 && lo&0xd000 == 0xd000:
		// BL #imm - branch with link, T1 encoding
		imm := branchImm25(hi, lo)
		return mk(offset, 4, "BL", fmt.Sprintf("#%d", imm)), true

	case hi&0xf800 == 0xf000 && lo&0xd000 == 0x9000:
		// B.W #imm - unconditional wide branch, T4 encoding
		imm := branchImm25(hi, lo)
		return mk(offset, 4, "B", fmt.Sprintf("#%d", imm)), true

	case hi&0xf800 == 0xf000 && lo&0xd000 == 0x8000 && (hi&0x0380) != 0x0380:
		// Bcond.W #imm - conditional wide branch, T3 encoding
		cond := (hi >> 6) & 0x0f
		imm := branchImmCond21(hi, lo)
		return mk(offset, 4, fmt.Sprintf("B%s", condName(uint8(cond))), fmt.Sprintf("#%d", imm)), true

	case hi&0xfbf0 == 0xf240:
		// MOVW Rd, #imm16
		rd := (lo >> 8) & 0x0f
		imm := movImm16(hi, lo)
		return mk(offset, 4, "MOVW", fmt.Sprintf("%s, #%d", registerName(rd), imm)), true

	case hi&0xfbf0 == 0xf2c0:
		// MOVT Rd, #imm16
		rd := (lo >> 8) & 0x0f
		imm := movImm16(hi, lo)
		return mk(offset, 4, "MOVT", fmt.Sprintf("%s, #%d", registerName(rd), imm)), true

	default:
		return Instruction{}, false
	}
}

// branchImm25 computes the signed byte displacement of a BL/B.W wide
// branch's 25-bit immediate field, per the standard T1/T4 J1/J2 encoding.
func branchImm25(hi, lo uint16) int {
	s := uint32(hi>>10) & 1
	imm10 := uint32(hi) & 0x3ff
	j1 := uint32(lo>>13) & 1
	j2 := uint32(lo>>11) & 1
	imm11 := uint32(lo) & 0x7ff
	i1 := (^(j1 ^ s)) & 1
	i2 := (^(j2 ^ s)) & 1

	v := (s << 24) | (i1 << 23) | (i2 << 22) | (imm10 << 12) | (imm11 << 1)
	return signExtend(v, 25)
}

// branchImmCond21 computes the signed byte displacement of a Bcond.W
// conditional wide branch's 21-bit immediate field, per the T3 encoding.
func branchImmCond21(hi, lo uint16) int {
	s := uint32(hi>>10) & 1
	imm6 := uint32(hi) & 0x3f
	j1 := uint32(lo>>13) & 1
	j2 := uint32(lo>>11) & 1
	imm11 := uint32(lo) & 0x7ff

	v := (s << 20) | (j2 << 19) | (j1 << 18) | (imm6 << 12) | (imm11 << 1)
	return signExtend(v, 21)
}

// movImm16 reassembles the scattered 16-bit immediate field of a MOVW/MOVT
// encoding.
func movImm16(hi, lo uint16) uint32 {
	i := uint32(hi>>10) & 1
	imm4 := uint32(hi) & 0x0f
	imm3 := uint32(lo>>12) & 0x07
	imm8 := uint32(lo) & 0xff
	return (imm4 << 12) | (i << 11) | (imm3 << 8) | imm8
}
