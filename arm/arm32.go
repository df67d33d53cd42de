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

// decodeARM32 attempts to decode a single fixed-width 4-byte ARM
// instruction at data[offset:]. Like decodeThumb16/decodeThumb32, this is a
// pragmatic subset, not a complete ARM instruction set: the catalog and
// analyzer deal almost entirely in Thumb-2, and this mode exists so that
// the rare all-ARM first-stage preloader stub can still be searched and
// patched.
func decodeARM32(data []byte, offset int) (Instruction, bool) {
	if offset+4 > len(data) {
		return Instruction{}, false
	}
	opcode := binary.LittleEndian.Uint32(data[offset:])
	cond := condName(uint8(opcode >> 28))

	switch {
	case opcode&0x0ffffff0 == 0x012fff10:
		// BX Rm
		rm := opcode & 0x0f
		return mkARM(offset, fmt.Sprintf("BX%s", cond), registerName(uint16(rm))), true

	case opcode&0x0f000000 == 0x0a000000:
		// B #imm24
		imm := signExtend((opcode&0x00ffffff)<<2, 26)
		return mkARM(offset, fmt.Sprintf("B%s", cond), fmt.Sprintf("#%d", imm)), true

	case opcode&0x0f000000 == 0x0b000000:
		// BL #imm24
		imm := signExtend((opcode&0x00ffffff)<<2, 26)
		return mkARM(offset, fmt.Sprintf("BL%s", cond), fmt.Sprintf("#%d", imm)), true

	case opcode&0x0fef0000 == 0x03a00000:
		// MOV Rd, #imm (immediate, no rotate - the common case this
		// toolkit's patches actually emit)
		rd := (opcode >> 12) & 0x0f
		imm := opcode & 0xfff
		return mkARM(offset, fmt.Sprintf("MOV%s", cond), fmt.Sprintf("%s, #%d", registerName(uint16(rd)), imm)), true

	case opcode == 0xe1a00000:
		// MOV r0, r0 - canonical ARM NOP idiom
		return mkARM(offset, "NOP", ""), true

	case opcode&0x0fef0000 == 0x01a00000:
		// MOV Rd, Rm (register)
		rd := (opcode >> 12) & 0x0f
		rm := opcode & 0x0f
		return mkARM(offset, fmt.Sprintf("MOV%s", cond), fmt.Sprintf("%s, %s", registerName(uint16(rd)), registerName(uint16(rm)))), true

	case opcode&0x0ff0f000 == 0x03500000:
		// CMP Rn, #imm
		rn := (opcode >> 16) & 0x0f
		imm := opcode & 0xfff
		return mkARM(offset, fmt.Sprintf("CMP%s", cond), fmt.Sprintf("%s, #%d", registerName(uint16(rn)), imm)), true

	case opcode&0x0ff0f000 == 0x01500000:
		// CMP Rn, Rm
		rn := (opcode >> 16) & 0x0f
		rm := opcode & 0x0f
		return mkARM(offset, fmt.Sprintf("CMP%s", cond), fmt.Sprintf("%s, %s", registerName(uint16(rn)), registerName(uint16(rm)))), true

	case opcode&0x0e100000 == 0x04100000:
		// LDR Rd, [Rn, #imm] (immediate offset, pre-indexed or not)
		rd := (opcode >> 12) & 0x0f
		rn := (opcode >> 16) & 0x0f
		imm := opcode & 0xfff
		return mkARM(offset, fmt.Sprintf("LDR%s", cond), fmt.Sprintf("%s, [%s, #%d]", registerName(uint16(rd)), registerName(uint16(rn)), imm)), true

	case opcode&0x0e100000 == 0x04000000:
		// STR Rd, [Rn, #imm]
		rd := (opcode >> 12) & 0x0f
		rn := (opcode >> 16) & 0x0f
		imm := opcode & 0xfff
		return mkARM(offset, fmt.Sprintf("STR%s", cond), fmt.Sprintf("%s, [%s, #%d]", registerName(uint16(rd)), registerName(uint16(rn)), imm)), true

	case opcode&0x0fff0000 == 0x092d0000:
		// PUSH {registers} (STMDB sp!, {..})
		return mkARM(offset, fmt.Sprintf("PUSH%s", cond), registerListARM(uint16(opcode&0xffff))), true

	case opcode&0x0fff0000 == 0x08bd0000:
		// POP {registers} (LDMIA sp!, {..})
		return mkARM(offset, fmt.Sprintf("POP%s", cond), registerListARM(uint16(opcode&0xffff))), true

	default:
		return Instruction{}, false
	}
}

// registerListARM renders a 16-bit register bitfield (r0-r15) as used by
// ARM-mode LDM/STM.
func registerListARM(bits uint16) string {
	s := "{"
	first := true
	for i := 0; i < 16; i++ {
		if bits&(1<<uint(i)) == 0 {
			continue
		}
		if !first {
			s += ", "
		}
		s += registerName(uint16(i))
		first = false
	}
	return s + "}"
}

func mkARM(offset int, mnemonic, operands string) Instruction {
	return Instruction{
		Mnemonic: mnemonic,
		Operands: operands,
		Offset:   uint32(offset),
		Length:   4,
		Mode:     ARM,
	}
}
