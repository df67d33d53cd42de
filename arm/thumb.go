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

// registerName renders a 4-bit register field using the conventional ARM
// mnemonic register names for the special-purpose high registers.
func registerName(r uint16) string {
	switch r {
	case 13:
		return "sp"
	case 14:
		return "lr"
	case 15:
		return "pc"
	default:
		return fmt.Sprintf("r%d", r)
	}
}

// registerList renders an 8-bit register bitfield (bits 0-7, r0-r7) plus an
// optional extra register (LR for PUSH, PC for POP) as a "{r0, r1, lr}"
// style operand.
func registerList(bits uint16, extra string) string {
	s := "{"
	first := true
	for i := 0; i < 8; i++ {
		if bits&(1<<uint(i)) == 0 {
			continue
		}
		if !first {
			s += ", "
		}
		s += fmt.Sprintf("r%d", i)
		first = false
	}
	if extra != "" {
		if !first {
			s += ", "
		}
		s += extra
	}
	return s + "}"
}

// decodeThumb16 attempts to decode a single 16-bit Thumb instruction at
// data[offset:]. It reports ok=false for any encoding this package doesn't
// recognise (including the 32-bit Thumb-2 prefixes, which decodeThumb32
// handles instead) or for the handful of 16-bit formats this toolkit has no
// use for, so that the caller's greedy decoder can skip ahead a byte and
// keep looking for recognisable code in a buffer that mixes code and data.
func decodeThumb16(data []byte, offset int) (Instruction, bool) {
	if offset+2 > len(data) {
		return Instruction{}, false
	}
	opcode := binary.LittleEndian.Uint16(data[offset:])

	// the 32-bit Thumb-2 prefixes are format 11101/11110/11111 in the top
	// five bits; decodeThumb32 owns those.
	switch opcode >> 11 {
	case 0x1d, 0x1e, 0x1f:
		return Instruction{}, false
	}

	switch {
	case opcode == 0xbf00:
		// NOP (hint form)
		return mk(offset, 2, "NOP", ""), true

	case opcode == 0x46c0:
		// MOV r8, r8 - the classic Thumb-1 nop idiom
		return mk(offset, 2, "NOP", ""), true

	case opcode&0xfe00 == 0xb400:
		// PUSH {registers[, LR]}
		extra := ""
		if opcode&0x0100 != 0 {
			extra = "lr"
		}
		return mk(offset, 2, "PUSH", registerList(opcode&0xff, extra)), true

	case opcode&0xfe00 == 0xbc00:
		// POP {registers[, PC]}
		extra := ""
		if opcode&0x0100 != 0 {
			extra = "pc"
		}
		return mk(offset, 2, "POP", registerList(opcode&0xff, extra)), true

	case opcode&0xf800 == 0x2000:
		// MOVS Rd, #imm8
		rd := (opcode >> 8) & 0x07
		imm := opcode & 0xff
		return mk(offset, 2, "MOVS", fmt.Sprintf("%s, #%d", registerName(rd), imm)), true

	case opcode&0xf800 == 0x2800:
		// CMP Rd, #imm8
		rd := (opcode >> 8) & 0x07
		imm := opcode & 0xff
		return mk(offset, 2, "CMP", fmt.Sprintf("%s, #%d", registerName(rd), imm)), true

	case opcode&0xff00 == 0x4500:
		// CMP Rn, Rm (high-register form)
		rm := (opcode >> 3) & 0x0f
		rn := (opcode & 0x07) | ((opcode >> 4) & 0x08)
		return mk(offset, 2, "CMP", fmt.Sprintf("%s, %s", registerName(rn), registerName(rm))), true

	case opcode&0xffc0 == 0x4280:
		// CMP Rn, Rm (low-register form)
		rm := (opcode >> 3) & 0x07
		rn := opcode & 0x07
		return mk(offset, 2, "CMP", fmt.Sprintf("%s, %s", registerName(rn), registerName(rm))), true

	case opcode&0xff87 == 0x4700:
		// BX Rm
		rm := (opcode >> 3) & 0x0f
		return mk(offset, 2, "BX", registerName(rm)), true

	case opcode&0xff87 == 0x4780:
		// BLX Rm
		rm := (opcode >> 3) & 0x0f
		return mk(offset, 2, "BLX", registerName(rm)), true

	case opcode&0xfc00 == 0x4400:
		// MOV Rd, Rm (high-register move encoding; also commonly used for
		// low-to-low moves since Thumb-1 has no dedicated low-register
		// MOV Rd, Rm instruction)
		rm := (opcode >> 3) & 0x0f
		rd := (opcode & 0x07) | ((opcode >> 4) & 0x08)
		return mk(offset, 2, "MOV", fmt.Sprintf("%s, %s", registerName(rd), registerName(rm))), true

	case opcode&0xf800 == 0x4800:
		// LDR Rd, [PC, #imm] - literal pool load
		rd := (opcode >> 8) & 0x07
		imm := (opcode & 0xff) << 2
		return mk(offset, 2, "LDR", fmt.Sprintf("%s, [pc, #%d]", registerName(rd), imm)), true

	case opcode&0xf800 == 0xa000:
		// ADR Rd, #imm - PC-relative address load
		rd := (opcode >> 8) & 0x07
		imm := (opcode & 0xff) << 2
		return mk(offset, 2, "ADR", fmt.Sprintf("%s, #%d", registerName(rd), imm)), true

	case opcode&0xe000 == 0x6000:
		// LDR/STR{,B} Rd, [Rn, #imm] - immediate offset load/store
		sub := (opcode >> 11) & 0x03
		rn := (opcode >> 3) & 0x07
		rd := opcode & 0x07
		imm5 := (opcode >> 6) & 0x1f
		switch sub {
		case 0b00:
			return mk(offset, 2, "STR", fmt.Sprintf("%s, [%s, #%d]", registerName(rd), registerName(rn), imm5*4)), true
		case 0b01:
			return mk(offset, 2, "LDR", fmt.Sprintf("%s, [%s, #%d]", registerName(rd), registerName(rn), imm5*4)), true
		case 0b10:
			return mk(offset, 2, "STRB", fmt.Sprintf("%s, [%s, #%d]", registerName(rd), registerName(rn), imm5)), true
		default:
			return mk(offset, 2, "LDRB", fmt.Sprintf("%s, [%s, #%d]", registerName(rd), registerName(rn), imm5)), true
		}

	case opcode&0xfd00 == 0xb100:
		// CBZ Rn, #imm
		rn := opcode & 0x07
		imm := ((opcode>>3)&0x1f)<<1 | ((opcode >> 9) & 0x01 << 6)
		return mk(offset, 2, "CBZ", fmt.Sprintf("%s, #%d", registerName(rn), imm)), true

	case opcode&0xfd00 == 0xb900:
		// CBNZ Rn, #imm
		rn := opcode & 0x07
		imm := ((opcode>>3)&0x1f)<<1 | ((opcode >> 9) & 0x01 << 6)
		return mk(offset, 2, "CBNZ", fmt.Sprintf("%s, #%d", registerName(rn), imm)), true

	case opcode&0xf000 == 0xd000 && (opcode&0x0f00) != 0x0e00 && (opcode&0x0f00) != 0x0f00:
		// Bcond #imm8 - conditional branch (0xDE/0xDF are UND/SWI, excluded)
		cond := (opcode >> 8) & 0x0f
		imm := signExtend(uint32(opcode&0xff)<<1, 9)
		return mk(offset, 2, fmt.Sprintf("B%s", condName(uint8(cond))), fmt.Sprintf("#%d", imm)), true

	case opcode&0xf800 == 0xe000:
		// B #imm11 - unconditional branch
		imm := signExtend(uint32(opcode&0x7ff)<<1, 12)
		return mk(offset, 2, "B", fmt.Sprintf("#%d", imm)), true

	default:
		return Instruction{}, false
	}
}

func mk(offset int, length uint8, mnemonic, operands string) Instruction {
	return Instruction{
		Mnemonic: mnemonic,
		Operands: operands,
		Offset:   uint32(offset),
		Length:   length,
		Mode:     Thumb2,
	}
}

// signExtend sign-extends the low bits-wide field in v.
func signExtend(v uint32, bits uint) int {
	shift := 32 - bits
	return int(int32(v<<shift) >> shift)
}

// condName maps a 4-bit ARM condition code to its mnemonic suffix.
func condName(cond uint8) string {
	names := [...]string{"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC", "HI", "LS", "GE", "LT", "GT", "LE", "", ""}
	if int(cond) < len(names) {
		return names[cond]
	}
	return ""
}
