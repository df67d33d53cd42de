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
	"regexp"
	"strconv"
	"strings"

	"github.com/mtkboot/core/curated"
)

// ErrAssemblyFailed is the sentinel reported - via curated.Is - when
// Assemble is given text it cannot encode in the requested mode.
const ErrAssemblyFailed = "arm: cannot assemble %q in %s mode"

var registerNumbers = map[string]uint16{
	"r0": 0, "r1": 1, "r2": 2, "r3": 3, "r4": 4, "r5": 5, "r6": 6, "r7": 7,
	"r8": 8, "r9": 9, "r10": 10, "r11": 11, "r12": 12,
	"sp": 13, "r13": 13, "lr": 14, "r14": 14, "pc": 15, "r15": 15,
}

var (
	reMovImm = regexp.MustCompile(`(?i)^movs?\s+(\w+)\s*,\s*#(-?\d+|0x[0-9a-f]+)$`)
	reMovReg = regexp.MustCompile(`(?i)^movs?\s+(\w+)\s*,\s*(\w+)$`)
	reCmpImm = regexp.MustCompile(`(?i)^cmp\s+(\w+)\s*,\s*#(-?\d+|0x[0-9a-f]+)$`)
	reCmpReg = regexp.MustCompile(`(?i)^cmp\s+(\w+)\s*,\s*(\w+)$`)
	reBx     = regexp.MustCompile(`(?i)^bx\s+(\w+)$`)
	reNop    = regexp.MustCompile(`(?i)^nop$`)
	reLdrImm = regexp.MustCompile(`(?i)^ldr\s+(\w+)\s*,\s*\[\s*(\w+)\s*,\s*#(-?\d+|0x[0-9a-f]+)\s*\]$`)
	reStrImm = regexp.MustCompile(`(?i)^str\s+(\w+)\s*,\s*\[\s*(\w+)\s*,\s*#(-?\d+|0x[0-9a-f]+)\s*\]$`)
	reLdrPC  = regexp.MustCompile(`(?i)^ldr\s+(\w+)\s*,\s*\[\s*pc\s*,\s*#(-?\d+|0x[0-9a-f]+)\s*\]$`)
	reMovWide = regexp.MustCompile(`(?i)^(movw|movt)\s+(\w+)\s*,\s*#(-?\d+|0x[0-9a-f]+)$`)
	reLdrImmARM = regexp.MustCompile(`(?i)^ldr\s+(\w+)\s*,\s*\[\s*(\w+)\s*(?:,\s*#(-?\d+|0x[0-9a-f]+)\s*)?\]$`)
)

func parseImm(s string) (int64, bool) {
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		return v, err == nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

func parseReg(s string) (uint16, bool) {
	r, ok := registerNumbers[strings.ToLower(s)]
	return r, ok
}

// Assemble encodes a single line of textual assembly - one mnemonic plus
// its operands, no labels, no comments - into machine code for mode. It
// supports the pragmatic subset of mnemonics the patch catalog and
// interceptor actually need to synthesize: MOV(S)/CMP in register and
// immediate form, BX, NOP, and LDR/STR with an immediate offset.
func Assemble(text string, mode Mode) ([]byte, error) {
	text = strings.TrimSpace(text)

	if mode == Thumb2 {
		if b, ok := assembleThumb(text); ok {
			return b, nil
		}
		return nil, curated.Errorf(ErrAssemblyFailed, text, mode)
	}
	if b, ok := assembleARM(text); ok {
		return b, nil
	}
	return nil, curated.Errorf(ErrAssemblyFailed, text, mode)
}

func assembleThumb(text string) ([]byte, bool) {
	var out [2]byte

	switch {
	case reNop.MatchString(text):
		binary.LittleEndian.PutUint16(out[:], 0xbf00)
		return out[:], true

	case reMovWide.MatchString(text):
		m := reMovWide.FindStringSubmatch(text)
		rd, ok := parseReg(m[2])
		imm, iok := parseImm(m[3])
		if !ok || !iok || imm < 0 || imm > 0xffff {
			return nil, false
		}
		base := uint16(0xf240)
		if strings.EqualFold(m[1], "movt") {
			base = 0xf2c0
		}
		i := uint16((imm >> 11) & 1)
		imm4 := uint16((imm >> 12) & 0xf)
		imm3 := uint16((imm >> 8) & 0x7)
		imm8 := uint16(imm & 0xff)
		hi := base | (i << 10) | imm4
		lo := (rd << 8) | (imm3 << 12) | imm8
		var wide [4]byte
		binary.LittleEndian.PutUint16(wide[0:2], hi)
		binary.LittleEndian.PutUint16(wide[2:4], lo)
		return wide[:], true

	case reMovImm.MatchString(text):
		m := reMovImm.FindStringSubmatch(text)
		rd, ok := parseReg(m[1])
		imm, iok := parseImm(m[2])
		if !ok || !iok || rd > 7 || imm < 0 || imm > 0xff {
			return nil, false
		}
		binary.LittleEndian.PutUint16(out[:], 0x2000|(rd<<8)|uint16(imm))
		return out[:], true

	case reMovReg.MatchString(text):
		m := reMovReg.FindStringSubmatch(text)
		rd, ok1 := parseReg(m[1])
		rm, ok2 := parseReg(m[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		binary.LittleEndian.PutUint16(out[:], 0x4600|((rd&0x8)<<4)|(rm<<3)|(rd&0x7))
		return out[:], true

	case reCmpImm.MatchString(text):
		m := reCmpImm.FindStringSubmatch(text)
		rd, ok := parseReg(m[1])
		imm, iok := parseImm(m[2])
		if !ok || !iok || rd > 7 || imm < 0 || imm > 0xff {
			return nil, false
		}
		binary.LittleEndian.PutUint16(out[:], 0x2800|(rd<<8)|uint16(imm))
		return out[:], true

	case reCmpReg.MatchString(text):
		m := reCmpReg.FindStringSubmatch(text)
		rn, ok1 := parseReg(m[1])
		rm, ok2 := parseReg(m[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		if rn <= 7 && rm <= 7 {
			binary.LittleEndian.PutUint16(out[:], 0x4280|(rm<<3)|rn)
		} else {
			binary.LittleEndian.PutUint16(out[:], 0x4500|((rn&0x8)<<4)|(rm<<3)|(rn&0x7))
		}
		return out[:], true

	case reBx.MatchString(text):
		m := reBx.FindStringSubmatch(text)
		rm, ok := parseReg(m[1])
		if !ok {
			return nil, false
		}
		binary.LittleEndian.PutUint16(out[:], 0x4700|(rm<<3))
		return out[:], true

	case reLdrPC.MatchString(text):
		m := reLdrPC.FindStringSubmatch(text)
		rd, ok := parseReg(m[1])
		imm, iok := parseImm(m[2])
		if !ok || !iok || rd > 7 || imm < 0 || imm%4 != 0 || imm > 0x3fc {
			return nil, false
		}
		binary.LittleEndian.PutUint16(out[:], 0x4800|(rd<<8)|uint16(imm/4))
		return out[:], true

	case reLdrImm.MatchString(text):
		m := reLdrImm.FindStringSubmatch(text)
		rd, ok1 := parseReg(m[1])
		rn, ok2 := parseReg(m[2])
		imm, iok := parseImm(m[3])
		if !ok1 || !ok2 || !iok || rd > 7 || rn > 7 || imm < 0 || imm%4 != 0 || imm > 0x7c {
			return nil, false
		}
		binary.LittleEndian.PutUint16(out[:], 0x6800|((uint16(imm)/4)<<6)|(rn<<3)|rd)
		return out[:], true

	case reStrImm.MatchString(text):
		m := reStrImm.FindStringSubmatch(text)
		rd, ok1 := parseReg(m[1])
		rn, ok2 := parseReg(m[2])
		imm, iok := parseImm(m[3])
		if !ok1 || !ok2 || !iok || rd > 7 || rn > 7 || imm < 0 || imm%4 != 0 || imm > 0x7c {
			return nil, false
		}
		binary.LittleEndian.PutUint16(out[:], 0x6000|((uint16(imm)/4)<<6)|(rn<<3)|rd)
		return out[:], true
	}

	return nil, false
}

func assembleARM(text string) ([]byte, bool) {
	var out [4]byte

	switch {
	case reNop.MatchString(text):
		binary.LittleEndian.PutUint32(out[:], 0xe1a00000)
		return out[:], true

	case reMovImm.MatchString(text):
		m := reMovImm.FindStringSubmatch(text)
		rd, ok := parseReg(m[1])
		imm, iok := parseImm(m[2])
		if !ok || !iok || imm < 0 || imm > 0xfff {
			return nil, false
		}
		binary.LittleEndian.PutUint32(out[:], 0xe3a00000|(uint32(rd)<<12)|uint32(imm))
		return out[:], true

	case reMovReg.MatchString(text):
		m := reMovReg.FindStringSubmatch(text)
		rd, ok1 := parseReg(m[1])
		rm, ok2 := parseReg(m[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		binary.LittleEndian.PutUint32(out[:], 0xe1a00000|(uint32(rd)<<12)|uint32(rm))
		return out[:], true

	case reCmpImm.MatchString(text):
		m := reCmpImm.FindStringSubmatch(text)
		rn, ok := parseReg(m[1])
		imm, iok := parseImm(m[2])
		if !ok || !iok || imm < 0 || imm > 0xfff {
			return nil, false
		}
		binary.LittleEndian.PutUint32(out[:], 0xe3500000|(uint32(rn)<<16)|uint32(imm))
		return out[:], true

	case reCmpReg.MatchString(text):
		m := reCmpReg.FindStringSubmatch(text)
		rn, ok1 := parseReg(m[1])
		rm, ok2 := parseReg(m[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		binary.LittleEndian.PutUint32(out[:], 0xe1500000|(uint32(rn)<<16)|uint32(rm))
		return out[:], true

	case reBx.MatchString(text):
		m := reBx.FindStringSubmatch(text)
		rm, ok := parseReg(m[1])
		if !ok {
			return nil, false
		}
		binary.LittleEndian.PutUint32(out[:], 0xe12fff10|uint32(rm))
		return out[:], true

	case reLdrImmARM.MatchString(text):
		m := reLdrImmARM.FindStringSubmatch(text)
		rd, ok1 := parseReg(m[1])
		rn, ok2 := parseReg(m[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		imm := int64(0)
		if m[3] != "" {
			v, iok := parseImm(m[3])
			if !iok {
				return nil, false
			}
			imm = v
		}
		u := uint32(1 << 23)
		if imm < 0 {
			u = 0
			imm = -imm
		}
		if imm > 0xfff {
			return nil, false
		}
		binary.LittleEndian.PutUint32(out[:], 0xe5100000|u|(uint32(rn)<<16)|(uint32(rd)<<12)|uint32(imm))
		return out[:], true
	}

	return nil, false
}
