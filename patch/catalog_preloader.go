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

package patch

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/bin"
)

// BootArgumentAddress is the host-chosen address the "DA boot argument"
// patch rewrites a preloader literal pool slot to point at.
const BootArgumentAddress = 0x800d0000

func disasmRange(buf arm.CodeBuffer, start, end uint32) []arm.Instruction {
	return arm.Disassemble(buf.Bytes[start:end], arm.Thumb2)
}

// neutralizeWithReturn synthesizes "movs r0, #0; bx lr" - the replacement
// shared by every patch that short-circuits a function to an unconditional
// success return.
func neutralizeWithReturn(_ arm.CodeBuffer, _, _ uint32) ([]byte, error) {
	mov, err := arm.Assemble("movs r0, #0", arm.Thumb2)
	if err != nil {
		return nil, err
	}
	bx, err := arm.Assemble("bx lr", arm.Thumb2)
	if err != nil {
		return nil, err
	}
	return append(mov, bx...), nil
}

var (
	reLoadStoreImm = regexp.MustCompile(`^(\w+), \[(\w+), #(\d+)\]$`)
	reLdrPCImm     = regexp.MustCompile(`\[pc, #(\d+)\]$`)
)

// NewPreloaderCatalog returns the catalog of named patches this toolkit
// applies to a preloader image before it is re-uploaded.
func NewPreloaderCatalog() *Catalog {
	c := NewCatalog()

	// sec_region_check: a function opening with the documented security
	// region validation prologue is short-circuited to always succeed.
	c.Add(Patch{
		Name:        "sec_region_check",
		Pattern:     "push {r0, r1, r2, r4, r5, lr}; mov r4, r0; mov r5, r1",
		MatchMode:   FuzzyInstruction,
		CPUMode:     arm.Thumb2,
		OffsetFrom:  MatchStart,
		Replacement: neutralizeWithReturn,
	})

	// DAA: the download-agent-authentication gate reads the region table
	// pointer twice and compares it against the 0x11 ("signed+verified")
	// flag; the comparison's operands are ARM, not Thumb-2, and the patch
	// target is the function prologue 12 bytes ahead of the comparison
	// itself, not the comparison.
	c.Add(Patch{
		Name:      "DAA",
		Pattern:   "ldr r3, [r3]; ldr r2, [r3]; cmp r2, #0x11",
		MatchMode: LiteralAsm,
		CPUMode:   arm.ARM,
		OffsetFrom: func(_ arm.CodeBuffer, start, _ uint32) (uint32, error) {
			return start - 12, nil
		},
		Replacement: func(_ arm.CodeBuffer, _, _ uint32) ([]byte, error) {
			mov, err := arm.Assemble("movs r0, #0", arm.ARM)
			if err != nil {
				return nil, err
			}
			bx, err := arm.Assemble("bx lr", arm.ARM)
			if err != nil {
				return nil, err
			}
			return append(mov, bx...), nil
		},
	})

	// DA hash: a comparison guarding the hash check is forced to always
	// compare equal to itself.
	c.Add(Patch{
		Name:       "DA hash",
		Pattern:    "cmp r0, r1; bne #?",
		MatchMode:  FuzzyInstruction,
		CPUMode:    arm.Thumb2,
		OffsetFrom: MatchStart,
		Replacement: func(buf arm.CodeBuffer, start, end uint32) ([]byte, error) {
			return arm.Assemble("cmp r1, r1", arm.Thumb2)
		},
	})

	// send_da: a hardcoded-store of the staged DA address is converted
	// into a load, so the value comes from the command parameter instead.
	c.Add(Patch{
		Name:       "send_da",
		Pattern:    "str r?, [r?, #?]",
		MatchMode:  FuzzyInstruction,
		CPUMode:    arm.Thumb2,
		OffsetFrom: MatchStart,
		Replacement: func(buf arm.CodeBuffer, start, end uint32) ([]byte, error) {
			instrs := disasmRange(buf, start, end)
			if len(instrs) != 1 {
				return nil, fmt.Errorf("send_da: expected exactly one matched instruction")
			}
			m := reLoadStoreImm.FindStringSubmatch(instrs[0].Operands)
			if m == nil {
				return nil, fmt.Errorf("send_da: cannot parse matched operands %q", instrs[0].Operands)
			}
			return arm.Assemble(fmt.Sprintf("ldr %s, [%s, #%s]", m[1], m[2], m[3]), arm.Thumb2)
		},
	})

	// jump_da: the hardcoded jump target and boot-argument address are
	// erased with NOPs, preserving only the boot-argument load.
	c.Add(Patch{
		Name:       "jump_da",
		Pattern:    "ldr r?, [pc, #?]; bx r?; ldr r?, [pc, #?]",
		MatchMode:  FuzzyInstruction,
		CPUMode:    arm.Thumb2,
		OffsetFrom: MatchStart,
		Replacement: func(buf arm.CodeBuffer, start, end uint32) ([]byte, error) {
			instrs := disasmRange(buf, start, end)
			if len(instrs) != 3 {
				return nil, fmt.Errorf("jump_da: expected three matched instructions, got %d", len(instrs))
			}
			nop, err := arm.Assemble("nop", arm.Thumb2)
			if err != nil {
				return nil, err
			}
			kept := buf.Bytes[start+instrs[2].Offset : start+instrs[2].Offset+uint32(instrs[2].Length)]
			out := append(append([]byte{}, nop...), nop...)
			return append(out, kept...), nil
		},
	})

	// DA boot argument: rewrite the literal pool slot a preloader LDR
	// reaches to hold the host-chosen boot argument address.
	c.Add(Patch{
		Name:      "DA boot argument",
		Pattern:   "ldr r?, [pc, #?]",
		MatchMode: FuzzyInstruction,
		CPUMode:   arm.Thumb2,
		OffsetFrom: func(buf arm.CodeBuffer, start, end uint32) (uint32, error) {
			instrs := disasmRange(buf, start, end)
			instr := instrs[0]
			m := reLdrPCImm.FindStringSubmatch(instr.Operands)
			if m == nil {
				return 0, fmt.Errorf("DA boot argument: cannot parse matched operands %q", instr.Operands)
			}
			imm, err := strconv.Atoi(m[1])
			if err != nil {
				return 0, err
			}
			return uint32(bin.AlignedLiteralAddress(int(start+instr.Offset), imm)), nil
		},
		Replacement: func(buf arm.CodeBuffer, start, end uint32) ([]byte, error) {
			out := make([]byte, 4)
			bin.WriteLE32(out, 0, BootArgumentAddress)
			return out, nil
		},
	})

	return c
}
