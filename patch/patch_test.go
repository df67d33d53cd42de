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

package patch_test

import (
	"testing"

	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/logger"
	"github.com/mtkboot/core/patch"
	"github.com/mtkboot/core/test"
)

// secRegionCheckBuffer builds "push {r0, r1, r2, r4, r5, lr}; mov r4, r0;
// mov r5, r1" padded out to a full-sized preloader-shaped buffer.
func secRegionCheckBuffer() []byte {
	buf := make([]byte, 0x20000)
	// PUSH {r0, r1, r2, r4, r5, lr} (reglist bits 0,1,2,4,5 = 0x37, + LR bit 0x100 -> 0xb537)
	buf[0x40] = 0x37
	buf[0x41] = 0xb5
	// MOV r4, r0 (0x4600 | (4&8)<<4=0 | r0<<3=0 | (4&7)=4 -> 0x4604)
	buf[0x42] = 0x04
	buf[0x43] = 0x46
	// MOV r5, r1 (0x4600 | 0 | (1<<3) | 5 -> 0x460D)
	buf[0x44] = 0x0d
	buf[0x45] = 0x46
	return buf
}

func TestSecRegionCheckApply(t *testing.T) {
	data := secRegionCheckBuffer()
	buf := arm.CodeBuffer{Bytes: data}

	catalog := patch.NewPreloaderCatalog()
	p, ok := catalog.Get("sec_region_check")
	test.ExpectSuccess(t, ok)

	originalLen := len(data)
	err := p.Apply(buf)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(data), originalLen)

	instrs := arm.Disassemble(data[0x40:0x48], arm.Thumb2)
	test.ExpectEquality(t, instrs[0].Mnemonic, "MOVS")
	test.ExpectEquality(t, instrs[1].Mnemonic, "BX")
}

func TestDAHashApply(t *testing.T) {
	data := make([]byte, 0x1000)
	// CMP r0, r1 (low-register form: 0x4280 | (1<<3) | 0 = 0x4288)
	data[0x10] = 0x88
	data[0x11] = 0x42
	// BNE #0 (cond=0001=NE, opcode 0xD000|cond<<8|imm8)
	data[0x12] = 0x00
	data[0x13] = 0xd1

	buf := arm.CodeBuffer{Bytes: data}
	catalog := patch.NewPreloaderCatalog()
	p, _ := catalog.Get("DA hash")

	err := p.Apply(buf)
	test.ExpectSuccess(t, err)

	instrs := arm.Disassemble(data[0x10:0x12], arm.Thumb2)
	test.ExpectEquality(t, len(instrs), 1)
	test.ExpectEquality(t, instrs[0].Mnemonic, "CMP")
	test.ExpectEquality(t, instrs[0].Operands, "r1, r1")
}

// daaBuffer places the literal "ldr r3, [r3]; ldr r2, [r3]; cmp r2, #0x11"
// landmark at 0x10c, with the 8-byte function prologue it actually guards
// sitting 12 bytes earlier at 0x100.
func daaBuffer() []byte {
	data := make([]byte, 0x1000)
	landmark := []byte{0x00, 0x30, 0x93, 0xe5, 0x00, 0x20, 0x93, 0xe5, 0x11, 0x00, 0x52, 0xe3}
	copy(data[0x10c:], landmark)
	return data
}

func TestDAAApply(t *testing.T) {
	data := daaBuffer()
	buf := arm.CodeBuffer{Bytes: data}

	catalog := patch.NewPreloaderCatalog()
	p, ok := catalog.Get("DAA")
	test.ExpectSuccess(t, ok)

	originalLen := len(data)
	err := p.Apply(buf)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(data), originalLen)

	instrs := arm.Disassemble(data[0x100:0x108], arm.ARM)
	test.ExpectEquality(t, len(instrs), 2)
	test.ExpectEquality(t, instrs[0].Mnemonic, "MOV")
	test.ExpectEquality(t, instrs[1].Mnemonic, "BX")

	// the landmark itself, 12 bytes on, is untouched.
	landmarkStillThere := arm.Disassemble(data[0x10c:0x118], arm.ARM)
	test.ExpectEquality(t, len(landmarkStillThere), 3)
	test.ExpectEquality(t, landmarkStillThere[2].Mnemonic, "CMP")
}

func TestUARTPortApply(t *testing.T) {
	data := make([]byte, 0x1000)
	movw, err := arm.Assemble("movw r2, #921600", arm.Thumb2)
	test.ExpectSuccess(t, err)
	mov, err := arm.Assemble("mov r1, r4", arm.Thumb2)
	test.ExpectSuccess(t, err)
	copy(data[0x206:], movw)
	copy(data[0x206+len(movw):], mov)

	buf := arm.CodeBuffer{Bytes: data}
	catalog := patch.NewDACatalog()
	p, ok := catalog.Get("UART port")
	test.ExpectSuccess(t, ok)

	err = p.Apply(buf)
	test.ExpectSuccess(t, err)

	instrs := arm.Disassemble(data[0x200:0x204], arm.Thumb2)
	test.ExpectEquality(t, len(instrs), 1)
	test.ExpectEquality(t, instrs[0].Mnemonic, "MOVW")
	test.ExpectEquality(t, instrs[0].Operands, "r0, #0")

	// the landmark itself, 6 bytes on, is untouched.
	stillThere := arm.Disassemble(data[0x206:0x20c], arm.Thumb2)
	test.ExpectEquality(t, len(stillThere), 2)
}

func TestApplyAllReportsPerPatchResults(t *testing.T) {
	data := secRegionCheckBuffer()
	buf := arm.CodeBuffer{Bytes: data}

	catalog := patch.NewPreloaderCatalog()
	log := logger.NewLogger(100)
	results := catalog.ApplyAll(buf, log, logger.Allow)

	test.ExpectEquality(t, len(results) > 0, true)

	var sawSuccess, sawFailure bool
	for _, r := range results {
		if r.Name == "sec_region_check" {
			test.ExpectSuccess(t, r.Err)
			sawSuccess = true
		}
		if r.Err != nil {
			sawFailure = true
		}
	}
	test.ExpectSuccess(t, sawSuccess)
	test.ExpectSuccess(t, sawFailure) // the other patterns legitimately aren't present
}

func TestPatchSearchNotFound(t *testing.T) {
	data := make([]byte, 0x100)
	buf := arm.CodeBuffer{Bytes: data}

	catalog := patch.NewDACatalog()
	p, _ := catalog.Get("UART port")
	_, _, err := p.Search(buf)
	test.ExpectFailure(t, err)
}
