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

package intercept_test

import (
	"testing"

	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/device/arena"
	"github.com/mtkboot/core/intercept"
	"github.com/mtkboot/core/test"
)

// ldrInPrologueImage builds the worked example from the design notes: a
// function entry that begins "LDR R3, [pc, #4]; BX R3" with the literal
// 0x80021000 at offset 8, padded with two NOPs to round the 4-byte-aligned
// entry's displaced region out to 8 bytes.
func ldrInPrologueImage(base uint32) *arena.Arena {
	a := arena.New(base, 32)
	bin.WriteLE16(a.Bytes(), 0, 0x4b01)  // LDR r3, [pc, #4]
	bin.WriteLE16(a.Bytes(), 2, 0x4718)  // BX r3
	bin.WriteLE16(a.Bytes(), 4, 0xbf00)  // NOP
	bin.WriteLE16(a.Bytes(), 6, 0xbf00)  // NOP
	bin.WriteLE32(a.Bytes(), 8, 0x80021000) // literal pool slot
	return a
}

func TestInstallRelocatesLdrInPrologue(t *testing.T) {
	base := uint32(0x80020000)
	code := ldrInPrologueImage(base)
	scratch := arena.New(0x90100000, 256)
	pool := intercept.NewPool()
	cache := intercept.LoggingCacheMaintainer{}

	err := intercept.Install(code, scratch, pool, cache, base|1, 0x90000001)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pool.Len(), 1)

	trampolineAddr, err := intercept.Original(pool, base|1)
	test.ExpectSuccess(t, err)

	tramp, err := scratch.ReadAt(trampolineAddr&^1, 12)
	test.ExpectSuccess(t, err)

	instrs := arm.Disassemble(tramp, arm.Thumb2)
	test.ExpectEquality(t, instrs[0].Mnemonic, "MOVW")
	test.ExpectEquality(t, instrs[0].Operands, "r3, #4096")
	test.ExpectEquality(t, instrs[1].Mnemonic, "MOVT")
	test.ExpectEquality(t, instrs[1].Operands, "r3, #32770")

	site, err := code.ReadAt(base, 8)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, bin.ReadLE16(site, 0), uint16(0xf8df))
	test.ExpectEquality(t, bin.ReadLE16(site, 2), uint16(0xf000))
	test.ExpectEquality(t, bin.ReadLE32(site, 4), uint32(0x90000001))
}

func TestInstallRejectsArmModeTarget(t *testing.T) {
	base := uint32(0x80020000)
	code := ldrInPrologueImage(base)
	scratch := arena.New(0x90100000, 256)
	pool := intercept.NewPool()
	cache := intercept.LoggingCacheMaintainer{}

	err := intercept.Install(code, scratch, pool, cache, base, 0x90000001)
	test.ExpectFailure(t, err)
}

func TestRevertRestoresCallSite(t *testing.T) {
	base := uint32(0x80020000)
	code := ldrInPrologueImage(base)
	scratch := arena.New(0x90100000, 256)
	pool := intercept.NewPool()
	cache := intercept.LoggingCacheMaintainer{}

	err := intercept.Install(code, scratch, pool, cache, base|1, 0x90000001)
	test.ExpectSuccess(t, err)

	err = intercept.Revert(code, scratch, pool, cache, base|1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pool.Len(), 0)

	_, err = intercept.Original(pool, base|1)
	test.ExpectFailure(t, err)
}

func TestRevertWithoutInstallFails(t *testing.T) {
	base := uint32(0x80020000)
	code := ldrInPrologueImage(base)
	scratch := arena.New(0x90100000, 256)
	pool := intercept.NewPool()
	cache := intercept.LoggingCacheMaintainer{}

	err := intercept.Revert(code, scratch, pool, cache, base|1)
	test.ExpectFailure(t, err)
}
