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

package analyzer_test

import (
	"testing"

	"github.com/mtkboot/core/analyzer"
	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/test"
)

// ifElseFunction builds:
//
//	0: PUSH {r4, lr}
//	2: CMP r0, #0
//	4: BEQ #4          (-> offset 12)
//	6: MOVS r0, #1
//	8: BX lr
//	10: NOP            (padding)
//	12: MOVS r0, #2
//	14: BX lr
func ifElseFunction() []byte {
	data := make([]byte, 16)
	bin.WriteLE16(data, 0, 0xb510)  // PUSH {r4, lr}
	bin.WriteLE16(data, 2, 0x2800)  // CMP r0, #0
	bin.WriteLE16(data, 4, 0xd002)  // BEQ #4
	bin.WriteLE16(data, 6, 0x2001)  // MOVS r0, #1
	bin.WriteLE16(data, 8, 0x4770)  // BX lr
	bin.WriteLE16(data, 10, 0xbf00) // NOP
	bin.WriteLE16(data, 12, 0x2002) // MOVS r0, #2
	bin.WriteLE16(data, 14, 0x4770) // BX lr
	return data
}

func TestRecoverFunctionIfElse(t *testing.T) {
	a := analyzer.New(ifElseFunction(), 0)
	test.ExpectEquality(t, len(a.Code), 8)
	test.ExpectEquality(t, a.Code[0].Mnemonic, "PUSH")
	test.ExpectEquality(t, a.Code[2].Mnemonic, "BEQ")

	fn, err := a.RecoverFunction(1, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn.Start, 0)
	test.ExpectEquality(t, len(fn.Blocks), 3)

	test.ExpectEquality(t, fn.Blocks[0].Start, 0)
	test.ExpectEquality(t, fn.Blocks[0].End, 2)
	test.ExpectEquality(t, fn.Blocks[1].Start, 3)
	test.ExpectEquality(t, fn.Blocks[1].End, 4)
	test.ExpectEquality(t, fn.Blocks[2].Start, 6)
	test.ExpectEquality(t, fn.Blocks[2].End, 7)
}

func TestRecoverFunctionInvalidIndex(t *testing.T) {
	a := analyzer.New(ifElseFunction(), 0)
	_, err := a.RecoverFunction(100, nil)
	test.ExpectFailure(t, err)
}
