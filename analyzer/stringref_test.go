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

func TestFindStringReferenceViaDirectAdr(t *testing.T) {
	data := make([]byte, 32)
	// ADR r0, #8 (imm/4 = 2 -> 0xa000 | 0<<8 | 2)
	bin.WriteLE16(data, 0, 0xa002)
	copy(data[12:], []byte("hi"))

	a := analyzer.New(data, 0)
	idx, err := a.FindStringReference("hi", analyzer.DefaultStringRefOptions())
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a.Code[idx].Mnemonic, "ADR")
}

func TestFindStringReferenceViaLiteralPool(t *testing.T) {
	data := make([]byte, 32)
	base := uint32(0x1000)
	// LDR r0, [pc, #0]
	bin.WriteLE16(data, 0, 0x4800)
	copy(data[20:], []byte("hi"))
	bin.WriteLE32(data, 4, uint32(20)+base)

	a := analyzer.New(data, base)
	idx, err := a.FindStringReference("hi", analyzer.DefaultStringRefOptions())
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a.Code[idx].Mnemonic, "LDR")
}

func TestFindStringReferenceNotFound(t *testing.T) {
	data := make([]byte, 32)
	a := analyzer.New(data, 0)
	_, err := a.FindStringReference("nope", analyzer.DefaultStringRefOptions())
	test.ExpectFailure(t, err)
}
