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

package bin_test

import (
	"testing"

	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/test"
)

func TestSearch(t *testing.T) {
	hay := []byte{0x00, 0x47, 0x08, 0x47, 0x70, 0x47}
	test.ExpectEquality(t, bin.Search(hay, []byte{0x08, 0x47}, 0), 2)
	test.ExpectEquality(t, bin.Search(hay, []byte{0x08, 0x47}, 3), bin.NotFound)
	test.ExpectEquality(t, bin.Search(hay, []byte{0xff}, 0), bin.NotFound)
	test.ExpectEquality(t, bin.Search(hay, []byte{0x70, 0x47}, 0), 4)
	test.ExpectEquality(t, bin.Search(hay, []byte{0x00}, 10), bin.NotFound)
}

func TestReplace(t *testing.T) {
	buf := []byte{0x00, 0x47, 0x08, 0x47, 0x70, 0x47}

	err := bin.Replace(buf, 2, []byte{0x00, 0xbf})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, buf, []byte{0x00, 0x47, 0x00, 0xbf, 0x70, 0x47})

	err = bin.Replace(buf, 5, []byte{0x01, 0x02})
	test.ExpectFailure(t, err)
}

func TestRequireEvenLength(t *testing.T) {
	test.ExpectSuccess(t, bin.RequireEvenLength([]byte{0x00, 0xbf}))
	test.ExpectFailure(t, bin.RequireEvenLength([]byte{0x00, 0xbf, 0x01}))
	test.ExpectSuccess(t, bin.RequireEvenLength(nil))
}

func TestPCRelativeTarget(t *testing.T) {
	test.ExpectEquality(t, bin.PCRelativeTarget(0x100, 0x10), 0x114)
	test.ExpectEquality(t, bin.PCRelativeTarget(0x100, -0x10), 0xf4)
}

func TestAlignedLiteralAddress(t *testing.T) {
	// instruction at 0x102, pc = 0x106, aligned down to 0x104
	test.ExpectEquality(t, bin.AlignedLiteralAddress(0x102, 0x04), 0x108)
	test.ExpectEquality(t, bin.AlignedLiteralAddress(0x100, 0x00), 0x104)
}

func TestLEAccessors(t *testing.T) {
	buf := make([]byte, 8)
	bin.WriteLE32(buf, 0, 0xdeadbeef)
	test.ExpectEquality(t, bin.ReadLE32(buf, 0), uint32(0xdeadbeef))

	bin.WriteLE16(buf, 4, 0xbeef)
	test.ExpectEquality(t, bin.ReadLE16(buf, 4), uint16(0xbeef))
}
