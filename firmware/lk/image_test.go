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

package lk_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/mtkboot/core/firmware/lk"
	"github.com/mtkboot/core/test"
)

func buildImage(loadAddress, mode uint32, codeLen int) []byte {
	var buf bytes.Buffer
	var u32 [4]byte

	binary.LittleEndian.PutUint32(u32[:], 0x58881688)
	buf.Write(u32[:])

	size := uint32(512 + codeLen)
	binary.LittleEndian.PutUint32(u32[:], size)
	buf.Write(u32[:])

	name := make([]byte, 32)
	copy(name, "kernel")
	buf.Write(name)

	binary.LittleEndian.PutUint32(u32[:], loadAddress)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], mode)
	buf.Write(u32[:])

	buf.Write(make([]byte, 464))
	buf.Write(make([]byte, codeLen))

	return buf.Bytes()
}

func TestParseWrappedImage(t *testing.T) {
	data := buildImage(0xffffffff, 1, 0x1000)
	h, err := lk.Parse(data, lk.StrictHeader)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, h.Wrapped, true)
	test.ExpectSuccess(t, h.IsDummyLoadAddress())
	test.ExpectEquality(t, h.Name, "kernel")
	test.ExpectEquality(t, len(h.Code()), 0x1000)
}

func TestParseRejectsBadMagicStrict(t *testing.T) {
	data := buildImage(0x1000, 1, 0x100)
	data[0] = 0x00
	_, err := lk.Parse(data, lk.StrictHeader)
	test.ExpectFailure(t, err)
}

func TestParseAssumesRawOnBadMagic(t *testing.T) {
	raw := bytes.Repeat([]byte{0xaa}, 64)
	h, err := lk.Parse(raw, lk.AssumeRawOnFailure)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, h.Wrapped, false)
	test.ExpectEquality(t, h.Code(), raw)
}

func TestParseRejectsZeroMode(t *testing.T) {
	data := buildImage(0x1000, 0, 0x100)
	_, err := lk.Parse(data, lk.StrictHeader)
	test.ExpectFailure(t, err)
}
