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

package da_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/mtkboot/core/firmware/da"
	"github.com/mtkboot/core/test"
)

// buildContainer synthesizes a single-entry, single-region container with
// the given region geometry, mirroring the on-disk layout documented for
// this format.
func buildContainer(offset, length, loadBase, sigLen uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("MTK_DOWNLOAD_AGENT")
	buf.Write(make([]byte, 14))

	buildID := make([]byte, 64)
	copy(buildID, "demo-build")
	buf.Write(buildID)

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], 0x00000004)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], 0x22668899)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], 1) // entry count
	buf.Write(u32[:])

	// entry
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], 0xdada)
	buf.Write(u16[:])
	binary.LittleEndian.PutUint16(u16[:], 0x6572) // hw_code
	buf.Write(u16[:])
	binary.LittleEndian.PutUint16(u16[:], 0) // hw_subcode
	buf.Write(u16[:])
	binary.LittleEndian.PutUint16(u16[:], 0) // hw_version
	buf.Write(u16[:])
	binary.LittleEndian.PutUint16(u16[:], 0) // sw_version
	buf.Write(u16[:])
	buf.Write(make([]byte, 6)) // 3x reserved
	binary.LittleEndian.PutUint16(u16[:], 0)
	buf.Write(u16[:]) // region_index
	binary.LittleEndian.PutUint16(u16[:], 1)
	buf.Write(u16[:]) // region_count

	binary.LittleEndian.PutUint32(u32[:], offset)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], length)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], loadBase)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], 0)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], sigLen)
	buf.Write(u32[:])

	// pad out to past the region's own offset+length
	total := int(offset + length)
	if buf.Len() < total {
		buf.Write(make([]byte, total-buf.Len()))
	}

	return buf.Bytes()
}

func TestParseValidContainer(t *testing.T) {
	data := buildContainer(0x100, 0x200, 0x2007000, 0x40)
	c, err := da.Parse(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(c.Entries), 1)
	test.ExpectEquality(t, c.Entries[0].HwCode, uint16(0x6572))
	test.ExpectEquality(t, len(c.Entries[0].Regions), 1)

	region := c.Entries[0].Regions[0]
	test.ExpectEquality(t, region.LoadBase, uint32(0x2007000))
	test.ExpectEquality(t, len(region.Code(data)), 0x1c0)
	test.ExpectEquality(t, len(region.Signature(data)), 0x40)
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := buildContainer(0x100, 0x200, 0x2007000, 0x40)
	data[0] = 'X'
	_, err := da.Parse(data)
	test.ExpectFailure(t, err)
}

func TestParseRejectsRegionOffsetBelowMinimum(t *testing.T) {
	data := buildContainer(0x10, 0x200, 0x2007000, 0x40)
	_, err := da.Parse(data)
	test.ExpectFailure(t, err)
}

func TestParseRejectsZeroLoadBase(t *testing.T) {
	data := buildContainer(0x100, 0x200, 0, 0x40)
	_, err := da.Parse(data)
	test.ExpectFailure(t, err)
}

func TestEntryFor(t *testing.T) {
	data := buildContainer(0x100, 0x200, 0x2007000, 0x40)
	c, err := da.Parse(data)
	test.ExpectSuccess(t, err)

	_, ok := c.EntryFor(0x6572)
	test.ExpectSuccess(t, ok)

	_, ok = c.EntryFor(0xffff)
	test.ExpectFailure(t, ok)
}
