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

package da

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/mtkboot/core/curated"
)

const (
	magic      = "MTK_DOWNLOAD_AGENT"
	magicLen   = 18
	paddingLen = 14
	buildIDLen = 64
	entryTag   = 0xdada

	headerVersion = 0x00000004
	headerType    = 0x22668899

	minOffset = 256
	minLength = 256
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrInvalidMagic        = "da: invalid header magic"
	ErrInvalidPadding      = "da: non-zero header padding"
	ErrInvalidType         = "da: unexpected header type field 0x%08x"
	ErrNoEntries           = "da: container has no entries"
	ErrNoRegions           = "da: entry %d has no regions"
	ErrInvalidRegionStart  = "da: entry %d region %d offset %d below minimum %d"
	ErrInvalidRegionSize   = "da: entry %d region %d length %d below minimum %d"
	ErrInvalidRegionBase   = "da: entry %d region %d has zero load base"
	ErrTruncated           = "da: buffer truncated at offset %d"
	ErrInvalidSignatureLen = "da: entry %d region %d signature length %d exceeds region length %d"
)

// Region is one loadable, signed slice of the container: [offset,
// offset+length-sigLen) is code, the trailing sigLen bytes are the
// signature.
type Region struct {
	Offset          uint32
	Length          uint32
	LoadBase        uint32
	OffsetParam     uint32
	SignatureLength uint32
}

// Code slices the code portion of the region out of data.
func (r Region) Code(data []byte) []byte {
	start := r.Offset
	end := r.Offset + r.Length - r.SignatureLength
	return data[start:end]
}

// Signature slices the trailing signature bytes out of data.
func (r Region) Signature(data []byte) []byte {
	start := r.Offset + r.Length - r.SignatureLength
	end := r.Offset + r.Length
	return data[start:end]
}

// Entry identifies one SoC variant and the ordered regions that make up
// its download agent. By convention Regions[0] is a header blob,
// Regions[1] is DA1, and Regions[2] is DA2.
type Entry struct {
	HwCode    uint16
	HwSubcode uint16
	HwVersion uint16
	SwVersion uint16
	Regions   []Region
}

// Container is the fully parsed download agent file.
type Container struct {
	BuildID string
	Entries []Entry
}

// EntryFor returns the entry matching hwCode, if any.
func (c Container) EntryFor(hwCode uint16) (Entry, bool) {
	for _, e := range c.Entries {
		if e.HwCode == hwCode {
			return e, true
		}
	}
	return Entry{}, false
}

// Parse decodes a download agent container from data. data is retained by
// reference inside the returned Region values (via Code/Signature); it is
// not copied.
func Parse(data []byte) (Container, error) {
	if len(data) < magicLen+paddingLen+buildIDLen+12 {
		return Container{}, curated.Errorf(ErrTruncated, 0)
	}

	if string(data[:magicLen]) != magic {
		return Container{}, curated.Errorf(ErrInvalidMagic)
	}

	padding := data[magicLen : magicLen+paddingLen]
	if !bytes.Equal(padding, make([]byte, paddingLen)) {
		return Container{}, curated.Errorf(ErrInvalidPadding)
	}

	off := magicLen + paddingLen
	buildIDRaw := data[off : off+buildIDLen]
	off += buildIDLen

	version := binary.LittleEndian.Uint32(data[off:])
	off += 4
	_ = version

	typ := binary.LittleEndian.Uint32(data[off:])
	off += 4
	if typ != headerType {
		return Container{}, curated.Errorf(ErrInvalidType, typ)
	}

	count := binary.LittleEndian.Uint32(data[off:])
	off += 4

	if count == 0 {
		return Container{}, curated.Errorf(ErrNoEntries)
	}

	entries := make([]Entry, 0, count)
	for i := 0; i < int(count); i++ {
		entry, next, err := parseEntry(data, off, i)
		if err != nil {
			return Container{}, err
		}
		entries = append(entries, entry)
		off = next
	}

	buildID := strings.TrimRight(string(buildIDRaw), "\x00")

	return Container{
		BuildID: buildID,
		Entries: entries,
	}, nil
}

func parseEntry(data []byte, off, index int) (Entry, int, error) {
	if off+22 > len(data) {
		return Entry{}, 0, curated.Errorf(ErrTruncated, off)
	}

	// tag field (0xDADA) is read but not validated strictly: some SoC
	// profiles have been observed with a near-miss tag, and the region
	// geometry is what actually matters for loading.
	_ = binary.LittleEndian.Uint16(data[off:])
	off += 2

	hwCode := binary.LittleEndian.Uint16(data[off:])
	off += 2
	hwSubcode := binary.LittleEndian.Uint16(data[off:])
	off += 2
	hwVersion := binary.LittleEndian.Uint16(data[off:])
	off += 2
	swVersion := binary.LittleEndian.Uint16(data[off:])
	off += 2
	off += 3 * 2 // reserved
	regionIndex := binary.LittleEndian.Uint16(data[off:])
	off += 2
	regionCount := binary.LittleEndian.Uint16(data[off:])
	off += 2
	_ = regionIndex

	if regionCount == 0 {
		return Entry{}, 0, curated.Errorf(ErrNoRegions, index)
	}

	regions := make([]Region, 0, regionCount)
	for r := 0; r < int(regionCount); r++ {
		if off+20 > len(data) {
			return Entry{}, 0, curated.Errorf(ErrTruncated, off)
		}
		region := Region{
			Offset:          binary.LittleEndian.Uint32(data[off:]),
			Length:          binary.LittleEndian.Uint32(data[off+4:]),
			LoadBase:        binary.LittleEndian.Uint32(data[off+8:]),
			OffsetParam:     binary.LittleEndian.Uint32(data[off+12:]),
			SignatureLength: binary.LittleEndian.Uint32(data[off+16:]),
		}
		off += 20

		if region.Offset < minOffset {
			return Entry{}, 0, curated.Errorf(ErrInvalidRegionStart, index, r, region.Offset, minOffset)
		}
		if region.Length < minLength {
			return Entry{}, 0, curated.Errorf(ErrInvalidRegionSize, index, r, region.Length, minLength)
		}
		if region.LoadBase == 0 {
			return Entry{}, 0, curated.Errorf(ErrInvalidRegionBase, index, r)
		}
		if region.SignatureLength > region.Length {
			return Entry{}, 0, curated.Errorf(ErrInvalidSignatureLen, index, r, region.SignatureLength, region.Length)
		}

		regions = append(regions, region)
	}

	return Entry{
		HwCode:    hwCode,
		HwSubcode: hwSubcode,
		HwVersion: hwVersion,
		SwVersion: swVersion,
		Regions:   regions,
	}, off, nil
}
