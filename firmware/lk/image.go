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

package lk

import (
	"encoding/binary"
	"strings"

	"github.com/mtkboot/core/curated"
)

const (
	headerMagic = 0x58881688
	headerSize  = 512
	nameLen     = 32

	dummyLoadAddress = 0xffffffff
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrTruncated    = "lk: buffer shorter than the 512-byte header"
	ErrInvalidMagic = "lk: invalid header magic 0x%08x"
	ErrZeroMode     = "lk: header mode field is zero"
)

// ParseMode selects how Parse reacts when the header doesn't parse: a
// corrupt or absent header is common on images that are just raw code with
// no LK wrapper at all.
type ParseMode int

const (
	// AssumeRawOnFailure treats an unparseable header as "this is not an
	// LK image" rather than an error: Parse returns a Header with no code
	// stripped, Code() returning the whole input unchanged, and Wrapped
	// false.
	AssumeRawOnFailure ParseMode = iota
	// StrictHeader propagates header validation failures as errors.
	StrictHeader
)

// Header is the decoded 512-byte LK image header.
type Header struct {
	Wrapped     bool
	Magic       uint32
	Size        uint32
	Name        string
	LoadAddress uint32
	Mode        uint32
	code        []byte
}

// IsDummyLoadAddress reports whether the header's load address is the
// documented "ignore this field" sentinel.
func (h Header) IsDummyLoadAddress() bool {
	return h.LoadAddress == dummyLoadAddress
}

// Code returns the bytes following the header (or, for an unwrapped image
// under AssumeRawOnFailure, the entire input).
func (h Header) Code() []byte {
	return h.code
}

// Parse decodes an LK image header from data according to mode.
func Parse(data []byte, mode ParseMode) (Header, error) {
	header, err := parseStrict(data)
	if err == nil {
		return header, nil
	}
	if mode == StrictHeader {
		return Header{}, err
	}
	return Header{Wrapped: false, code: data}, nil
}

func parseStrict(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, curated.Errorf(ErrTruncated)
	}

	magic := binary.LittleEndian.Uint32(data[0:])
	if magic != headerMagic {
		return Header{}, curated.Errorf(ErrInvalidMagic, magic)
	}

	size := binary.LittleEndian.Uint32(data[4:])
	name := strings.TrimRight(string(data[8:8+nameLen]), "\x00")
	loadAddress := binary.LittleEndian.Uint32(data[8+nameLen:])
	modeField := binary.LittleEndian.Uint32(data[8+nameLen+4:])

	if modeField == 0 {
		return Header{}, curated.Errorf(ErrZeroMode)
	}

	end := len(data)
	if int(size) <= len(data) && size >= headerSize {
		end = int(size)
	}

	return Header{
		Wrapped:     true,
		Magic:       magic,
		Size:        size,
		Name:        name,
		LoadAddress: loadAddress,
		Mode:        modeField,
		code:        data[headerSize:end],
	}, nil
}
