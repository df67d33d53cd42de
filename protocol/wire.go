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

package protocol

import (
	"encoding/binary"

	"github.com/mtkboot/core/curated"
)

// ErrShortBuffer is reported - via curated.Is - whenever a body ends before
// a field it promised (the length prefix of a blob, or a fixed-width
// scalar) has been fully read.
const ErrShortBuffer = "protocol: body truncated reading %s"

// appendU32 appends v to buf, big-endian, matching every other numeric
// field on the wire (the frame length prefix, the legacy commands, and the
// boot argument struct are all big- or little-endian by explicit
// convention; the RPC body standardises on big-endian throughout).
func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

// appendBlob appends a u32 big-endian length prefix followed by data.
func appendBlob(buf []byte, data []byte) []byte {
	buf = appendU32(buf, uint32(len(data)))
	return append(buf, data...)
}

func readU32(body []byte, off int, field string) (uint32, int, error) {
	if off+4 > len(body) {
		return 0, 0, curated.Errorf(ErrShortBuffer, field)
	}
	return binary.BigEndian.Uint32(body[off:]), off + 4, nil
}

func readByte(body []byte, off int, field string) (byte, int, error) {
	if off+1 > len(body) {
		return 0, 0, curated.Errorf(ErrShortBuffer, field)
	}
	return body[off], off + 1, nil
}

func readBlob(body []byte, off int, field string) ([]byte, int, error) {
	n, off, err := readU32(body, off, field)
	if err != nil {
		return nil, 0, err
	}
	if off+int(n) > len(body) {
		return nil, 0, curated.Errorf(ErrShortBuffer, field)
	}
	return body[off : off+int(n)], off + int(n), nil
}
