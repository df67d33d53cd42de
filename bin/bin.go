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

package bin

import (
	"bytes"
	"encoding/binary"

	"github.com/mtkboot/core/curated"
)

// NotFound is returned by Search when needle does not occur in haystack.
const NotFound = -1

// Search returns the byte offset of the first occurrence of needle in
// haystack at or after start, or NotFound.
func Search(haystack []byte, needle []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return NotFound
	}
	idx := bytes.Index(haystack[start:], needle)
	if idx < 0 {
		return NotFound
	}
	return start + idx
}

// Replace overwrites buf[offset:offset+len(replacement)] with replacement.
// It never grows or shrinks buf; it is an error for the replacement to run
// past the end of buf.
func Replace(buf []byte, offset int, replacement []byte) error {
	if offset < 0 || offset+len(replacement) > len(buf) {
		return curated.Errorf("bin: replacement at offset %d (length %d) overruns buffer of length %d", offset, len(replacement), len(buf))
	}
	copy(buf[offset:], replacement)
	return nil
}

// RequireEvenLength is the Thumb-alignment sanity check every patch
// replacement must pass before Replace() is called.
func RequireEvenLength(b []byte) error {
	if len(b)%2 != 0 {
		return curated.Errorf("bin: replacement length %d is not a multiple of 2", len(b))
	}
	return nil
}

// PCRelativeTarget computes the byte offset targeted by a PC-relative
// displacement, given the offset of the instruction that carries it and a
// signed displacement already scaled to bytes. The architectural PC is
// taken as instrOffset+4 whatever the instruction's length.
func PCRelativeTarget(instrOffset int, disp int) int {
	return instrOffset + 4 + disp
}

// AlignedLiteralAddress computes the word-aligned literal pool address
// referenced by a Thumb "LDR Rd, [PC, #imm]" encoding: the instruction's own
// PC (instrOffset+4) rounded down to a 4-byte boundary, plus imm.
func AlignedLiteralAddress(instrOffset int, imm int) int {
	pc := instrOffset + 4
	return (pc &^ 3) + imm
}

// ReadLE32 reads a little-endian uint32 at offset. It is the caller's
// responsibility to ensure offset+4 <= len(buf).
func ReadLE32(buf []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}

// WriteLE32 writes v as a little-endian uint32 at offset.
func WriteLE32(buf []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], v)
}

// ReadLE16 reads a little-endian uint16 at offset.
func ReadLE16(buf []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(buf[offset : offset+2])
}

// WriteLE16 writes v as a little-endian uint16 at offset.
func WriteLE16(buf []byte, offset int, v uint16) {
	binary.LittleEndian.PutUint16(buf[offset:offset+2], v)
}
