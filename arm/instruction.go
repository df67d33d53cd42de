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

package arm

import "fmt"

// Mode selects which CPU mode a disassembly or assembly operation targets.
type Mode int

const (
	// ARM is the fixed 4-byte-per-instruction mode.
	ARM Mode = iota
	// Thumb2 is the variable 2-or-4-byte-per-instruction mode.
	Thumb2
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ARM:
		return "arm"
	case Thumb2:
		return "thumb2"
	default:
		return "unknown"
	}
}

// Instruction is a single decoded executable unit. It is immutable once
// returned by Disassemble/DisassembleN; it does not outlive the CodeBuffer
// it was decoded from in any meaningful sense (the Offset field is only
// valid relative to that buffer).
type Instruction struct {
	Mnemonic string
	Operands string
	Offset   uint32
	Length   uint8
	Mode     Mode
}

// String renders the instruction the way it would appear in a disassembly
// listing: "<offset>: <mnemonic> <operands>".
func (i Instruction) String() string {
	if i.Operands == "" {
		return fmt.Sprintf("%08x: %s", i.Offset, i.Mnemonic)
	}
	return fmt.Sprintf("%08x: %s %s", i.Offset, i.Mnemonic, i.Operands)
}

// End returns the offset one past the last byte of the instruction.
func (i Instruction) End() uint32 {
	return i.Offset + uint32(i.Length)
}

// CodeBuffer is an ordered, contiguous byte sequence together with the
// runtime address its first byte is loaded at. Bytes is a borrow; callers
// that need the patcher to mutate it in place pass the same slice back to
// it rather than a copy.
type CodeBuffer struct {
	Bytes []byte
	Base  uint32
}

// Addr maps a byte offset within Bytes to a runtime address.
func (c CodeBuffer) Addr(offset int) uint32 {
	return c.Base + uint32(offset)
}

// Offset maps a runtime address back to a byte offset within Bytes. The
// second result is false if addr lies outside the buffer.
func (c CodeBuffer) Offset(addr uint32) (int, bool) {
	if addr < c.Base {
		return 0, false
	}
	off := int(addr - c.Base)
	if off >= len(c.Bytes) {
		return 0, false
	}
	return off, true
}
