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

// decodeAt dispatches to the correct decoder for mode, trying the 32-bit
// Thumb-2 encoding before the 16-bit one (both share the same prefix bits,
// but only decodeThumb32 consumes them).
func decodeAt(data []byte, offset int, mode Mode) (Instruction, bool) {
	switch mode {
	case Thumb2:
		if instr, ok := decodeThumb32(data, offset); ok {
			return instr, ok
		}
		return decodeThumb16(data, offset)
	default:
		return decodeARM32(data, offset)
	}
}

// Decode decodes a single instruction at data[offset:] without the greedy
// byte-skipping Disassemble uses - callers walking a known instruction
// stream in strict order (the interceptor relocating a prologue, chiefly)
// need a hard failure the moment a position doesn't decode, not the next
// recognisable instruction found further along.
func Decode(data []byte, offset int, mode Mode) (Instruction, bool) {
	return decodeAt(data, offset, mode)
}

// Disassemble decodes data greedily from offset 0 until input is exhausted.
// Whenever the bytes at the current offset don't match a recognised
// encoding, a single byte is skipped and decoding resumes - callers expect
// to run this over buffers that interleave code with data or literal
// pools, so a single bad instruction must never abort the whole scan.
func Disassemble(data []byte, mode Mode) []Instruction {
	var out []Instruction
	offset := 0
	for offset < len(data) {
		instr, ok := decodeAt(data, offset, mode)
		if !ok {
			offset++
			continue
		}
		out = append(out, instr)
		offset += int(instr.Length)
	}
	return out
}

// DisassembleN is Disassemble bounded to at most n decoded instructions,
// for callers - the interceptor sizing a trampoline, mostly - that only
// need to know how much of the stream the next few instructions occupy.
func DisassembleN(data []byte, mode Mode, n int) []Instruction {
	var out []Instruction
	offset := 0
	for offset < len(data) && len(out) < n {
		instr, ok := decodeAt(data, offset, mode)
		if !ok {
			offset++
			continue
		}
		out = append(out, instr)
		offset += int(instr.Length)
	}
	return out
}
