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

// Package arm is a disassembler/assembler façade over two CPU modes: fixed
// 4-byte ARM and variable 2/4-byte Thumb-2. It does not execute anything; it
// only translates between machine code and (mnemonic, operand) records, in
// both directions.
//
// Disassemble and DisassembleN decode a byte stream greedily, instruction by
// instruction, skipping a single byte and resuming whenever the bytes at the
// current offset don't match any recognised encoding - the patch catalog
// and the analyzer both expect to run this over buffers that mix code with
// data. Assemble goes the other way, turning one semicolon-free line of
// textual assembly into its machine encoding; it supports the pragmatic
// subset of mnemonics the patch catalog and interceptor actually emit,
// not the full ARM/Thumb-2 instruction set.
package arm
