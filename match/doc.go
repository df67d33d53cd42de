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

// Package match implements the fuzzy instruction pattern matcher the patch
// catalog uses to locate a target site in a disassembly without depending
// on its exact operands. A Pattern is parsed once from a semicolon
// separated list of instruction templates ("mov r?, pc; bl #?; ldr r?,
// [pc, #?]") and can then be matched repeatedly against any arm.Instruction
// stream with Pattern.Find.
package match
