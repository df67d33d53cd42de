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

// Package analyzer recovers functions and basic blocks in a disassembled
// Thumb-2 image by working backward from a string literal the running code
// must reference somehow - the "landmark" an unsymbolized vendor blob still
// gives up for free.
//
// An Analyzer owns a byte buffer, the runtime base address that buffer is
// mapped at, and the Thumb-2 instruction stream decoded from it once up
// front. FindStringReference locates the instruction that loads the address
// of a given string (directly via ADR, or indirectly through a literal-pool
// LDR); RecoverFunction then walks outward from any instruction inside a
// function to recover its prologue and its basic-block structure.
package analyzer
