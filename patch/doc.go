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

// Package patch is the assembler/disassembler-backed pattern-and-replace
// engine that edits preloader and DA images in place. A Patch is a closed
// tagged-sum value, not an interface hierarchy: every patch carries the
// same four operations (search, offset, replacement, apply) and only ever
// borrows the arm package's assembler/disassembler, never owning it.
//
// A Catalog is a named registry of patches; ApplyAll walks the catalog and
// reports success or failure per patch without rolling anything back - a
// failed patch is logged and the next one is tried regardless.
package patch
