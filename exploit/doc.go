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

// Package exploit adapts a parsed DA entry and the device's DA1 setup echo
// into a small staged payload that, once uploaded and jumped to, leaves the
// signature/hash check the vendor DA1 would otherwise have enforced
// bypassed (§2, §4.7). Each named recipe is a self-contained Recipe value;
// Catalog resolves CLI-facing names ("croissant", "croissant-2", "pumpkin")
// to the Recipe that implements them.
//
// The recipes here model the shape of such an adapter - a staging address,
// a small stub built from the same bin/legacy primitives the rest of the
// core uses, and a status echo - without reproducing any real DA's
// signature-check internals.
package exploit
