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

package patch

import "github.com/mtkboot/core/arm"

// NewDACatalog returns the catalog of named patches this toolkit applies
// to a download agent image (DA1 and DA2) before it is uploaded.
func NewDACatalog() *Catalog {
	c := NewCatalog()

	// UART port: the landmark "load the 921600 baud constant, then move it
	// into the port-select register" pair is matched literally; the actual
	// patch target is the port-select load six bytes ahead of that pair,
	// not the pair itself.
	c.Add(Patch{
		Name:      "UART port",
		Pattern:   "movw r2, #921600; mov r1, r4",
		MatchMode: LiteralAsm,
		CPUMode:   arm.Thumb2,
		OffsetFrom: func(_ arm.CodeBuffer, start, _ uint32) (uint32, error) {
			return start - 6, nil
		},
		Replacement: func(buf arm.CodeBuffer, start, end uint32) ([]byte, error) {
			return arm.Assemble("movw r0, #0", arm.Thumb2)
		},
	})

	// Hash check: DA1's equivalent of the preloader's "DA hash" guard is
	// forced to always compare equal.
	c.Add(Patch{
		Name:       "Hash check",
		Pattern:    "cmp r0, r1; bne #?",
		MatchMode:  FuzzyInstruction,
		CPUMode:    arm.Thumb2,
		OffsetFrom: MatchStart,
		Replacement: func(buf arm.CodeBuffer, start, end uint32) ([]byte, error) {
			return arm.Assemble("cmp r1, r1", arm.Thumb2)
		},
	})

	return c
}
