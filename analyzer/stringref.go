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

package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/curated"
)

// StringRefOptions tunes the tolerance FindStringReference allows when
// matching a direct ADR load against the string's byte offset. The DA and
// preloader images this package was built against don't all agree on
// exactly how many bytes an ADR's rounding can be off by, so the tolerance
// is a documented, adjustable policy rather than a hardcoded guess.
type StringRefOptions struct {
	// AdrSlack is the maximum absolute difference, in bytes, allowed
	// between an ADR's computed target and the string's actual offset.
	AdrSlack int
}

// DefaultStringRefOptions returns the spec's own tolerance: a ±2 byte
// slack on direct ADR matches.
func DefaultStringRefOptions() StringRefOptions {
	return StringRefOptions{AdrSlack: 2}
}

var reTrailingImm = regexp.MustCompile(`#(-?\d+)\]?$`)

func trailingImmediate(operands string) (int, bool) {
	m := reTrailingImm.FindStringSubmatch(operands)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// FindStringReference locates query's bytes in the analyzer's buffer, then
// finds the instruction that loads its address - either directly via ADR,
// or indirectly through a literal-pool LDR whose pool slot holds a pointer
// into the string. Direct ADR references are preferred, since they're
// unambiguous; the literal-pool scan only runs if no ADR matched.
func (a *Analyzer) FindStringReference(query string, opts StringRefOptions) (int, error) {
	s := bin.Search(a.Bytes, []byte(query), 0)
	if s == bin.NotFound {
		return 0, curated.Errorf(ErrStringReferenceNotFound, query)
	}

	lo := s - 0x7ff
	hi := s + 0x7ff

	for idx, instr := range a.Code {
		if instr.Mnemonic != "ADR" {
			continue
		}
		if int(instr.Offset) < lo || int(instr.Offset) >= hi {
			continue
		}
		imm, ok := trailingImmediate(instr.Operands)
		if !ok {
			continue
		}
		target := bin.PCRelativeTarget(int(instr.Offset), imm)
		if abs(target-s) <= opts.AdrSlack {
			return idx, nil
		}
	}

	for idx, instr := range a.Code {
		if instr.Mnemonic != "LDR" || !strings.Contains(instr.Operands, "[pc,") {
			continue
		}
		imm, ok := trailingImmediate(instr.Operands)
		if !ok {
			continue
		}
		litAddr := bin.AlignedLiteralAddress(int(instr.Offset), imm)
		if litAddr < 0 || litAddr+4 > len(a.Bytes) {
			continue
		}
		if bin.ReadLE32(a.Bytes, litAddr) == uint32(s)+a.Base {
			return idx, nil
		}
	}

	return 0, curated.Errorf(ErrStringReferenceNotFound, query)
}
