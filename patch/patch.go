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

import (
	"strings"

	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/match"
)

// MatchMode selects how a Patch locates its target site.
type MatchMode int

const (
	// LiteralAsm assembles Pattern verbatim and searches for the exact
	// byte sequence.
	LiteralAsm MatchMode = iota
	// FuzzyInstruction parses Pattern as a match.Pattern template list
	// and runs it over a Thumb-2 disassembly. Unsupported in ARM mode.
	FuzzyInstruction
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrPatternNotFound      = "patch: %s: pattern not found"
	ErrFuzzyRequiresThumb2  = "patch: %s: fuzzy matching mode requires Thumb-2"
	ErrReplacementNotEven   = "patch: %s: replacement length is odd"
	ErrAssemblingLiteral    = "patch: %s: failed to assemble literal pattern: %v"
)

// OffsetFunc derives the exact byte position a patch should overwrite,
// typically by arithmetic on the matched range.
type OffsetFunc func(buf arm.CodeBuffer, start, end uint32) (uint32, error)

// ReplacementFunc synthesizes the bytes a patch writes at its offset,
// sometimes borrowing an operand verbatim from an instruction in the
// matched region.
type ReplacementFunc func(buf arm.CodeBuffer, start, end uint32) ([]byte, error)

// Patch is one named entry in the catalog: a search strategy plus the two
// functions that turn a successful match into a byte-level edit.
type Patch struct {
	Name        string
	Pattern     string
	MatchMode   MatchMode
	CPUMode     arm.Mode
	OffsetFrom  OffsetFunc
	Replacement ReplacementFunc
}

// Search locates the patch's target site in buf, returning the matched
// byte range [start, end).
func (p Patch) Search(buf arm.CodeBuffer) (start, end uint32, err error) {
	switch p.MatchMode {
	case LiteralAsm:
		return p.searchLiteral(buf)
	case FuzzyInstruction:
		return p.searchFuzzy(buf)
	default:
		return 0, 0, curated.Errorf(ErrPatternNotFound, p.Name)
	}
}

func (p Patch) searchLiteral(buf arm.CodeBuffer) (uint32, uint32, error) {
	var assembled []byte
	for _, line := range strings.Split(p.Pattern, ";") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b, err := arm.Assemble(line, p.CPUMode)
		if err != nil {
			return 0, 0, curated.Errorf(ErrAssemblingLiteral, p.Name, err)
		}
		assembled = append(assembled, b...)
	}

	idx := bin.Search(buf.Bytes, assembled, 0)
	if idx == bin.NotFound {
		return 0, 0, curated.Errorf(ErrPatternNotFound, p.Name)
	}
	return uint32(idx), uint32(idx + len(assembled)), nil
}

func (p Patch) searchFuzzy(buf arm.CodeBuffer) (uint32, uint32, error) {
	if p.CPUMode != arm.Thumb2 {
		return 0, 0, curated.Errorf(ErrFuzzyRequiresThumb2, p.Name)
	}
	instrs := arm.Disassemble(buf.Bytes, arm.Thumb2)
	pat := match.Parse(p.Pattern)
	start, end, ok := pat.FindRange(instrs)
	if !ok {
		return 0, 0, curated.Errorf(ErrPatternNotFound, p.Name)
	}
	return start, end, nil
}

// Apply runs Search, Offset, Replacement and writes the result into buf in
// place. The write never changes len(buf.Bytes).
func (p Patch) Apply(buf arm.CodeBuffer) error {
	start, end, err := p.Search(buf)
	if err != nil {
		return err
	}

	offset, err := p.OffsetFrom(buf, start, end)
	if err != nil {
		return err
	}

	replacement, err := p.Replacement(buf, start, end)
	if err != nil {
		return err
	}

	if err := bin.RequireEvenLength(replacement); err != nil {
		return curated.Errorf(ErrReplacementNotEven, p.Name)
	}

	return bin.Replace(buf.Bytes, int(offset), replacement)
}

// MatchStart is a convenience OffsetFunc: overwrite begins at the start of
// the match.
func MatchStart(_ arm.CodeBuffer, start, _ uint32) (uint32, error) {
	return start, nil
}

// MatchEnd is a convenience OffsetFunc: overwrite begins at the end of the
// match.
func MatchEnd(_ arm.CodeBuffer, _, end uint32) (uint32, error) {
	return end, nil
}
