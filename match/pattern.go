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

package match

import (
	"regexp"
	"strings"

	"github.com/mtkboot/core/arm"
)

// template is one element of a parsed Pattern: a mnemonic to compare
// against an instruction's Mnemonic, and a tokenized operand template to
// compare against its Operands. any is set for the "??" wildcard template,
// which matches a single instruction regardless of its content.
type template struct {
	any      bool
	mnemonic string
	operands []string
}

// Pattern is a parsed, reusable fuzzy instruction template list.
type Pattern struct {
	templates []template
}

var tokenExpr = regexp.MustCompile(`[A-Za-z0-9#?]+`)

func tokenize(s string) []string {
	return tokenExpr.FindAllString(s, -1)
}

var registerToken = regexp.MustCompile(`(?i)^(r\d{1,2}|sb|sp|lr|pc|fp)$`)

// Parse parses a semicolon-separated list of instruction templates into a
// reusable Pattern. Each template is a mnemonic followed by an operand
// string; within either, "?" matches anything, "r?" matches any register
// token, "#?" matches any immediate token, and the whole-template wildcard
// "??" matches any single instruction.
func Parse(pattern string) Pattern {
	var p Pattern
	for _, raw := range strings.Split(pattern, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if raw == "??" {
			p.templates = append(p.templates, template{any: true})
			continue
		}

		fields := strings.SplitN(raw, " ", 2)
		t := template{mnemonic: strings.TrimSpace(fields[0])}
		if len(fields) == 2 {
			t.operands = tokenize(fields[1])
		}
		p.templates = append(p.templates, t)
	}
	return p
}

// Len returns the number of templates in the pattern - the sliding window
// width Find uses.
func (p Pattern) Len() int {
	return len(p.templates)
}

func matchToken(want, got string) bool {
	switch {
	case want == "?":
		return true
	case strings.EqualFold(want, "r?"):
		return registerToken.MatchString(got)
	case want == "#?":
		return strings.HasPrefix(got, "#")
	default:
		return strings.EqualFold(want, got)
	}
}

func (t template) matches(instr arm.Instruction) bool {
	if t.any {
		return true
	}
	if !strings.EqualFold(t.mnemonic, "?") && !strings.EqualFold(t.mnemonic, instr.Mnemonic) {
		return false
	}
	if t.operands == nil {
		return instr.Operands == ""
	}
	got := tokenize(instr.Operands)
	if len(got) != len(t.operands) {
		return false
	}
	for i, want := range t.operands {
		if !matchToken(want, got[i]) {
			return false
		}
	}
	return true
}

// Find slides a window of length p.Len() across instrs looking for the
// first position where every instruction matches its corresponding
// template. It returns the first and last matched instruction indices
// (inclusive) and true on success.
func (p Pattern) Find(instrs []arm.Instruction) (first, last int, ok bool) {
	n := p.Len()
	if n == 0 || n > len(instrs) {
		return 0, 0, false
	}

	for start := 0; start+n <= len(instrs); start++ {
		matched := true
		for i := 0; i < n; i++ {
			if !p.templates[i].matches(instrs[start+i]) {
				matched = false
				break
			}
		}
		if matched {
			return start, start + n - 1, true
		}
	}
	return 0, 0, false
}

// FindRange is Find expressed as a byte range, [first-instruction-start,
// last-instruction-end), over the owning buffer - the form the patch
// catalog actually wants.
func (p Pattern) FindRange(instrs []arm.Instruction) (start, end uint32, ok bool) {
	first, last, ok := p.Find(instrs)
	if !ok {
		return 0, 0, false
	}
	return instrs[first].Offset, instrs[last].End(), true
}
