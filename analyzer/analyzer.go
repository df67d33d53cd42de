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

import "github.com/mtkboot/core/arm"

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is. ErrStringReferenceNotFound is the ordinary "not found"
// outcome of a string search; every other one indicates a bug - either in
// the decoder feeding Code, or in the caller's instruction index.
const (
	ErrStringReferenceNotFound = "analyzer: no reference to %q found"
	ErrMapOffsetToIndex        = "analyzer: byte offset %#x does not land on a decoded instruction"
	ErrInvalidBlockIndex       = "analyzer: instruction index %d is out of range"
	ErrOverrun                 = "analyzer: control escaped the function at instruction index %d"
	ErrPCOverflow              = "analyzer: instruction index %d overflowed the decoded instruction stream"
)

// Analyzer holds everything a string-reference and control-flow recovery
// pass needs: the raw bytes, the runtime address those bytes are mapped at,
// and the Thumb-2 instruction stream decoded from them once, up front.
type Analyzer struct {
	Bytes []byte
	Base  uint32
	Code  []arm.Instruction
}

// New decodes data as a Thumb-2 instruction stream and returns an Analyzer
// ready for FindStringReference and RecoverFunction.
func New(data []byte, base uint32) Analyzer {
	return Analyzer{
		Bytes: data,
		Base:  base,
		Code:  arm.Disassemble(data, arm.Thumb2),
	}
}

// mapOffsetToIndex finds the Code[] index of the instruction starting at
// the given byte offset.
func (a *Analyzer) mapOffsetToIndex(offset int) (int, bool) {
	for idx, instr := range a.Code {
		if int(instr.Offset) == offset {
			return idx, true
		}
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
