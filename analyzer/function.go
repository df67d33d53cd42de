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
	"sort"
	"strings"

	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/curated"
)

// BasicBlockRange is an inclusive [Start, End] range of instruction indices
// into the owning Analyzer's Code slice.
type BasicBlockRange struct {
	Start, End int
}

// Function is the result of a RecoverFunction call: the instruction index
// of its prologue, and its basic blocks in start-index order.
type Function struct {
	Start  int
	Blocks []BasicBlockRange
}

// TailCallHeuristic decides whether an unconditional branch to targetIndex,
// discovered while walking the function starting at functionStart, is a
// tail call into another function rather than a branch within the current
// one. RecoverFunction ends the current block without following the target
// when this returns true.
type TailCallHeuristic func(a *Analyzer, targetIndex, functionStart int) bool

// DefaultTailCallHeuristic treats an unconditional branch as a tail call if
// any of the five instructions starting at its target is a prologue
// belonging to some other function. It's the heuristic the spec itself
// documents as imperfect; callers that need something more rigorous can
// supply their own to RecoverFunction.
func DefaultTailCallHeuristic(a *Analyzer, targetIndex, functionStart int) bool {
	limit := targetIndex + 5
	if limit > len(a.Code) {
		limit = len(a.Code)
	}
	for idx := targetIndex; idx < limit; idx++ {
		if isPrologue(a.Code[idx]) && idx != functionStart {
			return true
		}
	}
	return false
}

func isPrologue(instr arm.Instruction) bool {
	return instr.Mnemonic == "PUSH" && strings.Contains(strings.ToLower(instr.Operands), "lr")
}

func isEpilogue(instr arm.Instruction) bool {
	if instr.Mnemonic == "POP" && strings.Contains(strings.ToLower(instr.Operands), "pc") {
		return true
	}
	return instr.Mnemonic == "BX" && strings.EqualFold(instr.Operands, "lr")
}

// branchInfo reports the PC-relative displacement and whether the branch is
// conditional (including CBZ/CBNZ), for the block-ending branch mnemonics
// RecoverFunction cares about. BL is deliberately excluded - it's a call,
// not a block-ending jump.
func branchInfo(instr arm.Instruction) (disp int, conditional, ok bool) {
	switch instr.Mnemonic {
	case "B":
		disp, ok = trailingImmediate(instr.Operands)
		return disp, false, ok
	case "CBZ", "CBNZ":
		disp, ok = trailingImmediate(instr.Operands)
		return disp, true, ok
	case "BX", "BLX", "BL":
		return 0, false, false
	}
	if strings.HasPrefix(instr.Mnemonic, "B") {
		disp, ok = trailingImmediate(instr.Operands)
		return disp, true, ok
	}
	return 0, false, false
}

func (a *Analyzer) findPrologue(i int) (int, error) {
	for idx := i; idx >= 0; idx-- {
		if isPrologue(a.Code[idx]) {
			return idx, nil
		}
	}
	return 0, curated.Errorf(ErrOverrun, i)
}

// RecoverFunction walks outward from instruction index i to recover the
// function it belongs to: its prologue (the nearest preceding
// "PUSH {..., LR, ...}") and its basic-block structure. tailCall selects
// the unconditional-branch tail-call heuristic; a nil value uses
// DefaultTailCallHeuristic.
func (a *Analyzer) RecoverFunction(i int, tailCall TailCallHeuristic) (Function, error) {
	if tailCall == nil {
		tailCall = DefaultTailCallHeuristic
	}
	if i < 0 || i >= len(a.Code) {
		return Function{}, curated.Errorf(ErrInvalidBlockIndex, i)
	}

	start, err := a.findPrologue(i)
	if err != nil {
		return Function{}, err
	}

	sentinel := len(a.Code)
	blocks := []BasicBlockRange{{Start: start, End: sentinel}}
	blockOf := map[int]int{start: 0}
	worklist := []int{start}

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		bi := blockOf[s]

		idx := s
		for {
			if idx < 0 || idx >= len(a.Code) {
				return Function{}, curated.Errorf(ErrPCOverflow, idx)
			}

			if other, known := blockOf[idx]; known && other != bi && idx != s {
				blocks[bi].End = idx - 1
				break
			}

			instr := a.Code[idx]

			if idx != start && isPrologue(instr) {
				return Function{}, curated.Errorf(ErrOverrun, idx)
			}

			if disp, conditional, ok := branchInfo(instr); ok {
				targetOffset := bin.PCRelativeTarget(int(instr.Offset), disp)
				targetIdx, ok := a.mapOffsetToIndex(targetOffset)
				if !ok {
					return Function{}, curated.Errorf(ErrMapOffsetToIndex, targetOffset)
				}

				tail := !conditional && tailCall(a, targetIdx, start)

				if !tail {
					if _, known := blockOf[targetIdx]; !known {
						blockOf[targetIdx] = len(blocks)
						blocks = append(blocks, BasicBlockRange{Start: targetIdx, End: sentinel})
						worklist = append(worklist, targetIdx)
					}
				}

				if conditional {
					next := idx + 1
					if _, known := blockOf[next]; !known {
						blockOf[next] = len(blocks)
						blocks = append(blocks, BasicBlockRange{Start: next, End: sentinel})
						worklist = append(worklist, next)
					}
				}

				for bj := range blocks {
					if bj != bi && blocks[bj].End == idx {
						blocks[bj].End = blocks[bi].Start
					}
				}

				blocks[bi].End = idx
				break
			}

			if isEpilogue(instr) {
				blocks[bi].End = idx
				break
			}

			idx++
		}
	}

	sort.Slice(blocks, func(x, y int) bool { return blocks[x].Start < blocks[y].Start })

	for _, b := range blocks {
		if b.End == sentinel {
			return Function{}, curated.Errorf(ErrInvalidBlockIndex, b.Start)
		}
	}

	return Function{Start: start, Blocks: blocks}, nil
}
