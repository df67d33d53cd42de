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

package intercept

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/device/arena"
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrUnsupportedMode    = "intercept: target %#x is not Thumb state"
	ErrTrampolineNotFound = "intercept: no trampoline installed for %#x"
)

// trampolineBufferSize is the worst-case scratch allocation every install
// carves out of the scratch arena, regardless of how much of it the
// relocated prologue and jumpout actually use.
const trampolineBufferSize = 64

// jumpoutHi, jumpoutLo encode "LDR.W PC, [PC, #0]" - a PC-relative load
// straight into the program counter, used both as the trampoline's return
// to the original function and as the hook planted at the call site.
const (
	jumpoutHi uint16 = 0xf8df
	jumpoutLo uint16 = 0xf000
)

func appendJumpout(code []byte, target uint32) []byte {
	var head [4]byte
	bin.WriteLE16(head[:], 0, jumpoutHi)
	bin.WriteLE16(head[:], 2, jumpoutLo)
	code = append(code, head[:]...)
	var addr [4]byte
	bin.WriteLE32(addr[:], 0, target)
	return append(code, addr[:]...)
}

// displacementSize reports how many bytes of original code an install at
// siteAddr (already masked to clear the Thumb bit) must displace: 10 bytes
// if the site needs a leading alignment NOP ahead of the 8-byte jumpout
// (true whenever it's 2-byte but not 4-byte aligned), otherwise 8.
func displacementSize(siteAddr uint32) int {
	if siteAddr%4 != 0 {
		return 10
	}
	return 8
}

// relocatePrologue decodes instructions starting at siteAddr in code,
// copying each into the trampoline - rewriting any 16-bit PC-relative LDR
// into a position-independent movw/movt pair - until at least n bytes of
// original code have been consumed. It returns the trampoline bytes and
// the number of original bytes actually consumed.
func relocatePrologue(code *arena.Arena, siteAddr uint32, n int) ([]byte, int, error) {
	region, err := code.ReadAt(siteAddr, n+8)
	if err != nil {
		region, err = code.ReadAt(siteAddr, n)
		if err != nil {
			return nil, 0, err
		}
	}

	var out []byte
	consumed := 0
	for consumed < n {
		in, ok := arm.Decode(region, consumed, arm.Thumb2)
		if !ok {
			return nil, 0, curated.Errorf(ErrTrampolineNotFound, siteAddr+uint32(consumed))
		}

		if in.Length == 2 && in.Mnemonic == "LDR" && strings.Contains(in.Operands, "[pc,") {
			imm, _ := trailingOperandImmediate(in.Operands)
			litAddr := uint32(bin.AlignedLiteralAddress(int(siteAddr)+consumed, imm))
			lit, err := code.ReadAt(litAddr, 4)
			if err != nil {
				return nil, 0, err
			}
			value := bin.ReadLE32(lit, 0)
			rd := destRegister(in.Operands)
			movw, err := arm.Assemble(fmt.Sprintf("movw %s, #%d", rd, value&0xffff), arm.Thumb2)
			if err != nil {
				return nil, 0, err
			}
			movt, err := arm.Assemble(fmt.Sprintf("movt %s, #%d", rd, (value>>16)&0xffff), arm.Thumb2)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, movw...)
			out = append(out, movt...)
		} else {
			out = append(out, region[consumed:consumed+int(in.Length)]...)
		}
		consumed += int(in.Length)
	}

	return out, consumed, nil
}

func destRegister(operands string) string {
	i := strings.IndexByte(operands, ',')
	if i < 0 {
		return "r0"
	}
	return strings.TrimSpace(operands[:i])
}

// Install diverts execution at T (which must have its Thumb bit set) to
// replacement R: it allocates a trampoline in scratch holding T's
// relocated prologue followed by a jumpout back to T+displacement, plants
// a jumpout to R at T itself, and records the pair in pool. Every write is
// followed by the full cache coherency sequence against cache.
func Install(code, scratch *arena.Arena, pool *Pool, cache CacheMaintainer, t, r uint32) error {
	if t&1 == 0 {
		return curated.Errorf(ErrUnsupportedMode, t)
	}
	tp := t &^ 1

	trampolineAddr, err := scratch.Alloc(trampolineBufferSize, 4)
	if err != nil {
		return err
	}

	n := displacementSize(tp)
	relocated, _, err := relocatePrologue(code, tp, n)
	if err != nil {
		return err
	}

	if len(relocated)%4 != 0 {
		nop, err := arm.Assemble("nop", arm.Thumb2)
		if err != nil {
			return err
		}
		relocated = append(relocated, nop...)
	}

	jumpback := (tp + uint32(n)) | 1
	relocated = appendJumpout(relocated, jumpback)

	if err := scratch.WriteAt(trampolineAddr, relocated); err != nil {
		return err
	}
	maintain(cache, trampolineAddr, len(relocated))

	var site []byte
	if tp%4 != 0 {
		nop, err := arm.Assemble("nop", arm.Thumb2)
		if err != nil {
			return err
		}
		site = append(site, nop...)
	}
	site = appendJumpout(site, r|1)
	if err := code.WriteAt(tp, site); err != nil {
		return err
	}
	maintain(cache, tp, len(site))

	pool.insert(tp|1, trampoline{addr: trampolineAddr | 1, jumpback: jumpback})

	return nil
}

// Revert undoes Install: it copies the trampoline's relocated prologue
// bytes back over the call site and forgets the pool entry. It fails with
// ErrTrampolineNotFound if T has no installed hook.
func Revert(code, scratch *arena.Arena, pool *Pool, cache CacheMaintainer, t uint32) error {
	tp := t &^ 1
	i, ok := pool.indexOf(tp | 1)
	if !ok {
		return curated.Errorf(ErrTrampolineNotFound, t)
	}

	n := displacementSize(tp)
	rec := pool.trampolines[i]
	original, err := scratch.ReadAt(rec.addr&^1, n)
	if err != nil {
		return err
	}
	if err := code.WriteAt(tp, original); err != nil {
		return err
	}
	maintain(cache, tp, n)

	pool.remove(i)
	return nil
}

// Original returns the Thumb-tagged trampoline address for T, so a
// replacement function can invoke the function it replaced.
func Original(pool *Pool, t uint32) (uint32, error) {
	tp := t &^ 1
	i, ok := pool.indexOf(tp | 1)
	if !ok {
		return 0, curated.Errorf(ErrTrampolineNotFound, t)
	}
	return pool.trampolines[i].addr, nil
}

var reTrailingImm = regexp.MustCompile(`#(-?\d+)\]?$`)

func trailingOperandImmediate(operands string) (int, bool) {
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
