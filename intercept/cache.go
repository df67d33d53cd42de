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

import "github.com/mtkboot/core/logger"

// CacheMaintainer is the hard coherency contract every code-modifying
// sequence in this package must satisfy: a data-cache clean to the point of
// unification for the affected range, an instruction-cache and
// branch-predictor invalidate, and a DSB/ISB barrier. Omitting any step
// corrupts execution on real hardware, so Install and Revert always call
// all four in order.
type CacheMaintainer interface {
	CleanDataCache(addr uint32, length int)
	InvalidateInstructionCache(addr uint32, length int)
	InvalidateBranchPredictor()
	Barrier()
}

// maintain runs the full coherency sequence for the byte range
// [addr, addr+length) against m.
func maintain(m CacheMaintainer, addr uint32, length int) {
	m.CleanDataCache(addr, length)
	m.InvalidateInstructionCache(addr, length)
	m.InvalidateBranchPredictor()
	m.Barrier()
}

// LoggingCacheMaintainer records the coherency sequence to a logger instead
// of touching real hardware - the host-side stand-in this toolkit needs
// since it has no on-device cache control instructions to issue.
type LoggingCacheMaintainer struct {
	Log *logger.Log
}

func (m LoggingCacheMaintainer) CleanDataCache(addr uint32, length int) {
	if m.Log != nil {
		m.Log.Logf(logger.Allow, "intercept", "dcache clean to PoU: %#x+%d", addr, length)
	}
}

func (m LoggingCacheMaintainer) InvalidateInstructionCache(addr uint32, length int) {
	if m.Log != nil {
		m.Log.Logf(logger.Allow, "intercept", "icache invalidate: %#x+%d", addr, length)
	}
}

func (m LoggingCacheMaintainer) InvalidateBranchPredictor() {
	if m.Log != nil {
		m.Log.Log(logger.Allow, "intercept", "branch predictor invalidate")
	}
}

func (m LoggingCacheMaintainer) Barrier() {
	if m.Log != nil {
		m.Log.Log(logger.Allow, "intercept", "DSB; ISB")
	}
}
