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

// trampoline is the record kept for one installed hook: the trampoline's
// own address (Thumb-tagged) and the address execution resumes at once the
// relocated prologue has run (also Thumb-tagged).
type trampoline struct {
	addr     uint32
	jumpback uint32
}

// Pool tracks every installed hook as two parallel ordered vectors -
// original call-site addresses and their trampoline records - mirroring
// the spec's own description of the bookkeeping. A handful of installed
// hooks is the expected scale, so linear lookup is simpler than a map and
// just as fast in practice.
type Pool struct {
	originalAddresses []uint32
	trampolines       []trampoline
}

// NewPool returns an empty interceptor pool.
func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) indexOf(site uint32) (int, bool) {
	for i, a := range p.originalAddresses {
		if a == site {
			return i, true
		}
	}
	return 0, false
}

func (p *Pool) insert(site uint32, t trampoline) {
	p.originalAddresses = append(p.originalAddresses, site)
	p.trampolines = append(p.trampolines, t)
}

func (p *Pool) remove(i int) {
	p.originalAddresses = append(p.originalAddresses[:i], p.originalAddresses[i+1:]...)
	p.trampolines = append(p.trampolines[:i], p.trampolines[i+1:]...)
}

// Len reports how many hooks are currently installed.
func (p *Pool) Len() int {
	return len(p.originalAddresses)
}
