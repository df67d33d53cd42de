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

package protocol

// Fixed per-frame overhead of the largest Message and Response variant:
// Jump (tag + addr + flags + r0 + r1) and Nack (tag + reason + which)
// respectively. K is the protocol's recommended bulk transfer chunk size,
// leaving this much headroom in a 2048-byte frame budget regardless of
// which message shape a given transfer actually uses.
const (
	messageFixedOverhead  = 1 + 4 + 1 + 4 + 4
	responseFixedOverhead = 1 + 1 + 4
	frameBudget           = 2048
)

// K is the chunk size used by Upload/Download: 2048 minus the larger of
// the two fixed overheads above. Jump's overhead is the larger of the two
// in this codec, so it alone determines K, but the comparison is kept
// explicit so a future wider Message or Response shape can't silently
// invalidate the constant.
var K = func() int {
	overhead := messageFixedOverhead
	if responseFixedOverhead > overhead {
		overhead = responseFixedOverhead
	}
	return frameBudget - overhead
}()
