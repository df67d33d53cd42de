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

// Package legacy implements the byte-level vendor wire protocol used
// before the framed RPC payload is running: SendDA, JumpDA, Read32,
// Write32, GetHwCode, GetTargetConfig, and the DA1 setup handshake. Every
// command is a straight-line sequence of writes and reads over a
// full-duplex byte channel - there is no framing, no tagged dispatch, just
// a fixed choreography per command, each step validated as it happens.
package legacy
