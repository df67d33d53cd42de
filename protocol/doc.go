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

// Package protocol implements the framed request/response RPC that runs
// once the on-device payload is live: a big-endian length-prefixed frame
// carrying a tag-then-fields encoded Message (host to device) or Response
// (device to host), plus the chunked upload/download helpers and the
// connection handshake built on top of it.
package protocol
