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

// Package transport is the out-of-scope collaborator named in §1: byte
// transport and serial-port/USB discovery are explicitly not part of the
// core, so this package is kept to the thin interfaces boot.Orchestrator
// drives plus one concrete implementation of each (gousb for enumeration,
// go.bug.st/serial for the byte channel itself) so a non-test build has
// something real to call. None of the matching/patching/protocol logic
// anywhere else in this module knows these concrete types exist.
package transport
