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

// Package boot drives the host-side state machine described in §4.7: device
// mode (BootROM, Preloader, DA1, DA2) crossed with session mode (Raw, LK,
// REPL), device discovery and the brom/preloader handshake, crash-to-BootROM,
// and the per-mode Boot/DA flows that stage payloads, patch them in memory
// and hand off control. Every step that can fail reports a single error up
// to its caller (typically cli); there is no automatic retry beyond the
// transport's own, per §4.7's failure semantics.
package boot
