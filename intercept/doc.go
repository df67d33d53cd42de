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

// Package intercept installs trampolines into a running Thumb-2 image: at a
// runtime address T, it diverts execution to a replacement function R while
// relocating T's displaced prologue into a trampoline so the original
// callee is still reachable.
//
// An interceptor operates on two arena.Arena regions: code, holding the
// function being hooked, and scratch, memory the trampoline buffers are
// carved from. Every write that touches executable bytes goes through a
// CacheMaintainer, modelling the clean-to-PoU/invalidate-icache/DSB/ISB
// sequence real hardware requires; this package only ever calls it, it
// never talks to hardware directly.
package intercept
