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

// Package arena models a flat, address-mapped region of device memory as a
// byte slice plus a bump allocator. It stands in for the on-device SRAM a
// real interceptor would carve trampoline buffers out of, host-side, so the
// rest of this toolkit's device-side story - the interceptor and the
// analyzer - can be exercised and tested without real hardware.
package arena
