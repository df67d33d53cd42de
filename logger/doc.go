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

// Package logger implements a small ring-buffered log, used throughout this
// module instead of the standard library's log package so that the boot
// orchestrator and patch driver can Tail() recent entries for a CLI to
// display (green "ok" / red "failed" decoration is applied by the caller;
// this package only accumulates formatted "tag: detail" lines).
package logger
