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

// Package modalflag implements a flag.FlagSet wrapper that additionally
// supports a single level of named sub-modes (eg. "boot" and "da"), each of
// which may go on to parse its own flags from the remaining arguments. The
// CLI surface described by the specification (the "boot" and "da"
// subcommands) is built on top of this package; modalflag itself knows
// nothing about those commands.
package modalflag
