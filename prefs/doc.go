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

// Package prefs implements a tiny typed key/value preference store,
// persisted to a flat "key :: value" text file. It backs the small set of
// operator-tunable defaults this module needs (default baud rate, default
// per-SoC staging addresses, default exploit selection) that the CLI surface
// exposes as flags but which still want a persistent fallback.
package prefs
