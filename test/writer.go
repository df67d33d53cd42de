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

package test

import "strings"

// Writer is a minimal io.Writer implementation for comparing accumulated
// output against an expected string.
type Writer struct {
	buf strings.Builder
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Compare returns true if the accumulated output equals s.
func (w *Writer) Compare(s string) bool {
	return w.buf.String() == s
}

// Clear resets the accumulated output.
func (w *Writer) Clear() {
	w.buf.Reset()
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return w.buf.String()
}
