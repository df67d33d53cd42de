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

import "errors"

// RingWriter keeps only the most recently written bytes, up to a fixed
// capacity, discarding the oldest bytes as new ones arrive.
type RingWriter struct {
	buf   []byte
	limit int
}

// NewRingWriter creates a RingWriter with the given byte capacity.
func NewRingWriter(limit int) (*RingWriter, error) {
	if limit <= 0 {
		return nil, errors.New("ring writer: limit must be greater than zero")
	}
	return &RingWriter{limit: limit}, nil
}

// Write implements io.Writer.
func (r *RingWriter) Write(p []byte) (int, error) {
	r.buf = append(r.buf, p...)
	if len(r.buf) > r.limit {
		r.buf = r.buf[len(r.buf)-r.limit:]
	}
	return len(p), nil
}

// String returns the currently retained content.
func (r *RingWriter) String() string {
	return string(r.buf)
}

// Reset empties the writer's buffer.
func (r *RingWriter) Reset() {
	r.buf = r.buf[:0]
}
