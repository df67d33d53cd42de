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

package protocol

import (
	"encoding/binary"
	"io"

	"github.com/mtkboot/core/curated"
)

// ErrMalformedFrame is reported - via curated.Is - when a frame's declared
// body length cannot possibly be honoured (the peer read fewer bytes than
// promised before the connection closed, or the stream is obviously not
// framed the way this protocol expects).
const ErrMalformedFrame = "protocol: malformed frame"

// maxFrameBody bounds a single frame's body so a corrupt or hostile length
// prefix can never make ReadFrame try to allocate an unreasonable buffer.
const maxFrameBody = 1 << 20

// WriteFrame writes body to w preceded by its length as a big-endian u32,
// per the wire format in use once the RPC payload is live.
func WriteFrame(w io.Writer, body []byte) error {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(body)))
	if _, err := w.Write(length[:]); err != nil {
		return curated.Errorf(ErrMalformedFrame)
	}
	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		return curated.Errorf(ErrMalformedFrame)
	}
	return nil
}

// ReadFrame reads one frame from r: a big-endian u32 length followed by
// exactly that many body bytes. A peer must never attempt to deserialize
// before the full body has arrived, so this always reads to completion (or
// to an error) before returning.
func ReadFrame(r io.Reader) ([]byte, error) {
	var length [4]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		return nil, curated.Errorf(ErrMalformedFrame)
	}
	n := binary.BigEndian.Uint32(length[:])
	if n > maxFrameBody {
		return nil, curated.Errorf(ErrMalformedFrame)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, curated.Errorf(ErrMalformedFrame)
	}
	return body, nil
}
