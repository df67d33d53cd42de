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

package legacy

import (
	"io"

	"github.com/mtkboot/core/curated"
)

// DA2ChunkSize is the fixed 4 KiB chunk size the DA2 upload handshake
// advertises to DA1 (§6).
const DA2ChunkSize = 0x1000

// da2Started is the single byte DA1 echoes after every chunk, and once more
// once DA2 itself has started running.
const da2Started byte = 0x5a

// ErrDA2NotStarted is reported - via curated.Errorf - when DA1 does not
// confirm a chunk, or the final "DA2 started" signal, with da2Started.
const ErrDA2NotStarted = "legacy: da2 upload not acknowledged (got %#x, want %#x)"

func expectDA2Ack(rw io.ReadWriter) error {
	got, err := readByte(rw)
	if err != nil {
		return err
	}
	if got != da2Started {
		return curated.Errorf(ErrDA2NotStarted, got, da2Started)
	}
	return nil
}

// UploadDA2 drives the DA2 upload handshake (§6): after JumpDA has
// transferred control into DA1, the host announces base/length/chunk_size,
// waits for an acknowledgement, then streams data in DA2ChunkSize chunks -
// the last one short if length is not a multiple of the chunk size -
// acknowledged individually, followed by one final acknowledgement that DA2
// itself has started.
func UploadDA2(rw io.ReadWriter, base uint32, data []byte) error {
	if err := writeU32(rw, base); err != nil {
		return err
	}
	if err := writeU32(rw, uint32(len(data))); err != nil {
		return err
	}
	if err := writeU32(rw, DA2ChunkSize); err != nil {
		return err
	}
	if err := expectDA2Ack(rw); err != nil {
		return err
	}

	for off := 0; off < len(data); off += DA2ChunkSize {
		end := off + DA2ChunkSize
		if end > len(data) {
			end = len(data)
		}
		if _, err := rw.Write(data[off:end]); err != nil {
			return curated.Errorf(ErrTransportIO, "write da2 chunk")
		}
		if err := expectDA2Ack(rw); err != nil {
			return err
		}
	}

	return expectDA2Ack(rw)
}
