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

package exploit

import (
	"encoding/binary"
	"io"

	"github.com/mtkboot/core/curated"
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is. Distinct from legacy's own ErrInvalidEchoData/ErrInvalidStatus
// since a recipe's status handshake is exploit-specific, not the vendor
// wire protocol's (§6).
const (
	ErrInvalidEchoData = "exploit: echoed value %#x does not match sent value %#x"
	ErrInvalidStatus   = "exploit: status %#x, expected 0"
	ErrTransportIO     = "exploit: transport error during %s"
)

func writeU32(rw io.ReadWriter, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	if _, err := rw.Write(b[:]); err != nil {
		return curated.Errorf(ErrTransportIO, "write u32")
	}
	return nil
}

func readU32(rw io.ReadWriter) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(rw, b[:]); err != nil {
		return 0, curated.Errorf(ErrTransportIO, "read u32")
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func echoU32(rw io.ReadWriter, v uint32) error {
	if err := writeU32(rw, v); err != nil {
		return err
	}
	got, err := readU32(rw)
	if err != nil {
		return err
	}
	if got != v {
		return curated.Errorf(ErrInvalidEchoData, got, v)
	}
	return nil
}

// expectStatus reads a u32 status word and requires it to be zero.
func expectStatus(rw io.ReadWriter) error {
	status, err := readU32(rw)
	if err != nil {
		return err
	}
	if status != 0 {
		return curated.Errorf(ErrInvalidStatus, status)
	}
	return nil
}
