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
	"encoding/binary"
	"io"

	"github.com/mtkboot/core/curated"
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrInvalidEchoData = "legacy: echoed value %#x does not match sent value %#x"
	ErrInvalidStatus   = "legacy: status %#x, expected 0"
	ErrTransportIO     = "legacy: transport error during %s"
)

func writeByte(rw io.ReadWriter, v byte) error {
	if _, err := rw.Write([]byte{v}); err != nil {
		return curated.Errorf(ErrTransportIO, "write byte")
	}
	return nil
}

func readByte(rw io.ReadWriter) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(rw, b[:]); err != nil {
		return 0, curated.Errorf(ErrTransportIO, "read byte")
	}
	return b[0], nil
}

func echoByte(rw io.ReadWriter, v byte) error {
	if err := writeByte(rw, v); err != nil {
		return err
	}
	got, err := readByte(rw)
	if err != nil {
		return err
	}
	if got != v {
		return curated.Errorf(ErrInvalidEchoData, got, v)
	}
	return nil
}

func writeU16(rw io.ReadWriter, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	if _, err := rw.Write(b[:]); err != nil {
		return curated.Errorf(ErrTransportIO, "write u16")
	}
	return nil
}

func readU16(rw io.ReadWriter) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(rw, b[:]); err != nil {
		return 0, curated.Errorf(ErrTransportIO, "read u16")
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func echoU16(rw io.ReadWriter, v uint16) error {
	if err := writeU16(rw, v); err != nil {
		return err
	}
	got, err := readU16(rw)
	if err != nil {
		return err
	}
	if got != v {
		return curated.Errorf(ErrInvalidEchoData, got, v)
	}
	return nil
}

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

// expectStatus16 reads a u16 status word and requires it to be zero.
func expectStatus16(rw io.ReadWriter) error {
	status, err := readU16(rw)
	if err != nil {
		return err
	}
	if status != 0 {
		return curated.Errorf(ErrInvalidStatus, status)
	}
	return nil
}
