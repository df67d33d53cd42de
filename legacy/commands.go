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

// Command bytes, per the vendor wire protocol (unless otherwise noted,
// fields are serialized big-endian).
const (
	CmdSendDA          byte = 0xd7
	CmdJumpDA          byte = 0xd5
	CmdRead32          byte = 0xd1
	CmdWrite32         byte = 0x7b
	CmdGetHwCode       byte = 0xfd
	CmdGetTargetConfig byte = 0xd8
)

// da1SetupLength is the fixed size of the DA1 setup choreography.
const da1SetupLength = 38

// SendDA uploads payload to addr, with sigLen describing how many of its
// trailing bytes are a signature. The command byte is sent without an echo;
// the three 32-bit parameters are each echoed back by the device, then a
// status word precedes the payload, and a checksum word and a final status
// follow it.
//
// The checksum is read back but not independently verified: the legacy
// protocol never documents the checksum algorithm, so there is nothing to
// recompute it against. Callers that need end-to-end integrity should rely
// on DA1's own signature check instead.
func SendDA(rw io.ReadWriter, addr uint32, payload []byte, sigLen uint32) (checksum uint16, err error) {
	if err := writeByte(rw, CmdSendDA); err != nil {
		return 0, err
	}
	if err := echoU32(rw, addr); err != nil {
		return 0, err
	}
	if err := echoU32(rw, uint32(len(payload))); err != nil {
		return 0, err
	}
	if err := echoU32(rw, sigLen); err != nil {
		return 0, err
	}
	if err := expectStatus16(rw); err != nil {
		return 0, err
	}
	if _, err := rw.Write(payload); err != nil {
		return 0, curated.Errorf(ErrTransportIO, "write payload")
	}
	checksum, err = readU16(rw)
	if err != nil {
		return 0, err
	}
	if err := expectStatus16(rw); err != nil {
		return 0, err
	}
	return checksum, nil
}

// JumpDA transfers control to addr (one echoed u32, then a status word).
func JumpDA(rw io.ReadWriter, addr uint32) error {
	if err := writeByte(rw, CmdJumpDA); err != nil {
		return err
	}
	if err := echoU32(rw, addr); err != nil {
		return err
	}
	return expectStatus16(rw)
}

// Read32 reads dwords 32-bit words starting at addr.
func Read32(rw io.ReadWriter, addr uint32, dwords uint32) ([]uint32, error) {
	if err := writeByte(rw, CmdRead32); err != nil {
		return nil, err
	}
	if err := echoU32(rw, addr); err != nil {
		return nil, err
	}
	if err := echoU32(rw, dwords); err != nil {
		return nil, err
	}
	if err := expectStatus16(rw); err != nil {
		return nil, err
	}

	out := make([]uint32, dwords)
	for i := range out {
		v, err := readU32(rw)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	if err := expectStatus16(rw); err != nil {
		return nil, err
	}
	return out, nil
}

// Write32 writes data as consecutive 32-bit words starting at addr,
// symmetric with Read32: each word is echoed back by the device as it is
// written.
func Write32(rw io.ReadWriter, addr uint32, data []uint32) error {
	if err := writeByte(rw, CmdWrite32); err != nil {
		return err
	}
	if err := echoU32(rw, addr); err != nil {
		return err
	}
	if err := echoU32(rw, uint32(len(data))); err != nil {
		return err
	}
	if err := expectStatus16(rw); err != nil {
		return err
	}

	for _, v := range data {
		if err := echoU32(rw, v); err != nil {
			return err
		}
	}

	return expectStatus16(rw)
}

// GetHwCode returns the device's hardware code.
func GetHwCode(rw io.ReadWriter) (uint16, error) {
	if err := echoByte(rw, CmdGetHwCode); err != nil {
		return 0, err
	}
	hwCode, err := readU16(rw)
	if err != nil {
		return 0, err
	}
	if err := expectStatus16(rw); err != nil {
		return 0, err
	}
	return hwCode, nil
}

// GetTargetConfig returns the device's target configuration word.
func GetTargetConfig(rw io.ReadWriter) (uint32, error) {
	if err := echoByte(rw, CmdGetTargetConfig); err != nil {
		return 0, err
	}
	config, err := readU32(rw)
	if err != nil {
		return 0, err
	}
	if err := expectStatus16(rw); err != nil {
		return 0, err
	}
	return config, nil
}

// DA1Setup drives the fixed 38-byte bidirectional handshake DA1 performs
// once it starts running, immediately after JumpDA. Every byte of the
// choreography is echoed individually - the most conservative reading of
// "a generic run method that walks its fields in declaration order,
// performing tx/rx/echo/ack steps" available, since the specific field
// layout of this handshake is not otherwise documented. The response
// bytes are returned to the caller (an exploit adapter, typically) for
// whatever SoC-specific interpretation it needs.
func DA1Setup(rw io.ReadWriter) ([]byte, error) {
	response := make([]byte, da1SetupLength)
	for i := 0; i < da1SetupLength; i++ {
		probe := byte(i)
		if err := writeByte(rw, probe); err != nil {
			return nil, err
		}
		got, err := readByte(rw)
		if err != nil {
			return nil, err
		}
		if got != probe {
			return nil, curated.Errorf(ErrInvalidEchoData, got, probe)
		}
		response[i] = got
	}
	return response, nil
}
