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

package exploit_test

import (
	"encoding/binary"
	"io"
	"net"
	"testing"

	"github.com/mtkboot/core/exploit"
	"github.com/mtkboot/core/firmware/da"
	"github.com/mtkboot/core/test"
)

func readByte(t *testing.T, rw io.ReadWriter) byte {
	t.Helper()
	var b [1]byte
	_, err := io.ReadFull(rw, b[:])
	test.ExpectSuccess(t, err)
	return b[0]
}

func writeByte(t *testing.T, rw io.ReadWriter, v byte) {
	t.Helper()
	_, err := rw.Write([]byte{v})
	test.ExpectSuccess(t, err)
}

func readU32(t *testing.T, rw io.ReadWriter) uint32 {
	t.Helper()
	var b [4]byte
	_, err := io.ReadFull(rw, b[:])
	test.ExpectSuccess(t, err)
	return binary.BigEndian.Uint32(b[:])
}

func writeU32(t *testing.T, rw io.ReadWriter, v uint32) {
	t.Helper()
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := rw.Write(b[:])
	test.ExpectSuccess(t, err)
}

func writeU16(t *testing.T, rw io.ReadWriter, v uint16) {
	t.Helper()
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err := rw.Write(b[:])
	test.ExpectSuccess(t, err)
}

func echoU32(t *testing.T, rw io.ReadWriter) uint32 {
	t.Helper()
	v := readU32(t, rw)
	writeU32(t, rw, v)
	return v
}

// deviceStageStub plays the device side of stage(): one Write32 of
// wordCount words, one JumpDA, and the recipe's own post-jump echo/status
// handshake.
func deviceStageStub(t *testing.T, device net.Conn, wordCount int) {
	t.Helper()

	cmd := readByte(t, device)
	test.ExpectEquality(t, cmd, byte(0x7b)) // CmdWrite32
	echoU32(t, device)                      // addr
	echoU32(t, device)                      // length
	writeU16(t, device, 0)                  // status
	for i := 0; i < wordCount; i++ {
		echoU32(t, device)
	}
	writeU16(t, device, 0) // status

	cmd = readByte(t, device)
	test.ExpectEquality(t, cmd, byte(0xd5)) // CmdJumpDA
	echoU32(t, device)                      // addr
	writeU16(t, device, 0)                  // status

	echoU32(t, device) // recipe magic echo
	writeU32(t, device, 0)
}

func testEntry() da.Entry {
	return da.Entry{
		HwCode: 0x0279,
		Regions: []da.Region{
			{LoadBase: 0x40000000, Length: 0x1000},
			{LoadBase: 0x40010000, Length: 0x2000, SignatureLength: 0x100},
			{LoadBase: 0x40020000, Length: 0x4000},
		},
	}
}

func TestCatalogLookup(t *testing.T) {
	c := exploit.NewCatalog()
	for _, name := range []string{"croissant", "croissant-2", "pumpkin"} {
		r, err := c.Lookup(name)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, r.Name(), name)
	}
	_, err := c.Lookup("unknown-recipe")
	test.ExpectFailure(t, err)
}

func TestCroissantRun(t *testing.T) {
	host, device := net.Pipe()
	defer host.Close()
	defer device.Close()

	done := make(chan struct{})
	go func() {
		deviceStageStub(t, device, 3) // magic, hw_code, control word
		close(done)
	}()

	c := exploit.NewCatalog()
	r, err := c.Lookup("croissant")
	test.ExpectSuccess(t, err)

	err = r.Run(host, testEntry(), nil, nil)
	test.ExpectSuccess(t, err)
	<-done
}

func TestCroissant2Run(t *testing.T) {
	host, device := net.Pipe()
	defer host.Close()
	defer device.Close()

	done := make(chan struct{})
	go func() {
		deviceStageStub(t, device, 4) // magic, hw_code, fold, control word
		close(done)
	}()

	c := exploit.NewCatalog()
	r, err := c.Lookup("croissant-2")
	test.ExpectSuccess(t, err)

	err = r.Run(host, testEntry(), nil, []byte{0x01, 0x02, 0x03, 0x04})
	test.ExpectSuccess(t, err)
	<-done
}

func TestPumpkinRun(t *testing.T) {
	host, device := net.Pipe()
	defer host.Close()
	defer device.Close()

	done := make(chan struct{})
	go func() {
		deviceStageStub(t, device, 3) // magic, hw_code, sig start offset
		close(done)
	}()

	c := exploit.NewCatalog()
	r, err := c.Lookup("pumpkin")
	test.ExpectSuccess(t, err)

	err = r.Run(host, testEntry(), nil, nil)
	test.ExpectSuccess(t, err)
	<-done
}

func TestRunRejectsBadMagicEcho(t *testing.T) {
	host, device := net.Pipe()
	defer host.Close()
	defer device.Close()

	done := make(chan struct{})
	go func() {
		cmd := readByte(t, device)
		test.ExpectEquality(t, cmd, byte(0x7b))
		echoU32(t, device)
		echoU32(t, device)
		writeU16(t, device, 0)
		for i := 0; i < 3; i++ {
			echoU32(t, device)
		}
		writeU16(t, device, 0)

		cmd = readByte(t, device)
		test.ExpectEquality(t, cmd, byte(0xd5))
		echoU32(t, device)
		writeU16(t, device, 0)

		readU32(t, device)
		writeU32(t, device, 0xffffffff) // wrong echo
		close(done)
	}()

	c := exploit.NewCatalog()
	r, err := c.Lookup("croissant")
	test.ExpectSuccess(t, err)

	err = r.Run(host, testEntry(), nil, nil)
	test.ExpectFailure(t, err)
	<-done
}
