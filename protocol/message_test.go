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

package protocol_test

import (
	"testing"

	"github.com/mtkboot/core/protocol"
	"github.com/mtkboot/core/test"
)

func TestEncodeDecodeAck(t *testing.T) {
	body := protocol.EncodeMessage(protocol.Ack{})
	test.ExpectEquality(t, body[0], protocol.TagAck)

	m, err := protocol.DecodeMessage(body)
	test.ExpectSuccess(t, err)
	_, ok := m.(protocol.Ack)
	test.ExpectEquality(t, ok, true)
}

func TestEncodeDecodeWrite(t *testing.T) {
	want := protocol.Write{Addr: 0x80020000, Data: []byte{0xde, 0xad, 0xbe, 0xef}}
	body := protocol.EncodeMessage(want)

	m, err := protocol.DecodeMessage(body)
	test.ExpectSuccess(t, err)
	got, ok := m.(protocol.Write)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, got.Addr, want.Addr)
	test.ExpectEquality(t, len(got.Data), len(want.Data))
	for i := range want.Data {
		test.ExpectEquality(t, got.Data[i], want.Data[i])
	}
}

func TestEncodeDecodeJumpWithRegisters(t *testing.T) {
	want := protocol.Jump{Addr: 0x201000, HasR0: true, R0: 0x800d0000}
	body := protocol.EncodeMessage(want)

	m, err := protocol.DecodeMessage(body)
	test.ExpectSuccess(t, err)
	got, ok := m.(protocol.Jump)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, got.Addr, want.Addr)
	test.ExpectEquality(t, got.HasR0, true)
	test.ExpectEquality(t, got.R0, want.R0)
	test.ExpectEquality(t, got.HasR1, false)
}

func TestDecodeMessageUnknownTag(t *testing.T) {
	_, err := protocol.DecodeMessage([]byte{0xff})
	test.ExpectFailure(t, err)
}

func TestDecodeMessageEmptyBody(t *testing.T) {
	_, err := protocol.DecodeMessage(nil)
	test.ExpectFailure(t, err)
}
