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

func TestEncodeDecodeReadResult(t *testing.T) {
	want := protocol.ReadResult{Data: []byte{1, 2, 3, 4, 5}}
	body := protocol.EncodeResponse(want)
	test.ExpectEquality(t, body[0], protocol.ResponseReadTag)

	r, err := protocol.DecodeResponse(body)
	test.ExpectSuccess(t, err)
	got, ok := r.(protocol.ReadResult)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, len(got.Data), len(want.Data))
}

func TestEncodeDecodeNack(t *testing.T) {
	want := protocol.Nack{Reason: protocol.ReasonNotFound, Which: 7}
	body := protocol.EncodeResponse(want)

	r, err := protocol.DecodeResponse(body)
	test.ExpectSuccess(t, err)
	got, ok := r.(protocol.Nack)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, got.Reason, protocol.ReasonNotFound)
	test.ExpectEquality(t, got.Which, uint32(7))
}

func TestDecodeResponseUnknownTag(t *testing.T) {
	_, err := protocol.DecodeResponse([]byte{0xfe})
	test.ExpectFailure(t, err)
}
