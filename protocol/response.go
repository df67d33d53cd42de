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

import "github.com/mtkboot/core/curated"

// Response tag bytes. ResponseAckTag is the one value the wire format
// names explicitly (0xDD); the rest are assigned sequentially, same policy
// as the Message tags.
const (
	ResponseAckTag  byte = 0xdd
	ResponseNackTag byte = 0x01
	ResponseReadTag byte = 0x02
	ResponseValueTag byte = 0x03
)

// Nack reasons, per the device-side RPC failure policy (§7): a decode
// failure is Unreachable, an unserviceable message (Return outside a
// context that can honour it) is NotSupported, and a resource that cannot
// be located is NotFound - Which then identifies what.
const (
	ReasonUnreachable  byte = 1
	ReasonNotSupported byte = 2
	ReasonNotFound     byte = 3
)

// ErrUnknownResponseTag is reported - via curated.Is - when DecodeResponse
// sees a tag byte outside the registered set.
const ErrUnknownResponseTag = "protocol: unknown response tag %#x"

// Response is one reply frame body the device sends back to the host.
type Response interface {
	Tag() byte
	encode() []byte
}

// ResponseAck acknowledges a request that needed no data in reply.
type ResponseAck struct{}

// Nack reports that a request failed, per Reason (and, for
// ReasonNotFound, Which identifies the missing resource).
type Nack struct {
	Reason byte
	Which  uint32
}

// ReadResult carries the bytes a Read message asked for.
type ReadResult struct {
	Data []byte
}

// Value carries a single 32-bit result (GetHwCode/GetTargetConfig-style
// replies riding the framed protocol once it is live).
type Value struct {
	V uint32
}

func (ResponseAck) Tag() byte { return ResponseAckTag }
func (Nack) Tag() byte        { return ResponseNackTag }
func (ReadResult) Tag() byte  { return ResponseReadTag }
func (Value) Tag() byte       { return ResponseValueTag }

func (ResponseAck) encode() []byte { return nil }

func (r Nack) encode() []byte {
	b := []byte{r.Reason}
	return appendU32(b, r.Which)
}

func (r ReadResult) encode() []byte {
	return appendBlob(nil, r.Data)
}

func (r Value) encode() []byte {
	return appendU32(nil, r.V)
}

// EncodeResponse serialises r as tag byte followed by its fields, ready to
// hand to WriteFrame as a frame body.
func EncodeResponse(r Response) []byte {
	return append([]byte{r.Tag()}, r.encode()...)
}

type responseDecoder func(body []byte) (Response, error)

var responseDecoders = map[byte]responseDecoder{
	ResponseAckTag:  func(body []byte) (Response, error) { return ResponseAck{}, nil },
	ResponseNackTag: decodeNack,
	ResponseReadTag: decodeReadResult,
	ResponseValueTag: decodeValue,
}

func decodeNack(body []byte) (Response, error) {
	reason, off, err := readByte(body, 0, "Nack.Reason")
	if err != nil {
		return nil, err
	}
	which, _, err := readU32(body, off, "Nack.Which")
	if err != nil {
		return nil, err
	}
	return Nack{Reason: reason, Which: which}, nil
}

func decodeReadResult(body []byte) (Response, error) {
	data, _, err := readBlob(body, 0, "ReadResult.Data")
	if err != nil {
		return nil, err
	}
	return ReadResult{Data: append([]byte(nil), data...)}, nil
}

func decodeValue(body []byte) (Response, error) {
	v, _, err := readU32(body, 0, "Value.V")
	if err != nil {
		return nil, err
	}
	return Value{V: v}, nil
}

// DecodeResponse parses a frame body into a Response. An unrecognised tag
// is ErrUnknownResponseTag.
func DecodeResponse(body []byte) (Response, error) {
	if len(body) == 0 {
		return nil, curated.Errorf(ErrUnknownResponseTag, 0)
	}
	dec, ok := responseDecoders[body[0]]
	if !ok {
		return nil, curated.Errorf(ErrUnknownResponseTag, body[0])
	}
	return dec(body[1:])
}
