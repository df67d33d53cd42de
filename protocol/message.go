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

// Message tag bytes. TagAck is the one value the wire format names
// explicitly; the rest of this closed set is assigned sequentially since
// nothing else pins them down, the same way the boot argument's reserved
// fields were given concrete zero values where the source left them
// unspecified.
const (
	TagAck         byte = 0x42
	TagRead        byte = 0x01
	TagWrite       byte = 0x02
	TagFlushCache  byte = 0x03
	TagJump        byte = 0x04
	TagReset       byte = 0x05
	TagHook        byte = 0x06
	TagReturn      byte = 0x07
)

// ErrUnknownMessageTag is reported - via curated.Is - when DecodeMessage
// sees a tag byte outside the registered set.
const ErrUnknownMessageTag = "protocol: unknown message tag %#x"

// Message is one request frame body the host sends to the device.
type Message interface {
	Tag() byte
	encode() []byte
}

// Ack is the connection establishment message: whichever side speaks
// first.
type Ack struct{}

// Read requests Length bytes starting at Addr.
type Read struct {
	Addr   uint32
	Length uint32
}

// Write uploads Data to Addr.
type Write struct {
	Addr uint32
	Data []byte
}

// FlushCache asks the device to perform its cache coherency sequence over
// [Addr, Addr+Length).
type FlushCache struct {
	Addr   uint32
	Length uint32
}

// Jump transfers control to Addr, optionally passing R0 and R1.
type Jump struct {
	Addr    uint32
	HasR0   bool
	R0      uint32
	HasR1   bool
	R1      uint32
}

// Reset asks the device to restart its RPC session.
type Reset struct{}

// Hook asks the device to install the interceptor hook identified by ID
// (the MtPartGenericRead hook, in the boot orchestrator's Boot flow).
type Hook struct {
	ID uint32
}

// Return signals the device-side RPC loop to hand control back to whatever
// called it; in a BootROM-stage context it is not serviceable.
type Return struct{}

func (Ack) Tag() byte        { return TagAck }
func (Read) Tag() byte       { return TagRead }
func (Write) Tag() byte      { return TagWrite }
func (FlushCache) Tag() byte { return TagFlushCache }
func (Jump) Tag() byte       { return TagJump }
func (Reset) Tag() byte      { return TagReset }
func (Hook) Tag() byte       { return TagHook }
func (Return) Tag() byte     { return TagReturn }

func (Ack) encode() []byte { return nil }

func (m Read) encode() []byte {
	var b []byte
	b = appendU32(b, m.Addr)
	b = appendU32(b, m.Length)
	return b
}

func (m Write) encode() []byte {
	var b []byte
	b = appendU32(b, m.Addr)
	b = appendBlob(b, m.Data)
	return b
}

func (m FlushCache) encode() []byte {
	var b []byte
	b = appendU32(b, m.Addr)
	b = appendU32(b, m.Length)
	return b
}

func (m Jump) encode() []byte {
	var b []byte
	b = appendU32(b, m.Addr)
	flags := byte(0)
	if m.HasR0 {
		flags |= 0x01
	}
	if m.HasR1 {
		flags |= 0x02
	}
	b = append(b, flags)
	b = appendU32(b, m.R0)
	b = appendU32(b, m.R1)
	return b
}

func (Reset) encode() []byte { return nil }

func (m Hook) encode() []byte {
	return appendU32(nil, m.ID)
}

func (Return) encode() []byte { return nil }

// EncodeMessage serialises m as tag byte followed by its fields, ready to
// hand to WriteFrame as a frame body.
func EncodeMessage(m Message) []byte {
	return append([]byte{m.Tag()}, m.encode()...)
}

type messageDecoder func(body []byte) (Message, error)

var messageDecoders = map[byte]messageDecoder{
	TagAck:        func(body []byte) (Message, error) { return Ack{}, nil },
	TagReset:      func(body []byte) (Message, error) { return Reset{}, nil },
	TagReturn:     func(body []byte) (Message, error) { return Return{}, nil },
	TagRead:       decodeRead,
	TagWrite:      decodeWrite,
	TagFlushCache: decodeFlushCache,
	TagJump:       decodeJump,
	TagHook:       decodeHook,
}

func decodeRead(body []byte) (Message, error) {
	addr, off, err := readU32(body, 0, "Read.Addr")
	if err != nil {
		return nil, err
	}
	length, _, err := readU32(body, off, "Read.Length")
	if err != nil {
		return nil, err
	}
	return Read{Addr: addr, Length: length}, nil
}

func decodeWrite(body []byte) (Message, error) {
	addr, off, err := readU32(body, 0, "Write.Addr")
	if err != nil {
		return nil, err
	}
	data, _, err := readBlob(body, off, "Write.Data")
	if err != nil {
		return nil, err
	}
	return Write{Addr: addr, Data: append([]byte(nil), data...)}, nil
}

func decodeFlushCache(body []byte) (Message, error) {
	addr, off, err := readU32(body, 0, "FlushCache.Addr")
	if err != nil {
		return nil, err
	}
	length, _, err := readU32(body, off, "FlushCache.Length")
	if err != nil {
		return nil, err
	}
	return FlushCache{Addr: addr, Length: length}, nil
}

func decodeJump(body []byte) (Message, error) {
	addr, off, err := readU32(body, 0, "Jump.Addr")
	if err != nil {
		return nil, err
	}
	flags, off, err := readByte(body, off, "Jump.Flags")
	if err != nil {
		return nil, err
	}
	r0, off, err := readU32(body, off, "Jump.R0")
	if err != nil {
		return nil, err
	}
	r1, _, err := readU32(body, off, "Jump.R1")
	if err != nil {
		return nil, err
	}
	return Jump{
		Addr:  addr,
		HasR0: flags&0x01 != 0,
		R0:    r0,
		HasR1: flags&0x02 != 0,
		R1:    r1,
	}, nil
}

func decodeHook(body []byte) (Message, error) {
	id, _, err := readU32(body, 0, "Hook.ID")
	if err != nil {
		return nil, err
	}
	return Hook{ID: id}, nil
}

// DecodeMessage parses a frame body (as produced by ReadFrame) into a
// Message. An unrecognised tag is ErrUnknownMessageTag; on the device side
// this is exactly the condition that produces Nack(Unreachable).
func DecodeMessage(body []byte) (Message, error) {
	if len(body) == 0 {
		return nil, curated.Errorf(ErrUnknownMessageTag, 0)
	}
	dec, ok := messageDecoders[body[0]]
	if !ok {
		return nil, curated.Errorf(ErrUnknownMessageTag, body[0])
	}
	return dec(body[1:])
}
