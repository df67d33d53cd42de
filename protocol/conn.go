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
	"io"

	"github.com/mtkboot/core/curated"
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrHandshakeFailed = "protocol: handshake did not complete"
	ErrNacked          = "protocol: request nacked, reason %d (which=%d)"
)

// Conn is one framed RPC session over a full-duplex byte channel. The
// scheduling model is strictly one request in flight at a time (§5): the
// host never pipelines, so Conn needs no synchronisation of its own.
type Conn struct {
	rw io.ReadWriter
}

// NewConn wraps rw - ordinarily a transport.Channel - as a framed RPC
// session.
func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{rw: rw}
}

// Handshake performs connection establishment: this side speaks first,
// sending Ack, then waits for the peer's Ack in reply. Any other response,
// or a transport error, is fatal to the session per §4.6.
func (c *Conn) Handshake() error {
	resp, err := c.Request(Ack{})
	if err != nil {
		return err
	}
	if _, ok := resp.(ResponseAck); !ok {
		return curated.Errorf(ErrHandshakeFailed)
	}
	return nil
}

// Send writes m as a single frame.
func (c *Conn) Send(m Message) error {
	return WriteFrame(c.rw, EncodeMessage(m))
}

// Receive reads and decodes one response frame.
func (c *Conn) Receive() (Response, error) {
	body, err := ReadFrame(c.rw)
	if err != nil {
		return nil, err
	}
	return DecodeResponse(body)
}

// Request sends m and returns the single response frame that follows -
// the host performs one request and waits for one response before issuing
// the next, never pipelining (§5).
func (c *Conn) Request(m Message) (Response, error) {
	if err := c.Send(m); err != nil {
		return nil, err
	}
	return c.Receive()
}

// expectAck issues req and requires the reply to be ResponseAck, returning
// ErrNacked (decorated with the Nack's reason) otherwise.
func (c *Conn) expectAck(req Message) error {
	resp, err := c.Request(req)
	if err != nil {
		return err
	}
	switch r := resp.(type) {
	case ResponseAck:
		return nil
	case Nack:
		return curated.Errorf(ErrNacked, r.Reason, r.Which)
	default:
		return curated.Errorf(ErrNacked, 0, 0)
	}
}

// Upload writes data to addr in chunks of K bytes, flushing the cache over
// each chunk once it has been acknowledged. A Nack at either step aborts
// the transfer and is reported to the caller - per §4.6, there is no
// partial-progress recovery.
func (c *Conn) Upload(addr uint32, data []byte) error {
	for i := 0; i < len(data); i += K {
		end := i + K
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i:end]
		chunkAddr := addr + uint32(i)

		if err := c.expectAck(Write{Addr: chunkAddr, Data: chunk}); err != nil {
			return err
		}
		if err := c.expectAck(FlushCache{Addr: chunkAddr, Length: uint32(len(chunk))}); err != nil {
			return err
		}
	}
	return nil
}

// Download reads length bytes starting at addr, in chunks of K bytes, with
// the remainder sent as a final partial Read per §4.6.
func (c *Conn) Download(addr uint32, length uint32) ([]byte, error) {
	out := make([]byte, 0, length)
	for read := uint32(0); read < length; {
		want := uint32(K)
		if remaining := length - read; remaining < want {
			want = remaining
		}

		resp, err := c.Request(Read{Addr: addr + read, Length: want})
		if err != nil {
			return nil, err
		}
		switch r := resp.(type) {
		case ReadResult:
			out = append(out, r.Data...)
		case Nack:
			return nil, curated.Errorf(ErrNacked, r.Reason, r.Which)
		default:
			return nil, curated.Errorf(ErrNacked, 0, 0)
		}
		read += want
	}
	return out, nil
}

// Jump sends a Jump message to addr, optionally carrying r0/r1, and waits
// for the device's acknowledgement.
func (c *Conn) Jump(addr uint32, r0, r1 *uint32) error {
	m := Jump{Addr: addr}
	if r0 != nil {
		m.HasR0 = true
		m.R0 = *r0
	}
	if r1 != nil {
		m.HasR1 = true
		m.R1 = *r1
	}
	return c.expectAck(m)
}

// InstallHook sends a Hook message identifying id (the MtPartGenericRead
// hook, in the orchestrator's Boot flow) and waits for acknowledgement.
func (c *Conn) InstallHook(id uint32) error {
	return c.expectAck(Hook{ID: id})
}
