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

package boot

import (
	"io"

	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/legacy"
)

const (
	handshakeProbe byte = 0xa0
	handshakeAck   byte = 0x5f
)

// handshakeSync is sent once handshakeAck has echoed back (§4.7, §6).
var handshakeSync = []byte{0x0a, 0x50, 0x05}

// ErrHandshakeFailed is reported - via curated.Errorf - when maxAttempts
// probes are exhausted without the device ever echoing handshakeAck.
const ErrHandshakeFailed = "boot: brom/preloader handshake did not complete after %d attempts"

// Handshake drives the brom/preloader wire handshake: send handshakeProbe
// repeatedly until handshakeAck is received, then send the fixed sync bytes
// and drain whatever immediately follows.
func Handshake(rw io.ReadWriter, maxAttempts int) error {
	var ack [1]byte
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if _, err := rw.Write([]byte{handshakeProbe}); err != nil {
			return curated.Errorf(ErrTransportIO, "write handshake probe", err)
		}
		if _, err := io.ReadFull(rw, ack[:]); err != nil {
			continue // a timed-out probe is expected while the device boots
		}
		if ack[0] != handshakeAck {
			continue
		}
		if _, err := rw.Write(handshakeSync); err != nil {
			return curated.Errorf(ErrTransportIO, "write handshake sync", err)
		}
		drain(rw)
		return nil
	}
	return curated.Errorf(ErrHandshakeFailed, maxAttempts)
}

// drain absorbs whatever is immediately available without blocking
// indefinitely; rw is expected to carry the orchestrator's own read
// timeout, so a single Read is sufficient to give the device's reply (if
// any) a chance to arrive before the handshake is declared complete.
func drain(rw io.ReadWriter) {
	buf := make([]byte, 64)
	_, _ = rw.Read(buf)
}

// CrashToBootROM issues a one-dword Read32 of address 0 against a running
// Preloader; per §4.7 the resulting transport error is the expected
// outcome; the caller should drop the port and re-enumerate as BootROM
// regardless of what CrashToBootROM itself returns.
func CrashToBootROM(rw io.ReadWriter) error {
	_, err := legacy.Read32(rw, 0, 1)
	return err
}
