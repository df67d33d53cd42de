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

package transport

import (
	"time"

	"go.bug.st/serial"

	"github.com/mtkboot/core/curated"
)

// ErrOpenFailed is reported - via curated.Errorf - when the underlying
// serial port cannot be opened or configured.
const ErrOpenFailed = "transport: cannot open %s: %v"

// SerialDialer returns a Dialer that opens paths at baud with readTimeout
// applied to every read (the orchestrator's own per-step timeout, §5 - each
// transport read/write blocks up to the port's timeout).
func SerialDialer(baud int, readTimeout time.Duration) Dialer {
	return func(path string) (Channel, error) {
		mode := &serial.Mode{BaudRate: baud}
		port, err := serial.Open(path, mode)
		if err != nil {
			return nil, curated.Errorf(ErrOpenFailed, path, err)
		}
		if err := port.SetReadTimeout(readTimeout); err != nil {
			port.Close()
			return nil, curated.Errorf(ErrOpenFailed, path, err)
		}
		return port, nil
	}
}

// ListSerialPorts returns every serial device node the host OS currently
// exposes, for a caller (typically cli) that needs to let an operator pick
// one when USB-to-path resolution isn't available.
func ListSerialPorts() ([]string, error) {
	return serial.GetPortsList()
}
