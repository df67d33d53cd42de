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

import "io"

// Channel is a full-duplex byte channel to a device attached over USB or
// serial (§1, §5). The core only ever talks to a Channel; it never touches
// gousb or go.bug.st/serial directly.
type Channel interface {
	io.Reader
	io.Writer
	io.Closer
}

// VendorID is the USB vendor id shared by every device mode this toolkit
// recognises (§6).
const VendorID uint16 = 0x0e8d

// Product ids distinguishing the two USB-enumerable device modes (§6). DA1
// and DA2 run over the byte channel opened for Preloader/BootROM - they do
// not present their own USB identity.
const (
	ProductBootROM   uint16 = 0x0003
	ProductPreloader uint16 = 0x2000
)

// Candidate identifies one USB device that matched a vendor/product query,
// resolved (where the host OS exposes one) to the serial device node the
// Preloader/BootROM stage actually talks over.
type Candidate struct {
	Bus     int
	Address int
	Path    string
}

// Enumerator finds USB devices matching a vendor/product pair. The boot
// orchestrator's Connect step (§4.7) uses this to implement "enumerate
// matching USB devices; if more than one candidate, fail MoreThanOneDevice".
type Enumerator interface {
	Find(vendor, product uint16) ([]Candidate, error)
}

// Dialer opens a Channel to a Candidate's resolved path at the orchestrator's
// configured baud rate and read timeout.
type Dialer func(path string) (Channel, error)
