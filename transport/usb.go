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
	"github.com/google/gousb"
)

// USBEnumerator implements Enumerator over github.com/google/gousb. It does
// not attempt to resolve a USB device down to an OS serial device node -
// that mapping is host-OS-specific and outside the core's scope (§1) - so
// Candidate.Path is left empty and a caller that needs a concrete Dialer
// path must supply its own resolution (udev rules, a fixed /dev/ttyACM0,
// whatever the deployment environment provides).
type USBEnumerator struct {
	ctx *gousb.Context
}

// NewUSBEnumerator opens a gousb context. Close releases it.
func NewUSBEnumerator() *USBEnumerator {
	return &USBEnumerator{ctx: gousb.NewContext()}
}

// Close releases the underlying libusb context.
func (e *USBEnumerator) Close() error {
	return e.ctx.Close()
}

// Find implements Enumerator.
func (e *USBEnumerator) Find(vendor, product uint16) ([]Candidate, error) {
	devs, err := e.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return uint16(desc.Vendor) == vendor && uint16(desc.Product) == product
	})
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(devs))
	for _, d := range devs {
		out = append(out, Candidate{
			Bus:     d.Desc.Bus,
			Address: d.Desc.Address,
		})
		d.Close()
	}
	return out, nil
}
