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

package preloader

import (
	"bytes"

	"github.com/mtkboot/core/curated"
)

const (
	emmcBootPrefix = "EMMC_BOOT"
	mmmPrefix      = "MMM"

	emmcBootStrip = 0xb00
	mmmStrip      = 0x300
)

// ErrUnknownWrapper is reported - via curated.Errorf - when data starts
// with neither recognised wrapper prefix.
const ErrUnknownWrapper = "preloader: unrecognised wrapper prefix"

// Strip removes a recognised vendor wrapper prefix from data, returning the
// underlying first-stage code. It fails if data starts with neither the
// "EMMC_BOOT" nor the "MMM" prefix.
func Strip(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, []byte(emmcBootPrefix)):
		return stripTo(data, emmcBootStrip)
	case bytes.HasPrefix(data, []byte(mmmPrefix)):
		return stripTo(data, mmmStrip)
	default:
		return nil, curated.Errorf(ErrUnknownWrapper)
	}
}

func stripTo(data []byte, n int) ([]byte, error) {
	if len(data) < n {
		return nil, curated.Errorf(ErrUnknownWrapper)
	}
	return data[n:], nil
}
