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

package preloader_test

import (
	"bytes"
	"testing"

	"github.com/mtkboot/core/firmware/preloader"
	"github.com/mtkboot/core/test"
)

func TestStripEmmcBoot(t *testing.T) {
	data := append([]byte("EMMC_BOOT"), bytes.Repeat([]byte{0}, 0xb00-len("EMMC_BOOT")+4)...)
	stripped, err := preloader.Strip(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(stripped), 4)
}

func TestStripMMM(t *testing.T) {
	data := append([]byte("MMM"), bytes.Repeat([]byte{0}, 0x300-len("MMM")+8)...)
	stripped, err := preloader.Strip(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(stripped), 8)
}

func TestStripUnknownPrefix(t *testing.T) {
	_, err := preloader.Strip([]byte("NOPE"))
	test.ExpectFailure(t, err)
}
