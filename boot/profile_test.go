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

package boot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mtkboot/core/boot"
	"github.com/mtkboot/core/prefs"
	"github.com/mtkboot/core/test"
)

func TestProfileStoreBuiltins(t *testing.T) {
	s := boot.NewProfileStore()
	p, ok := s.Profile(0x0279)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p.HwCode, uint16(0x0279))
}

func TestProfileStoreSetOverridesBuiltin(t *testing.T) {
	s := boot.NewProfileStore()
	s.Set(boot.SoCProfile{HwCode: 0x0279, SRAMStageAddress: 0xdeadbeef})

	p, ok := s.Profile(0x0279)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p.SRAMStageAddress, uint32(0xdeadbeef))
}

func TestProfileStoreUnknownHwCode(t *testing.T) {
	s := boot.NewProfileStore()
	_, ok := s.Profile(0xffff)
	test.ExpectFailure(t, ok)
}

func TestProfileStoreAttachRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "mtkboot_prefs_test")

	disk, err := prefs.NewDisk(fn)
	test.ExpectSuccess(t, err)

	s := boot.NewProfileStore()
	s.Set(boot.SoCProfile{HwCode: 0x9999, SRAMStageAddress: 0x1234, DRAMStageAddress: 0x5678, PreloaderBase: 0x9abc})
	err = s.Attach(disk)
	test.ExpectSuccess(t, err)

	err = disk.Save()
	test.ExpectSuccess(t, err)
	defer os.Remove(fn)

	disk2, err := prefs.NewDisk(fn)
	test.ExpectSuccess(t, err)
	s2 := boot.NewProfileStore()
	err = s2.Attach(disk2)
	test.ExpectSuccess(t, err)
	err = disk2.Load()
	test.ExpectSuccess(t, err)

	p, ok := s2.Profile(0x9999)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p.SRAMStageAddress, uint32(0x1234))
	test.ExpectEquality(t, p.PreloaderBase, uint32(0x9abc))
}
