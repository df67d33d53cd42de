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

package cli

import (
	"bytes"
	"testing"

	"github.com/mtkboot/core/boot"
	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/logger"
	"github.com/mtkboot/core/test"
)

func TestStringListSet(t *testing.T) {
	var s stringList
	test.ExpectSuccess(t, s.Set("a.bin"))
	test.ExpectSuccess(t, s.Set("b.bin"))
	test.ExpectEquality(t, []string(s), []string{"a.bin", "b.bin"})
	test.ExpectEquality(t, s.String(), "a.bin,b.bin")
}

func TestAddrListSet(t *testing.T) {
	var a addrList
	test.ExpectSuccess(t, a.Set("0x80020000"))
	test.ExpectSuccess(t, a.Set("2147680256"))
	test.ExpectEquality(t, []uint32(a), []uint32{0x80020000, 0x80030000})
}

func TestAddrListSetRejectsGarbage(t *testing.T) {
	var a addrList
	err := a.Set("not-an-address")
	test.ExpectFailure(t, err)
}

func TestParseSessionMode(t *testing.T) {
	mode, err := parseSessionMode("lk")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, mode, boot.LK)

	_, err = parseSessionMode("bogus")
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Has(err, ErrUnknownSessionMode), true)
}

func TestParseAddrHexAndDecimal(t *testing.T) {
	addr, err := parseAddr("0x80020000")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, addr, uint32(0x80020000))

	addr, err = parseAddr("1024")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, addr, uint32(1024))
}

func TestRunBootRejectsMismatchedImagesAndAddresses(t *testing.T) {
	orch := boot.NewOrchestrator(nil, nil, logger.NewLogger(10))
	var out bytes.Buffer

	err := runBoot(orch, globalOptions{}, []string{"-i", "a.bin", "-i", "b.bin", "-u", "0x1000"}, &out)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Has(err, ErrImageAddressMismatch), true)
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	err := Run([]string{"-help"}, &out)
	test.ExpectSuccess(t, err)
}
