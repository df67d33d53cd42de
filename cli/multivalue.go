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
	"strconv"
	"strings"
)

// stringList collects every occurrence of a repeated string flag, in the
// order given (`-i a.bin -i b.bin` → ["a.bin", "b.bin"]).
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// addrList collects every occurrence of a repeated hex/decimal address
// flag (`-u 0x80020000 -u 0x80030000`).
type addrList []uint32

func (a *addrList) String() string {
	parts := make([]string, len(*a))
	for i, v := range *a {
		parts[i] = strconv.FormatUint(uint64(v), 16)
	}
	return strings.Join(parts, ",")
}

func (a *addrList) Set(v string) error {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 0, 32)
	if err != nil {
		return err
	}
	*a = append(*a, uint32(n))
	return nil
}
