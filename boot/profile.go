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
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mtkboot/core/prefs"
)

// SoCProfile records the per-SoC staging addresses §4.7 refers to only as
// "a SoC-specific SRAM address", "its SoC-specific base", and so on,
// without naming where that table itself should live. Supplemented here
// (SPEC_FULL.md) because a multi-SoC tool needs it to exist somewhere
// concrete.
type SoCProfile struct {
	HwCode           uint16
	SRAMStageAddress uint32
	DRAMStageAddress uint32
	PreloaderBase    uint32
}

// builtinProfiles seeds a ProfileStore with illustrative defaults for a
// couple of historically common hw_codes; an operator overrides or adds to
// these through ProfileStore.Set and Attach persists the result.
var builtinProfiles = map[uint16]SoCProfile{
	0x0279: {HwCode: 0x0279, SRAMStageAddress: 0x00200000, DRAMStageAddress: 0x40000000, PreloaderBase: 0x40001000},
	0x0321: {HwCode: 0x0321, SRAMStageAddress: 0x00200000, DRAMStageAddress: 0x40000000, PreloaderBase: 0x40001000},
	0x0717: {HwCode: 0x0717, SRAMStageAddress: 0x00100000, DRAMStageAddress: 0x41000000, PreloaderBase: 0x41E00000},
}

// ProfileStore holds the working set of per-SoC profiles, defaulted from
// builtinProfiles and optionally persisted through prefs (mirroring the
// teacher's own small, typed, persisted-default pattern).
type ProfileStore struct {
	profiles map[uint16]SoCProfile
}

// NewProfileStore returns a store seeded with builtinProfiles.
func NewProfileStore() *ProfileStore {
	s := &ProfileStore{profiles: make(map[uint16]SoCProfile, len(builtinProfiles))}
	for k, v := range builtinProfiles {
		s.profiles[k] = v
	}
	return s
}

// Profile returns the profile registered for hwCode, if any.
func (s *ProfileStore) Profile(hwCode uint16) (SoCProfile, bool) {
	p, ok := s.profiles[hwCode]
	return p, ok
}

// Set registers or overwrites the profile for p.HwCode.
func (s *ProfileStore) Set(p SoCProfile) {
	s.profiles[p.HwCode] = p
}

// profilesKey is the single prefs key the whole table is serialised under,
// since prefs.Disk only knows about scalar string/bool/int/float values.
const profilesKey = "boot.socprofiles"

// Attach registers the store with d so Save/Load persist every profile
// currently known, encoded as JSON under one key.
func (s *ProfileStore) Attach(d *prefs.Disk) error {
	return d.Add(profilesKey, prefs.NewGeneric(
		func(v prefs.Value) error { return s.unmarshal(v) },
		func() prefs.Value { return s.marshal() },
	))
}

func (s *ProfileStore) marshal() prefs.Value {
	raw := make(map[string]SoCProfile, len(s.profiles))
	for hwCode, p := range s.profiles {
		raw[fmt.Sprintf("%#04x", hwCode)] = p
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return string(b)
}

func (s *ProfileStore) unmarshal(v prefs.Value) error {
	raw, ok := v.(string)
	if !ok {
		return fmt.Errorf("boot: unsupported value type (%T) for socprofiles", v)
	}
	if raw == "" {
		return nil
	}
	var decoded map[string]SoCProfile
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return err
	}
	for key, p := range decoded {
		hwCode, err := strconv.ParseUint(key, 0, 16)
		if err != nil {
			continue
		}
		p.HwCode = uint16(hwCode)
		s.profiles[p.HwCode] = p
	}
	return nil
}
