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

package exploit

import (
	"io"

	"github.com/mtkboot/core/bin"
	"github.com/mtkboot/core/firmware/da"
	"github.com/mtkboot/core/legacy"
)

// stubMagic tags the tiny staged payload every recipe in this file builds,
// so a device-side monitor (out of scope here) can tell it apart from an
// ordinary DA1/DA2 image.
const stubMagic uint32 = 0x43524f53 // "CROS"

// scratchOffset is how far past the DA1 entry's load base a recipe stages
// its stub, chosen to sit past any region DA1 itself still reads from once
// parked at its setup handshake.
const scratchOffset = 0x1000

// buildStub assembles the minimal little-endian word stream every recipe
// here stages: a magic tag, the entry's own hw_code (so the stub can assert
// it landed on the SoC it was built for), and the caller-supplied control
// words that differentiate one recipe from another.
func buildStub(entry da.Entry, control ...uint32) []byte {
	words := make([]uint32, 0, 2+len(control))
	words = append(words, stubMagic, uint32(entry.HwCode))
	words = append(words, control...)

	out := make([]byte, len(words)*4)
	for i, w := range words {
		bin.WriteLE32(out, i*4, w)
	}
	return out
}

// stage uploads stub at entry's DA1 load base plus scratchOffset, jumps to
// it, and requires the zero status every recipe here reports on success.
func stage(rw io.ReadWriter, entry da.Entry, stub []byte) error {
	addr := entry.Regions[1].LoadBase + scratchOffset
	if err := legacy.Write32(rw, addr, bytesToWords(stub)); err != nil {
		return err
	}
	if err := legacy.JumpDA(rw, addr); err != nil {
		return err
	}
	if err := echoU32(rw, stubMagic); err != nil {
		return err
	}
	return expectStatus(rw)
}

func bytesToWords(data []byte) []uint32 {
	n := (len(data) + 3) / 4
	out := make([]uint32, n)
	for i := range out {
		out[i] = bin.ReadLE32(padTo(data, n*4), i*4)
	}
	return out
}

func padTo(data []byte, size int) []byte {
	if len(data) >= size {
		return data
	}
	padded := make([]byte, size)
	copy(padded, data)
	return padded
}

// croissant neutralises the setup handshake's own status word by staging a
// stub that echoes success unconditionally - the most direct of the three
// adaptations, grounded on the same "write a control word, jump, expect
// zero" shape every legacy command here already uses.
type croissant struct{}

func newCroissant() Recipe { return croissant{} }

func (croissant) Name() string { return "croissant" }

func (croissant) Run(rw io.ReadWriter, entry da.Entry, raw []byte, setup []byte) error {
	stub := buildStub(entry, 0x00000000)
	return stage(rw, entry, stub)
}

// croissant2 is croissant's two-stage variant: it stages an intermediate
// control word derived from the setup echo itself before the same
// unconditional-success stub, modelling a recipe that needs the device's
// own handshake bytes folded into its payload rather than a fixed constant.
type croissant2 struct{}

func newCroissant2() Recipe { return croissant2{} }

func (croissant2) Name() string { return "croissant-2" }

func (croissant2) Run(rw io.ReadWriter, entry da.Entry, raw []byte, setup []byte) error {
	var fold uint32
	for _, b := range setup {
		fold = fold<<8 | uint32(b)
	}
	stub := buildStub(entry, fold, 0x00000000)
	return stage(rw, entry, stub)
}

// pumpkin targets the region geometry directly: it re-derives DA1's
// signature boundary from the entry itself and stages a stub carrying that
// offset, modelling a recipe that disables a check by address rather than
// by overwriting a status word.
type pumpkin struct{}

func newPumpkin() Recipe { return pumpkin{} }

func (pumpkin) Name() string { return "pumpkin" }

func (pumpkin) Run(rw io.ReadWriter, entry da.Entry, raw []byte, setup []byte) error {
	sigStart := entry.Regions[1].Length - entry.Regions[1].SignatureLength
	stub := buildStub(entry, sigStart)
	return stage(rw, entry, stub)
}
