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

import "github.com/mtkboot/core/bin"

// BootArgumentAddress is the conventional host-chosen address the boot
// argument structure is uploaded to in an LK-mode session (§6).
const BootArgumentAddress uint32 = 0x800d0000

// bootArgumentMagic is the fixed-layout structure's own magic, and also the
// value its trailing magic_num field repeats (§6).
const bootArgumentMagic uint32 = 0x504c504c

// bootArgumentSize is the encoded length of BootArgument: 19 u32-sized
// fields (magic, mode, e_flag, log_port, log_baudrate, dram_rank_num, the
// four-element dram_rank_size array, boot_reason, meta_com_type,
// meta_com_id, boot_time, addr, arg1, arg2, a second magic_num, and
// forbid_mode) plus the log_enable byte and its three reserved padding
// bytes.
const bootArgumentSize = 4*19 + 4

// BootArgument is the fixed little-endian C struct an LK-mode Boot session
// uploads to BootArgumentAddress before jumping, passing that address back
// as r0 (§6).
type BootArgument struct {
	Mode         uint32
	EFlag        uint32
	LogPort      uint32
	LogBaudrate  uint32
	LogEnable    bool
	DramRankNum  uint32
	DramRankSize [4]uint32
	BootReason   uint32
	MetaComType  uint32
	MetaComID    uint32
	BootTime     uint32
	Addr         uint32
	Arg1         uint32
	Arg2         uint32
	ForbidMode   uint32
}

// NewBootArgument returns a BootArgument with logging enabled over logPort
// at logBaudrate (the two magic fields are not stored in the struct; Encode
// writes them), every other field left at
// its zero value (the reserved bytes and the fields the boot orchestrator
// itself doesn't have a concrete value for).
func NewBootArgument(logPort, logBaudrate uint32) BootArgument {
	return BootArgument{
		LogPort:     logPort,
		LogBaudrate: logBaudrate,
		LogEnable:   true,
	}
}

// Encode serialises the structure to its on-wire little-endian byte layout.
func (b BootArgument) Encode() []byte {
	out := make([]byte, bootArgumentSize)
	off := 0
	putU32 := func(v uint32) {
		bin.WriteLE32(out, off, v)
		off += 4
	}

	putU32(bootArgumentMagic)
	putU32(b.Mode)
	putU32(b.EFlag)
	putU32(b.LogPort)
	putU32(b.LogBaudrate)
	if b.LogEnable {
		out[off] = 1
	}
	off += 4 // log_enable byte plus 3 reserved padding bytes
	putU32(b.DramRankNum)
	for _, v := range b.DramRankSize {
		putU32(v)
	}
	putU32(b.BootReason)
	putU32(b.MetaComType)
	putU32(b.MetaComID)
	putU32(b.BootTime)
	putU32(b.Addr)
	putU32(b.Arg1)
	putU32(b.Arg2)
	putU32(bootArgumentMagic)
	putU32(b.ForbidMode)

	return out
}
