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
	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/exploit"
	"github.com/mtkboot/core/firmware/da"
	"github.com/mtkboot/core/firmware/lk"
	"github.com/mtkboot/core/legacy"
	"github.com/mtkboot/core/logger"
	"github.com/mtkboot/core/patch"
	"github.com/mtkboot/core/protocol"
	"github.com/mtkboot/core/transport"
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrNoImages          = "boot: boot request carries no images"
	ErrNoEntryForHwCode  = "boot: da container has no entry for hw_code %#04x"
	ErrIncompleteDAEntry = "boot: hw_code %#04x entry has %d regions, need at least 3 (header, da1, da2)"
)

// bytesToWords packs data into 32-bit little-endian words, zero-padding the
// final word if data isn't a multiple of 4 bytes long - the legacy Write32
// command operates word-at-a-time.
func bytesToWords(data []byte) []uint32 {
	n := (len(data) + 3) / 4
	out := make([]uint32, n)
	padded := make([]byte, n*4)
	copy(padded, data)
	for i := range out {
		out[i] = uint32(padded[i*4]) | uint32(padded[i*4+1])<<8 | uint32(padded[i*4+2])<<16 | uint32(padded[i*4+3])<<24
	}
	return out
}

// RunBootROM drives the BootROM-stage flow (§4.7): stage the RPC payload at
// the SoC's SRAM address over the legacy wire protocol and jump to it, then
// - now that the framed RPC protocol is live - upload the already-patched
// preloader image to its SoC-specific base and jump there with no
// arguments. The caller is responsible for closing ch and reconnecting as
// Preloader afterwards.
func (o *Orchestrator) RunBootROM(ch transport.Channel, profile SoCProfile, rpcPayload, preloaderImage []byte) error {
	if err := legacy.Write32(ch, profile.SRAMStageAddress, bytesToWords(rpcPayload)); err != nil {
		return o.fail("upload rpc payload", err)
	}
	if err := legacy.JumpDA(ch, profile.SRAMStageAddress); err != nil {
		return o.fail("jump to rpc payload", err)
	}

	conn := protocol.NewConn(ch)
	if err := conn.Handshake(); err != nil {
		return o.fail("rpc handshake", err)
	}
	if err := conn.Upload(profile.PreloaderBase, preloaderImage); err != nil {
		return o.fail("upload preloader", err)
	}
	if err := conn.Jump(profile.PreloaderBase, nil, nil); err != nil {
		return o.fail("jump to preloader", err)
	}

	o.ok("bootrom flow")
	return nil
}

// BootImage is one binary to upload during a Boot session, paired with the
// address it should be loaded at (§4.7).
type BootImage struct {
	Data    []byte
	Address uint32
}

// MtPartGenericReadHook is the one HookId the spec names explicitly (§3).
const MtPartGenericReadHook uint32 = 1

// BootRequest describes one Boot-session invocation of the Preloader flow
// (§4.7): a set of already-read binaries and upload addresses, the session
// mode that determines whether a boot argument structure and LK-header
// stripping apply, and an optional override of the jump target.
type BootRequest struct {
	Images       []BootImage
	Mode         SessionMode
	JumpOverride *uint32
	LKMode       lk.ParseMode
	LogPort      uint32
	LogBaudrate  uint32
}

// RunBoot drives the Boot branch of the Preloader flow (§4.7): upload every
// image (stripping the first one's LK header when Mode is LK), stage a boot
// argument structure and install the multi-binary hook in LK mode, then
// jump to the first image's load address (or JumpOverride), passing the
// boot argument address as r0 in LK mode.
func (o *Orchestrator) RunBoot(conn *protocol.Conn, req BootRequest) error {
	if len(req.Images) == 0 {
		return o.fail("boot", curated.Errorf(ErrNoImages))
	}

	images := req.Images
	if req.Mode == LK {
		header, err := lk.Parse(images[0].Data, req.LKMode)
		if err != nil {
			return o.fail("strip lk header", err)
		}
		images = append([]BootImage(nil), images...)
		images[0] = BootImage{Data: header.Code(), Address: images[0].Address}
	}

	for _, img := range images {
		if err := conn.Upload(img.Address, img.Data); err != nil {
			return o.fail("upload boot image", err)
		}
	}

	var r0 *uint32
	if req.Mode == LK {
		arg := NewBootArgument(req.LogPort, req.LogBaudrate)
		bootArgAddr := BootArgumentAddress
		if err := conn.Upload(bootArgAddr, arg.Encode()); err != nil {
			return o.fail("upload boot argument", err)
		}
		if len(images) > 1 {
			if err := conn.InstallHook(MtPartGenericReadHook); err != nil {
				return o.fail("install hook", err)
			}
		}
		r0 = &bootArgAddr
	}

	jumpAddr := images[0].Address
	if req.JumpOverride != nil {
		jumpAddr = *req.JumpOverride
	}
	if err := conn.Jump(jumpAddr, r0, nil); err != nil {
		return o.fail("jump to kernel", err)
	}

	o.ok("boot flow")
	return nil
}

// DARequest describes one DA-session invocation of the Preloader flow
// (§4.7). Raw is the original DA file's bytes (da.Region.Code/Signature
// slice into it); Container is da.Parse(Raw). Patches is applied to DA1
// before it is uploaded unless nil (the --skip-patch CLI flag). Exploit, if
// non-nil, runs after the DA1 setup handshake and before DA2 is uploaded.
type DARequest struct {
	Raw       []byte
	Container da.Container
	HwCode    uint16
	Patches   *patch.Catalog
	Exploit   exploit.Recipe
}

// RunDA drives the DA branch of the Preloader flow (§4.7): select the
// container entry for HwCode, patch and upload DA1 over the legacy wire
// protocol, jump to it and run its setup handshake, optionally run a named
// exploit recipe, then upload DA2 in 4 KiB chunks via the DA2 upload
// handshake.
func (o *Orchestrator) RunDA(ch transport.Channel, req DARequest) error {
	entry, ok := req.Container.EntryFor(req.HwCode)
	if !ok {
		return o.fail("select da entry", curated.Errorf(ErrNoEntryForHwCode, req.HwCode))
	}
	if len(entry.Regions) < 3 {
		return o.fail("select da entry", curated.Errorf(ErrIncompleteDAEntry, req.HwCode, len(entry.Regions)))
	}

	da1Region := entry.Regions[1]
	da2Region := entry.Regions[2]

	da1Code := append([]byte(nil), da1Region.Code(req.Raw)...)
	if req.Patches != nil {
		buf := arm.CodeBuffer{Bytes: da1Code, Base: da1Region.LoadBase}
		req.Patches.ApplyAll(buf, o.Log, logger.Allow)
	}

	if _, err := legacy.SendDA(ch, da1Region.LoadBase, da1Code, da1Region.SignatureLength); err != nil {
		return o.fail("send da1", err)
	}
	if err := legacy.JumpDA(ch, da1Region.LoadBase); err != nil {
		return o.fail("jump da1", err)
	}
	setup, err := legacy.DA1Setup(ch)
	if err != nil {
		return o.fail("da1 setup", err)
	}

	if req.Exploit != nil {
		if err := req.Exploit.Run(ch, entry, req.Raw, setup); err != nil {
			return o.fail("exploit: "+req.Exploit.Name(), err)
		}
	}

	da2Code := da2Region.Code(req.Raw)
	if err := legacy.UploadDA2(ch, da2Region.LoadBase, da2Code); err != nil {
		return o.fail("upload da2", err)
	}

	o.ok("da flow")
	return nil
}
