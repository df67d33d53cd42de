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
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mtkboot/core/boot"
	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/exploit"
	"github.com/mtkboot/core/firmware/da"
	"github.com/mtkboot/core/firmware/lk"
	"github.com/mtkboot/core/legacy"
	"github.com/mtkboot/core/logger"
	"github.com/mtkboot/core/modalflag"
	"github.com/mtkboot/core/patch"
	"github.com/mtkboot/core/protocol"
	"github.com/mtkboot/core/transport"
)

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrNoPort               = "cli: no --port given and usb-to-path resolution is unavailable (§1)"
	ErrImageAddressMismatch = "cli: %d -i images but %d -u addresses"
	ErrUnknownSessionMode   = "cli: unknown session mode %q (want raw, lk or repl)"
)

const (
	defaultBaud        = 115200
	defaultReadTimeout = 2 * time.Second
)

// Run parses args (ordinarily os.Args[1:]) and drives one boot or da
// session to completion, writing progress to stdout and the orchestrator's
// log tail to stderr on failure.
func Run(args []string, stdout io.Writer) error {
	top := modalflag.Modes{Output: stdout}
	top.NewArgs(args)

	crash := top.AddBool("crash", false, "force the device to brom before connecting")
	force := top.AddBool("force", false, "proceed even if profile/hw_code data looks unfamiliar")
	preloader := top.AddString("preloader", "", "replacement preloader image (bootrom flow)")
	port := top.AddString("port", "", "serial device node to dial directly (usb-to-path resolution is out of core scope)")
	top.AddSubModes("boot", "da")

	res, err := top.Parse()
	if res == modalflag.ParseHelp {
		return err
	}
	if err != nil {
		return err
	}

	log := logger.NewLogger(200)
	orch := boot.NewOrchestrator(transport.NewUSBEnumerator(), transport.SerialDialer(defaultBaud, defaultReadTimeout), log)

	opts := globalOptions{
		crash:     *crash,
		force:     *force,
		preloader: *preloader,
		port:      *port,
	}

	switch top.Mode() {
	case "boot":
		err = runBoot(orch, opts, top.RemainingArgs(), stdout)
	case "da":
		err = runDA(orch, opts, top.RemainingArgs(), stdout)
	}
	if err != nil {
		log.Tail(os.Stderr, 20)
	}
	return err
}

type globalOptions struct {
	crash     bool
	force     bool
	preloader string
	port      string
}

// connect dials opts.port directly if given, falling back to the
// orchestrator's own USB enumeration (which, per transport.USBEnumerator's
// documented limitation, only ever succeeds when the host environment also
// resolves Candidate.Path).
func connect(orch *boot.Orchestrator, opts globalOptions, mode boot.DeviceMode) (transport.Channel, error) {
	if opts.crash {
		if ch, err := connect(orch, globalOptions{port: opts.port}, boot.Preloader); err == nil {
			_ = boot.CrashToBootROM(ch)
			ch.Close()
		}
	}
	if opts.port != "" {
		return transport.SerialDialer(defaultBaud, defaultReadTimeout)(opts.port)
	}
	ch, err := orch.Connect(mode)
	if err != nil {
		return nil, curated.Errorf(ErrNoPort)
	}
	return ch, nil
}

func readFiles(paths []string) ([][]byte, error) {
	out := make([][]byte, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func runBoot(orch *boot.Orchestrator, opts globalOptions, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("boot", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var images stringList
	var addrs addrList
	fs.Var(&images, "i", "image to upload (repeatable)")
	fs.Var(&addrs, "u", "address to upload the matching -i image to (repeatable)")
	jump := fs.String("j", "", "override jump address (defaults to the first image's address)")
	mode := fs.String("m", "raw", "session mode: raw, lk or repl")
	lkMode := fs.String("lk-mode", "raw", "lk header parse mode: strict or raw")
	logPort := fs.Uint("log-port", 0, "uart log port for the lk boot argument")
	logBaud := fs.Uint("log-baud", 921600, "uart log baudrate for the lk boot argument")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(images) != len(addrs) {
		return curated.Errorf(ErrImageAddressMismatch, len(images), len(addrs))
	}

	data, err := readFiles(images)
	if err != nil {
		return err
	}

	bootImages := make([]boot.BootImage, len(data))
	for i := range data {
		bootImages[i] = boot.BootImage{Data: data[i], Address: addrs[i]}
	}

	sessionMode, err := parseSessionMode(*mode)
	if err != nil {
		return err
	}

	parseMode := lk.AssumeRawOnFailure
	if *lkMode == "strict" {
		parseMode = lk.StrictHeader
	}

	var jumpOverride *uint32
	if *jump != "" {
		addr, err := parseAddr(*jump)
		if err != nil {
			return err
		}
		jumpOverride = &addr
	}

	ch, err := connect(orch, opts, boot.Preloader)
	if err != nil {
		return err
	}
	defer ch.Close()

	conn := protocol.NewConn(ch)
	if err := conn.Handshake(); err != nil {
		return err
	}

	req := boot.BootRequest{
		Images:       bootImages,
		Mode:         sessionMode,
		JumpOverride: jumpOverride,
		LKMode:       parseMode,
		LogPort:      uint32(*logPort),
		LogBaudrate:  uint32(*logBaud),
	}
	return orch.RunBoot(conn, req)
}

func runDA(orch *boot.Orchestrator, opts globalOptions, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("da", flag.ContinueOnError)
	fs.SetOutput(stdout)

	daFile := fs.String("da", "", "download agent file")
	skipPatch := fs.Bool("skip-patch", false, "upload DA1 unmodified")
	exploitName := fs.String("exploit", "", "exploit recipe to run after the DA1 setup handshake")

	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := os.ReadFile(*daFile)
	if err != nil {
		return err
	}
	container, err := da.Parse(raw)
	if err != nil {
		return err
	}

	ch, err := connect(orch, opts, boot.BootROM)
	if err != nil {
		return err
	}
	defer ch.Close()

	hwCode, err := legacy.GetHwCode(ch)
	if err != nil {
		return err
	}

	var patches *patch.Catalog
	if !*skipPatch {
		patches = patch.NewDACatalog()
	}

	var recipe exploit.Recipe
	if *exploitName != "" {
		recipe, err = exploit.NewCatalog().Lookup(*exploitName)
		if err != nil {
			return err
		}
	}

	req := boot.DARequest{
		Raw:       raw,
		Container: container,
		HwCode:    hwCode,
		Patches:   patches,
		Exploit:   recipe,
	}
	return orch.RunDA(ch, req)
}

func parseSessionMode(s string) (boot.SessionMode, error) {
	switch s {
	case "raw":
		return boot.Raw, nil
	case "lk":
		return boot.LK, nil
	case "repl":
		return boot.REPL, nil
	default:
		return 0, curated.Errorf(ErrUnknownSessionMode, s)
	}
}

func parseAddr(s string) (uint32, error) {
	var addr uint32
	_, err := fmt.Sscanf(s, "0x%x", &addr)
	if err != nil {
		_, err = fmt.Sscanf(s, "%d", &addr)
	}
	return addr, err
}
