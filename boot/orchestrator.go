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
	"time"

	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/logger"
	"github.com/mtkboot/core/transport"
)

// DeviceMode is which stage of the boot sequence the device is currently
// running (§4.7).
type DeviceMode int

// List of device modes.
const (
	BootROM DeviceMode = iota
	Preloader
	DA1
	DA2
)

// String implements fmt.Stringer.
func (m DeviceMode) String() string {
	switch m {
	case BootROM:
		return "bootrom"
	case Preloader:
		return "preloader"
	case DA1:
		return "da1"
	case DA2:
		return "da2"
	default:
		return "unknown"
	}
}

// SessionMode is what kind of session the orchestrator drives once the
// framed RPC protocol is live (§4.7).
type SessionMode int

// List of session modes.
const (
	Raw SessionMode = iota
	LK
	REPL
)

// String implements fmt.Stringer.
func (m SessionMode) String() string {
	switch m {
	case Raw:
		return "raw"
	case LK:
		return "lk"
	case REPL:
		return "repl"
	default:
		return "unknown"
	}
}

// error sentinels, reported via curated.Errorf and recognised with
// curated.Is.
const (
	ErrTransportIO           = "boot: transport error during %s: %v"
	ErrMoreThanOneDevice     = "boot: more than one candidate device for mode %s"
	ErrNoDevice              = "boot: no candidate device for mode %s"
	ErrUnsupportedDeviceMode = "boot: mode %s is not USB-enumerable"
)

// Orchestrator drives the state machine described in §4.7. It holds no
// device-mode state of its own between steps - each exported method takes
// the Channel or Conn it needs and returns once that step is done,
// mirroring the spec's "any transport error aborts the current step"
// failure semantics (no hidden retry, no background reconnect loop).
type Orchestrator struct {
	Enumerator transport.Enumerator
	Dial       transport.Dialer
	Log        *logger.Log
	Profiles   *ProfileStore

	// Sleep is called between reconnects (100-500ms per §5); overridden in
	// tests to avoid actually sleeping.
	Sleep func(time.Duration)
}

// NewOrchestrator returns an Orchestrator wired to enum/dial for device
// discovery and connection, logging every step's outcome to log.
func NewOrchestrator(enum transport.Enumerator, dial transport.Dialer, log *logger.Log) *Orchestrator {
	return &Orchestrator{
		Enumerator: enum,
		Dial:       dial,
		Log:        log,
		Profiles:   NewProfileStore(),
		Sleep:      time.Sleep,
	}
}

func (o *Orchestrator) ok(step string) {
	o.Log.Logf(logger.Allow, "boot", "ok: %s", step)
}

func (o *Orchestrator) fail(step string, err error) error {
	o.Log.Logf(logger.Allow, "boot", "failed: %s: %v", step, err)
	return err
}

func productFor(mode DeviceMode) (uint16, error) {
	switch mode {
	case BootROM:
		return transport.ProductBootROM, nil
	case Preloader:
		return transport.ProductPreloader, nil
	default:
		return 0, curated.Errorf(ErrUnsupportedDeviceMode, mode)
	}
}

// Connect enumerates devices matching mode's vendor/product pair and opens
// exactly one of them (§4.7). Finding anything other than exactly one
// candidate is a failure: zero is ErrNoDevice, more than one is
// ErrMoreThanOneDevice.
func (o *Orchestrator) Connect(mode DeviceMode) (transport.Channel, error) {
	product, err := productFor(mode)
	if err != nil {
		return nil, o.fail("connect", err)
	}

	candidates, err := o.Enumerator.Find(transport.VendorID, product)
	if err != nil {
		return nil, o.fail("connect", err)
	}
	switch len(candidates) {
	case 0:
		return nil, o.fail("connect", curated.Errorf(ErrNoDevice, mode))
	case 1:
		// fall through
	default:
		return nil, o.fail("connect", curated.Errorf(ErrMoreThanOneDevice, mode))
	}

	ch, err := o.Dial(candidates[0].Path)
	if err != nil {
		return nil, o.fail("connect", err)
	}
	o.ok("connect (" + mode.String() + ")")
	return ch, nil
}

// Reconnect sleeps the orchestrator's reconnect delay and then Connects as
// mode, mirroring the 100-500ms gap §5 describes across reconnects.
func (o *Orchestrator) Reconnect(mode DeviceMode, delay time.Duration) (transport.Channel, error) {
	o.Sleep(delay)
	return o.Connect(mode)
}
