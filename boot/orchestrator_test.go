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
	"testing"
	"time"

	"github.com/mtkboot/core/boot"
	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/logger"
	"github.com/mtkboot/core/test"
	"github.com/mtkboot/core/transport"
)

type fakeChannel struct{}

func (fakeChannel) Read(p []byte) (int, error)  { return 0, nil }
func (fakeChannel) Write(p []byte) (int, error) { return len(p), nil }
func (fakeChannel) Close() error                { return nil }

type fakeEnumerator struct {
	candidates []transport.Candidate
	err        error
}

func (f fakeEnumerator) Find(vendor, product uint16) ([]transport.Candidate, error) {
	return f.candidates, f.err
}

func fakeDial(dialed *[]string) transport.Dialer {
	return func(path string) (transport.Channel, error) {
		*dialed = append(*dialed, path)
		return fakeChannel{}, nil
	}
}

func TestOrchestratorConnectSingleCandidate(t *testing.T) {
	enum := fakeEnumerator{candidates: []transport.Candidate{{Path: "/dev/mtk0"}}}
	var dialed []string
	o := boot.NewOrchestrator(enum, fakeDial(&dialed), logger.NewLogger(10))

	ch, err := o.Connect(boot.BootROM)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, dialed, []string{"/dev/mtk0"})
	test.ExpectSuccess(t, ch != nil)
}

func TestOrchestratorConnectNoCandidates(t *testing.T) {
	enum := fakeEnumerator{}
	var dialed []string
	o := boot.NewOrchestrator(enum, fakeDial(&dialed), logger.NewLogger(10))

	_, err := o.Connect(boot.Preloader)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Has(err, boot.ErrNoDevice), true)
}

func TestOrchestratorConnectMultipleCandidates(t *testing.T) {
	enum := fakeEnumerator{candidates: []transport.Candidate{{Path: "/dev/a"}, {Path: "/dev/b"}}}
	var dialed []string
	o := boot.NewOrchestrator(enum, fakeDial(&dialed), logger.NewLogger(10))

	_, err := o.Connect(boot.BootROM)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Has(err, boot.ErrMoreThanOneDevice), true)
	test.ExpectEquality(t, len(dialed), 0)
}

func TestOrchestratorConnectUnsupportedMode(t *testing.T) {
	enum := fakeEnumerator{}
	var dialed []string
	o := boot.NewOrchestrator(enum, fakeDial(&dialed), logger.NewLogger(10))

	_, err := o.Connect(boot.DA1)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Has(err, boot.ErrUnsupportedDeviceMode), true)
}

func TestOrchestratorReconnectSleeps(t *testing.T) {
	enum := fakeEnumerator{candidates: []transport.Candidate{{Path: "/dev/mtk0"}}}
	var dialed []string
	o := boot.NewOrchestrator(enum, fakeDial(&dialed), logger.NewLogger(10))

	var slept time.Duration
	o.Sleep = func(d time.Duration) { slept = d }

	_, err := o.Reconnect(boot.Preloader, 200*time.Millisecond)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, slept, 200*time.Millisecond)
}

func TestDeviceModeString(t *testing.T) {
	test.ExpectEquality(t, boot.BootROM.String(), "bootrom")
	test.ExpectEquality(t, boot.Preloader.String(), "preloader")
	test.ExpectEquality(t, boot.DA1.String(), "da1")
	test.ExpectEquality(t, boot.DA2.String(), "da2")
}

func TestSessionModeString(t *testing.T) {
	test.ExpectEquality(t, boot.Raw.String(), "raw")
	test.ExpectEquality(t, boot.LK.String(), "lk")
	test.ExpectEquality(t, boot.REPL.String(), "repl")
}
