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

package modalflag

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ParseResult is returned by Modes.Parse() to tell the caller what it should
// do next.
type ParseResult int

// List of ParseResult values.
const (
	ParseContinue ParseResult = iota
	ParseHelp
)

// Modes wraps a flag.FlagSet with an optional single level of named
// sub-modes.
type Modes struct {
	// Output receives help text. Required.
	Output io.Writer

	fs       *flag.FlagSet
	args     []string
	remain   []string
	subModes []string
	mode     string
	path     string
}

func (md *Modes) flagSet() *flag.FlagSet {
	if md.fs == nil {
		md.fs = flag.NewFlagSet("", flag.ContinueOnError)
		md.fs.SetOutput(io.Discard)
	}
	return md.fs
}

// NewArgs resets the argument list to be parsed.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.remain = nil
	md.mode = ""
	md.path = ""
}

// AddBool registers a boolean flag, in the manner of flag.Bool.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flagSet().Bool(name, value, usage)
}

// AddString registers a string flag, in the manner of flag.String.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flagSet().String(name, value, usage)
}

// AddSubModes registers the available sub-modes. The first entry is the
// default, selected when the caller does not name one explicitly.
func (md *Modes) AddSubModes(modes ...string) {
	md.subModes = modes
}

// Mode returns the sub-mode selected by the most recent Parse(), or the empty
// string if no sub-modes are registered.
func (md *Modes) Mode() string {
	return md.mode
}

// Path returns the full sub-mode path selected by the most recent Parse().
// Since only a single level of sub-modes is supported, this is currently
// identical to Mode().
func (md *Modes) Path() string {
	return md.path
}

// RemainingArgs returns the arguments left over after flag and sub-mode
// parsing.
func (md *Modes) RemainingArgs() []string {
	return md.remain
}

func (md *Modes) isHelpRequest() bool {
	for _, a := range md.args {
		switch a {
		case "-help", "--help", "-h":
			return true
		}
	}
	return false
}

func (md *Modes) writeHelp() {
	var flagsBuf bytes.Buffer
	hasFlags := false
	md.flagSet().VisitAll(func(*flag.Flag) { hasFlags = true })
	if hasFlags {
		md.fs.SetOutput(&flagsBuf)
		md.fs.PrintDefaults()
		md.fs.SetOutput(io.Discard)
	}

	var modesBuf bytes.Buffer
	if len(md.subModes) > 0 {
		fmt.Fprintf(&modesBuf, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(&modesBuf, "    default: %s\n", md.subModes[0])
	}

	flagsStr := flagsBuf.String()
	modesStr := modesBuf.String()

	if flagsStr == "" && modesStr == "" {
		io.WriteString(md.Output, "No help available\n")
		return
	}

	out := "Usage:\n"
	out += flagsStr
	if flagsStr != "" && modesStr != "" {
		out += "\n"
	}
	out += modesStr

	io.WriteString(md.Output, out)
}

// Parse parses the arguments supplied to NewArgs. A ParseHelp result means
// help text has already been written to Output and the caller should stop;
// a ParseContinue result means parsing succeeded and the caller may proceed.
func (md *Modes) Parse() (ParseResult, error) {
	if md.isHelpRequest() {
		md.writeHelp()
		return ParseHelp, nil
	}

	fs := md.flagSet()
	if err := fs.Parse(md.args); err != nil {
		return ParseHelp, err
	}

	md.remain = fs.Args()

	if len(md.subModes) > 0 {
		md.mode = md.subModes[0]
		if len(md.remain) > 0 {
			for _, m := range md.subModes {
				if m == md.remain[0] {
					md.mode = m
					md.remain = md.remain[1:]
					break
				}
			}
		}
		md.path = md.mode
	}

	return ParseContinue, nil
}
