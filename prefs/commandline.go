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

package prefs

import (
	"sort"
	"strings"
	"sync"
)

// the command line stack allows the CLI layer to push a group of ad-hoc
// "key::value" preference overrides (eg. "--preloader" staging addresses)
// that take precedence over the persisted Disk values for the duration of a
// single command, without the prefs package needing to know anything about
// flag parsing.
var (
	clMu    sync.Mutex
	clStack []map[string]string
)

// PushCommandLineStack parses s as a semicolon-separated list of
// "key::value" pairs and pushes them as a new group onto the stack. Tokens
// that don't contain "::" are dropped; if every token in s is invalid,
// nothing is pushed.
func PushCommandLineStack(s string) {
	clMu.Lock()
	defer clMu.Unlock()

	m := make(map[string]string)
	for _, tok := range strings.Split(s, ";") {
		tok = strings.TrimSpace(tok)
		parts := strings.SplitN(tok, "::", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		if k == "" {
			continue
		}
		m[k] = strings.TrimSpace(parts[1])
	}

	if len(m) == 0 {
		return
	}
	clStack = append(clStack, m)
}

// PopCommandLineStack removes and returns the most recently pushed group, as
// a canonical "key::value; key::value" string sorted by key. Returns the
// empty string if the stack is empty.
func PopCommandLineStack() string {
	clMu.Lock()
	defer clMu.Unlock()

	if len(clStack) == 0 {
		return ""
	}

	m := clStack[len(clStack)-1]
	clStack = clStack[:len(clStack)-1]

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"::"+m[k])
	}
	return strings.Join(parts, "; ")
}

// GetCommandLinePref looks up key in the group currently on top of the
// stack. The bool result is false if the stack is empty or key is not
// present in the top group.
func GetCommandLinePref(key string) (bool, string) {
	clMu.Lock()
	defer clMu.Unlock()

	if len(clStack) == 0 {
		return false, ""
	}
	m := clStack[len(clStack)-1]
	v, ok := m[key]
	return ok, v
}
