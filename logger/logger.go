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

package logger

import (
	"fmt"
	"io"
	"sync"
)

// Permission is consulted before an entry is recorded. It allows a caller to
// silence logging for a class of messages without the logger itself knowing
// anything about that class.
type Permission interface {
	AllowLogging() bool
}

// Allow is a Permission that always allows logging. Used for unconditional
// entries.
const Allow = allowPermission(true)

type allowPermission bool

// AllowLogging implements the Permission interface.
func (a allowPermission) AllowLogging() bool {
	return bool(a)
}

type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s\n", e.tag, e.detail)
}

// Log is a ring-buffered, capacity-bounded collection of log entries. The
// zero value is not usable; construct with NewLogger.
type Log struct {
	crit sync.Mutex

	capacity int
	entries  []entry
}

// NewLogger creates a Log that retains at most capacity entries, discarding
// the oldest entry once that capacity is exceeded.
func NewLogger(capacity int) *Log {
	if capacity <= 0 {
		capacity = 1
	}
	return &Log{capacity: capacity}
}

// Clear removes all entries from the log.
func (l *Log) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = nil
}

// detailString normalises the detail argument to a logger.Write()-friendly value
func detailString(detail interface{}) string {
	switch d := detail.(type) {
	case string:
		return d
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Log records a new entry, tagged with tag, if perm allows logging.
func (l *Log) Log(perm Permission, tag string, detail interface{}) {
	if perm == nil || !perm.AllowLogging() {
		return
	}

	l.crit.Lock()
	defer l.crit.Unlock()

	l.entries = append(l.entries, entry{tag: tag, detail: detailString(detail)})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Logf is like Log but formats detail with fmt.Sprintf.
func (l *Log) Logf(perm Permission, tag string, format string, args ...interface{}) {
	l.Log(perm, tag, fmt.Sprintf(format, args...))
}

// Write outputs every retained entry, oldest first, to w.
func (l *Log) Write(w io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()

	for _, e := range l.entries {
		io.WriteString(w, e.String())
	}
}

// Tail outputs the most recent n entries, oldest first, to w. Asking for
// more entries than exist, or zero entries, is not an error.
func (l *Log) Tail(w io.Writer, n int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if n <= 0 {
		return
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	for _, e := range l.entries[len(l.entries)-n:] {
		io.WriteString(w, e.String())
	}
}
