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
	"fmt"
	"strconv"
	"strings"
)

// Value is the type of anything that can be assigned to a preference. In
// practice this is a bool, a string, a number, or whatever a Generic
// preference's setter function chooses to accept.
type Value interface{}

// settable is the interface a Disk requires of anything registered with
// Add().
type settable interface {
	Set(Value) error
	String() string
}

// Bool is a boolean preference value.
type Bool struct {
	v bool
}

// Set implements the settable interface.
func (b *Bool) Set(i Value) error {
	switch t := i.(type) {
	case bool:
		b.v = t
	case string:
		b.v = strings.EqualFold(t, "true")
	default:
		return fmt.Errorf("prefs: unsupported value type (%T) for Bool", i)
	}
	return nil
}

// String implements the settable interface.
func (b *Bool) String() string {
	if b.v {
		return "true"
	}
	return "false"
}

// Get returns the current value.
func (b *Bool) Get() bool {
	return b.v
}

// String is a string preference value, optionally length-limited.
type String struct {
	v      string
	maxLen int
}

// Set implements the settable interface.
func (s *String) Set(i Value) error {
	v, ok := i.(string)
	if !ok {
		return fmt.Errorf("prefs: unsupported value type (%T) for String", i)
	}
	if s.maxLen > 0 && len(v) > s.maxLen {
		v = v[:s.maxLen]
	}
	s.v = v
	return nil
}

// String implements the settable interface.
func (s *String) String() string {
	return s.v
}

// SetMaxLen limits the string to at most n bytes, cropping the current value
// immediately. A limit of zero removes the limit without affecting any
// already-cropped value.
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	if n > 0 && len(s.v) > n {
		s.v = s.v[:n]
	}
}

// Int is an integer preference value.
type Int struct {
	v int
}

// Set implements the settable interface.
func (n *Int) Set(i Value) error {
	switch t := i.(type) {
	case int:
		n.v = t
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return fmt.Errorf("prefs: cannot parse %q as Int", t)
		}
		n.v = v
	default:
		return fmt.Errorf("prefs: unsupported value type (%T) for Int", i)
	}
	return nil
}

// String implements the settable interface.
func (n *Int) String() string {
	return strconv.Itoa(n.v)
}

// Get returns the current value.
func (n *Int) Get() int {
	return n.v
}

// Float is a floating point preference value.
type Float struct {
	v float64
}

// Set implements the settable interface.
func (f *Float) Set(i Value) error {
	switch t := i.(type) {
	case float64:
		f.v = t
	case float32:
		f.v = float64(t)
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return fmt.Errorf("prefs: cannot parse %q as Float", t)
		}
		f.v = v
	default:
		return fmt.Errorf("prefs: unsupported value type (%T) for Float", i)
	}
	return nil
}

// String implements the settable interface.
func (f *Float) String() string {
	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

// Get returns the current value.
func (f *Float) Get() float64 {
	return f.v
}

// Generic adapts an arbitrary pair of set/get functions to the settable
// interface, for preferences whose representation doesn't fit Bool, String,
// Int or Float.
type Generic struct {
	set func(Value) error
	get func() Value
}

// NewGeneric creates a Generic preference value from a setter and getter.
func NewGeneric(set func(Value) error, get func() Value) *Generic {
	return &Generic{set: set, get: get}
}

// Set implements the settable interface.
func (g *Generic) Set(i Value) error {
	return g.set(i)
}

// String implements the settable interface.
func (g *Generic) String() string {
	return fmt.Sprintf("%v", g.get())
}
