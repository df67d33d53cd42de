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

package test

import (
	"math"
	"reflect"
	"testing"
)

// ExpectFailure checks that v represents a failure. v may be a bool (false is
// a failure) or an error (non-nil is a failure).
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()

	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("expected failure but got success")
		}
	case error:
		if v == nil {
			t.Errorf("expected failure but got success")
		}
	default:
		t.Errorf("unsupported type (%T) in call to ExpectFailure", v)
	}
}

// ExpectSuccess checks that v represents a success. v may be a bool (true is
// success), a nil error, or untyped nil.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()

	if v == nil {
		return
	}

	switch v := v.(type) {
	case bool:
		if !v {
			t.Errorf("expected success but got failure")
		}
	case error:
		if v != nil {
			t.Errorf("expected success but got error: %s", v)
		}
	default:
		t.Errorf("unsupported type (%T) in call to ExpectSuccess", v)
	}
}

// ExpectEquality checks that a and b are equal, as defined by
// reflect.DeepEqual.
func ExpectEquality(t *testing.T, a interface{}, b interface{}) {
	t.Helper()

	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected equality: %v != %v", a, b)
	}
}

// Equate is a historical alias for ExpectEquality, kept for older tests that
// still call it by that name.
func Equate(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	ExpectEquality(t, a, b)
}

// ExpectInequality checks that a and b are not equal, as defined by
// reflect.DeepEqual.
func ExpectInequality(t *testing.T, a interface{}, b interface{}) {
	t.Helper()

	if reflect.DeepEqual(a, b) {
		t.Errorf("expected inequality: %v == %v", a, b)
	}
}

// ExpectApproximate checks that a and b are within tolerance of each other.
func ExpectApproximate(t *testing.T, a float64, b float64, tolerance float64) {
	t.Helper()

	if math.Abs(a-b) > tolerance {
		t.Errorf("expected approximate equality: %v !~ %v (tolerance %v)", a, b, tolerance)
	}
}
