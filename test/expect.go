// This file is part of Spindle.
//
// Spindle is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Spindle is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Spindle.  If not, see <https://www.gnu.org/licenses/>.

package test

import "testing"

// ExpectEquality is used to test equality between one value and another.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is the inverse of ExpectEquality.
func ExpectInequality[T comparable](t *testing.T, v T, unexpectedValue T) bool {
	t.Helper()
	if v == unexpectedValue {
		t.Errorf("inequality test of type %T failed: '%v' does equal '%v'", v, v, unexpectedValue)
		return false
	}
	return true
}

// expect tests argument v for a success condition suitable for its type.
// supported types are bool and error:
//
//	bool  -> bool == true
//	error -> error == nil
func expect(t *testing.T, v any, success bool) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		if v != success {
			return false
		}
	case error:
		if (v == nil) != success {
			return false
		}
	case nil:
		if !success {
			return false
		}
	default:
		t.Fatalf("unsupported type (%T) for expectation testing", v)
		return false
	}

	return true
}

// ExpectSuccess tests argument v for a success condition suitable for its
// type. See expect() for the definition of success.
func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()
	if !expect(t, v, true) {
		t.Errorf("a success value of type %T is expected", v)
		return false
	}
	return true
}

// ExpectFailure tests argument v for a failure condition suitable for its
// type. See expect() for the definition of success.
func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()
	if !expect(t, v, false) {
		t.Errorf("a failure value of type %T is expected", v)
		return false
	}
	return true
}

// DemandEquality is used to test equality between one value and another. If
// the test fails it is a testing fatality.
//
// This is particularly useful if the values being tested are used in further
// tests and so must be correct.
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T) {
	t.Helper()
	if v != expectedValue {
		t.Fatalf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expectedValue)
	}
}

// DemandSuccess is the demanding version of ExpectSuccess.
func DemandSuccess(t *testing.T, v any) {
	t.Helper()
	if !expect(t, v, true) {
		t.Fatalf("a success value is demanded for type %T", v)
	}
}
