/*
Copyright © 2019 the eqdsk authors.
This file is part of eqdsk.

eqdsk is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

eqdsk is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with eqdsk.  If not, see <http://www.gnu.org/licenses/>.
*/

package fortran

import (
	"math"
	"strconv"
)

// Kind is the type of data held in a cell or a Value.
type Kind int

// The kinds of data understood by the codec.
const (
	Invalid Kind = iota
	Integer
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a single integer, float or string read from or written to a cell.
// The zero Value has kind Invalid.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: Integer, i: i} }

// Real returns a floating point Value.
func Real(f float64) Value { return Value{kind: Float, f: f} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: String, s: s} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns v as an integer. Floats are truncated toward zero and
// strings give zero.
func (v Value) AsInt() int64 {
	switch v.kind {
	case Integer:
		return v.i
	case Float:
		return int64(v.f)
	}
	return 0
}

// AsFloat returns v as a float. Integers are converted and strings give zero.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case Integer:
		return float64(v.i)
	case Float:
		return v.f
	}
	return 0
}

// AsString returns the string held by v, or "" if v is not a string.
func (v Value) AsString() string {
	if v.kind == String {
		return v.s
	}
	return ""
}

// IsNumeric reports whether v is an integer or a float.
func (v Value) IsNumeric() bool { return v.kind == Integer || v.kind == Float }

// isIntegral reports whether v holds a whole number that fits in an int64.
func (v Value) isIntegral() bool {
	switch v.kind {
	case Integer:
		return true
	case Float:
		return v.f == math.Trunc(v.f) && math.Abs(v.f) < math.MaxInt64
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return strconv.Quote(v.s)
	}
	return "<invalid>"
}

// Reals wraps x as float Values.
func Reals(x []float64) []Value {
	o := make([]Value, len(x))
	for i, f := range x {
		o[i] = Real(f)
	}
	return o
}

// Ints wraps x as integer Values.
func Ints(x []int) []Value {
	o := make([]Value, len(x))
	for i, n := range x {
		o[i] = Int(int64(n))
	}
	return o
}

// Floats returns the numeric contents of vals.
func Floats(vals []Value) []float64 {
	o := make([]float64, len(vals))
	for i, v := range vals {
		o[i] = v.AsFloat()
	}
	return o
}
