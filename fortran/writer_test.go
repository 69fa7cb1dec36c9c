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
	"bytes"
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestWriteArray(t *testing.T) {
	tests := []struct {
		vals []Value
		spec string
		want string
	}{
		{Ints([]int{123, 456, 789}), "(i3)", "123\n456\n789\n"},
		{Ints([]int{123, 456, 789}), "(3i3)", "123456789\n"},
		{[]Value{Int(1), Real(-1.5), Real(2.1)}, "(2e9.2)", " 0.10E+01-0.15E+01\n 0.21E+01\n"},
		{nil, "(3i3)", ""},
	}
	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			var b bytes.Buffer
			if err := NewWriter(&b).WriteArray(test.vals, MustParseFormat(test.spec)); err != nil {
				t.Fatal(err)
			}
			if b.String() != test.want {
				t.Errorf("have %q, want %q", b.String(), test.want)
			}
		})
	}
}

func TestWriteDense(t *testing.T) {
	a, err := Reshape([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	w := NewWriter(&b)
	if err := w.WriteDense(a, MustParseFormat("(3i1)")); err != nil {
		t.Fatal(err)
	}
	if want := "012\n345\n67\n"; b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
	if w.Line() != 3 {
		t.Errorf("line: have %d, want 3", w.Line())
	}
}

func TestWriteRecord_badFormat(t *testing.T) {
	var b bytes.Buffer
	err := NewWriter(&b).WriteRecord([]Value{Str("hello"), Str("world")}, MustParseFormat("(i6)"))
	if !errors.Is(err, ErrRecordFormatMismatch) {
		t.Errorf("have %v, want ErrRecordFormatMismatch", err)
	}
	if b.Len() != 0 {
		t.Errorf("wrote %q after an error", b.String())
	}
}

func TestWriteLine(t *testing.T) {
	var b bytes.Buffer
	w := NewWriter(&b)
	for _, s := range []string{"a", "b\n", ""} {
		if err := w.WriteLine(s); err != nil {
			t.Fatal(err)
		}
	}
	if want := "a\nb\n\n"; b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}

func TestWriteReadFloats(t *testing.T) {
	x := []float64{3.14159265358979, -2.718281828459045, 1e-10, 6.02e23, 0, -0, 42}
	f := MustParseFormat("(4e16.9)")
	var b bytes.Buffer
	if err := NewWriter(&b).WriteFloats(x, f); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(b.String(), "\n"); n != 2 {
		t.Errorf("have %d lines, want 2", n)
	}
	have, err := NewReader(&b).ReadFloats(f, len(x))
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(have, x, 1e-8) {
		t.Errorf("have %v, want %v", have, x)
	}
}
