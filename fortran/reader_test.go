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
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gonum.org/v1/gonum/floats"
)

func TestReadRecord(t *testing.T) {
	r := NewReader(strings.NewReader("hello world!\n"))
	vals, err := r.ReadRecord(MustParseFormat("(2a6)"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Value{Str("hello "), Str("world!")}
	if !reflect.DeepEqual(vals, want) {
		t.Errorf("%v", pretty.Diff(vals, want))
	}
	if r.Line() != 1 {
		t.Errorf("line: have %d, want 1", r.Line())
	}
	if _, err := r.ReadRecord(MustParseFormat("(i6)")); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("have %v, want ErrUnexpectedEOF", err)
	}
}

func TestReadRecord_badFormat(t *testing.T) {
	r := NewReader(strings.NewReader("hello world!\n"))
	if _, err := r.ReadRecord(MustParseFormat("(i6)")); !errors.Is(err, ErrRecordFormatMismatch) {
		t.Errorf("have %v, want ErrRecordFormatMismatch", err)
	}
}

func TestReadArray(t *testing.T) {
	tests := []struct {
		data string
		spec string
		req  Request
		want []float64
	}{
		{"123\n456\n789\n", "(i3)", Fixed(3), []float64{123, 456, 789}},
		{"123456789\n", "(3i3)", Fixed(3), []float64{123, 456, 789}},
		{" 0.10E+01-0.15E+01\n 0.21E+01\n", "(2e9.2)", Fixed(3), []float64{1, -1.5, 2.1}},
		{"012\n345\n67\n", "(3i1)", Shape(2, 4), []float64{0, 1, 2, 3, 4, 5, 6, 7}},
		{"  7\n", "(i3)", Scalar(), []float64{7}},
		{"012\n345\n67\n", "(3i1)", UntilEnd(), []float64{0, 1, 2, 3, 4, 5, 6, 7}},
		{"", "(3i1)", UntilEnd(), nil},
		{"", "(3i1)", Fixed(0), nil},
		{"1 3\n", "(3i1)", Fixed(3), []float64{1, 0, 3}},
		{"   1   2   3    \n   9\n", "(4i4)", Fixed(5), []float64{1, 2, 3, 0, 9}},
		{"   1    \n   9\n", "(4i4)", Fixed(2), []float64{1, 9}},
	}
	for _, test := range tests {
		t.Run(test.data+test.req.String(), func(t *testing.T) {
			r := NewReader(strings.NewReader(test.data))
			vals, err := r.ReadArray(test.req, MustParseFormat(test.spec))
			if err != nil {
				t.Fatal(err)
			}
			have := Floats(vals)
			if len(have) != len(test.want) || !floats.Equal(have, test.want) {
				t.Errorf("have %v, want %v", have, test.want)
			}
		})
	}
}

func TestReadArray_hangingValues(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewReader(strings.NewReader("123\n456\n789\n"))
	r.Log = logger
	vals, err := r.ReadArray(Fixed(8), MustParseFormat("(3i1)"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 2, 3, 4, 5, 6, 7, 8}; !floats.Equal(Floats(vals), want) {
		t.Errorf("have %v, want %v", Floats(vals), want)
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("have %d log entries, want 1", len(hook.Entries))
	}
	e := hook.LastEntry()
	if e.Level != logrus.WarnLevel {
		t.Errorf("level: have %v, want warning", e.Level)
	}
	if e.Data["discarded"] != 1 || e.Data["line"] != 3 {
		t.Errorf("fields: %v", e.Data)
	}
}

func TestReadArray_errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		spec string
		req  Request
		want error
	}{
		{"empty", "", "(i6)", Fixed(5), ErrUnexpectedEOF},
		{"short", "012\n345\n", "(3i1)", Fixed(8), ErrUnexpectedEOF},
		{"bad cell", " 0.10E+05-0.56E-02\n", "(3i3)", Fixed(3), ErrRecordFormatMismatch},
		{"bad cell until end", "123\nabc\n", "(3i1)", UntilEnd(), ErrRecordFormatMismatch},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(test.data))
			_, err := r.ReadArray(test.req, MustParseFormat(test.spec))
			if !errors.Is(err, test.want) {
				t.Errorf("have %v, want %v", err, test.want)
			}
		})
	}
	r := NewReader(strings.NewReader("123\n"))
	if _, err := r.ReadArray(Shape(2, -1), MustParseFormat("(3i1)")); err == nil {
		t.Error("expected an error for a negative dimension")
	}
}

// Reading a shape and flattening it gives the same values as a flat read.
func TestReadDense_columnMajor(t *testing.T) {
	const data = " 0.10E+01 0.20E+01 0.30E+01\n 0.40E+01 0.50E+01 0.60E+01\n"
	f := MustParseFormat("(3e9.2)")

	a, err := NewReader(strings.NewReader(data)).ReadDense(f, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := NewReader(strings.NewReader(data)).ReadFloats(f, 6)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(Flatten(a), flat) {
		t.Errorf("have %v, want %v", Flatten(a), flat)
	}
	// The first index varies fastest.
	if a.Get(1, 0) != 2 || a.Get(0, 1) != 3 || a.Get(1, 2) != 6 {
		t.Errorf("unexpected layout: %v", a.Elements)
	}
}

func TestReshape(t *testing.T) {
	a, err := Reshape([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Row-major storage of the column-major input.
	want := []float64{0, 2, 4, 6, 1, 3, 5, 7}
	if !floats.Equal(a.Elements, want) {
		t.Errorf("have %v, want %v", a.Elements, want)
	}
	if _, err := Reshape([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Error("expected a size error")
	}
	s, err := Reshape([]float64{4})
	if err != nil {
		t.Fatal(err)
	}
	if s.Get() != 4 {
		t.Errorf("scalar: have %g", s.Get())
	}
}
