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

package schema

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/eqdsk/fortran"
)

var (
	sizeField  = Field{Name: "n", Default: SizeOf("arr")}
	arrayField = Field{Name: "arr", Default: LengthOf("n")}
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		setup func(d *Document)
		want  Item
	}{
		{
			name:  "present",
			field: Field{Name: "x", Default: Float(2)},
			setup: func(d *Document) { d.SetFloat("x", 5) },
			want:  Item{Values: []fortran.Value{fortran.Real(5)}},
		},
		{
			name:  "constant",
			field: Field{Name: "x", Default: Float(2)},
			setup: func(d *Document) {},
			want:  Item{Values: []fortran.Value{fortran.Real(2)}},
		},
		{
			name:  "length of absent",
			field: arrayField,
			setup: func(d *Document) {},
			want:  Item{Values: []fortran.Value{}, Shape: []int{0}},
		},
		{
			name:  "length of present",
			field: arrayField,
			setup: func(d *Document) { d.SetInt("n", 3) },
			want:  Item{Values: fortran.Reals([]float64{0, 0, 0}), Shape: []int{3}},
		},
		{
			name:  "size of absent",
			field: sizeField,
			setup: func(d *Document) {},
			want:  Item{Values: []fortran.Value{fortran.Int(0)}},
		},
		{
			name:  "size of present",
			field: sizeField,
			setup: func(d *Document) { d.SetFloats("arr", []float64{1, 2}) },
			want:  Item{Values: []fortran.Value{fortran.Int(2)}},
		},
		{
			name:  "matching pair",
			field: arrayField,
			setup: func(d *Document) {
				d.SetInt("n", 2)
				d.SetFloats("arr", []float64{1, 2})
			},
			want: Item{Values: fortran.Reals([]float64{1, 2}), Shape: []int{2}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := NewDocument(nil)
			test.setup(d)
			have, err := Resolve(test.field, d)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(have, test.want) {
				t.Errorf("%v", pretty.Diff(have, test.want))
			}
		})
	}
}

func TestResolve_errors(t *testing.T) {
	d := NewDocument(nil)
	if _, err := Resolve(Field{Name: "x"}, d); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing: have %v", err)
	}

	d.SetInt("n", 3)
	d.SetFloats("arr", []float64{1, 2})
	if _, err := Resolve(arrayField, d); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("array: have %v", err)
	}
	if _, err := Resolve(sizeField, d); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("size: have %v", err)
	}

	d = NewDocument(nil)
	d.SetFloats("n", []float64{1, 2})
	if _, err := Resolve(arrayField, d); !errors.Is(err, ErrWrongKind) {
		t.Errorf("array size: have %v", err)
	}
	d.SetInt("n", -1)
	if _, err := Resolve(arrayField, d); !errors.Is(err, ErrWrongKind) {
		t.Errorf("negative size: have %v", err)
	}
}

// Resolving does not change the document or share its storage.
func TestResolve_copy(t *testing.T) {
	d := NewDocument(nil)
	d.SetFloats("arr", []float64{1, 2})
	it, err := Resolve(arrayField, d)
	if err != nil {
		t.Fatal(err)
	}
	it.Values[0] = fortran.Real(100)
	if x, _ := d.Floats("arr"); x[0] != 1 {
		t.Errorf("document was modified: %v", x)
	}
}

func TestCatalog_Trim(t *testing.T) {
	c := &Catalog{Name: "trailing"}
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		c.Fields = append(c.Fields, Field{Name: n, Default: Float(0)})
	}
	tests := []struct {
		present []string
		align   int
		want    int
	}{
		{nil, 4, 0},
		{[]string{"a"}, 4, 4},
		{[]string{"b", "e"}, 4, 8},
		{[]string{"d"}, 4, 4},
		{[]string{"i"}, 4, 10},
		{[]string{"e"}, 1, 5},
		{[]string{"e"}, 0, 5},
	}
	for _, test := range tests {
		d := NewDocument(nil)
		for _, n := range test.present {
			d.SetFloat(n, 1)
		}
		if have := c.Trim(d, test.align); len(have) != test.want {
			t.Errorf("%v align %d: have %d fields, want %d", test.present, test.align, len(have), test.want)
		}
	}
}

func TestCatalog_Values(t *testing.T) {
	c := &Catalog{Name: "block", Fields: []Field{
		{Name: "a", Default: Float(1)},
		{Name: "b", Default: Float(2)},
		{Name: "c", Default: Constant(fortran.Str("x"))},
	}}
	d := NewDocument(nil)
	d.SetFloat("b", 5)
	have, err := c.Values(d)
	if err != nil {
		t.Fatal(err)
	}
	want := []fortran.Value{fortran.Real(1), fortran.Real(5), fortran.Str("x")}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("%v", pretty.Diff(have, want))
	}
	if !c.AnyPresent(d) {
		t.Error("b is present")
	}
	if c.AnyPresent(NewDocument(nil)) {
		t.Error("nothing is present")
	}

	d.SetFloats("a", []float64{1, 2})
	if _, err := c.Values(d); !errors.Is(err, ErrWrongKind) {
		t.Errorf("have %v, want ErrWrongKind", err)
	}
}

func TestAssign(t *testing.T) {
	c := &Catalog{Fields: []Field{{Name: "a"}, {Name: "b"}}}
	d := NewDocument(nil)
	if n := Assign(d, c.Fields, fortran.Reals([]float64{1, 2, 3})); n != 2 {
		t.Errorf("assigned %d, want 2", n)
	}
	if x, _ := d.Float("b"); x != 2 {
		t.Errorf("b = %g", x)
	}
	if n := Assign(NewDocument(nil), c.Fields, fortran.Reals([]float64{1})); n != 1 {
		t.Errorf("assigned %d, want 1", n)
	}
}
