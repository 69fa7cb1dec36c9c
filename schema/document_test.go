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
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ctessum/unit"
	"github.com/kr/pretty"
	"github.com/spatialmodel/eqdsk/fortran"
	"gonum.org/v1/gonum/floats"
)

func TestDocument_aliases(t *testing.T) {
	d := NewDocument(Aliases{"simag": "simagx", "psirz": "psi"})
	d.SetFloat("simag", 1.5)
	if x, err := d.Float("simagx"); err != nil || x != 1.5 {
		t.Errorf("canonical lookup: %g, %v", x, err)
	}
	if !d.Has("simag") || !d.Has("simagx") {
		t.Error("both names should be present")
	}
	if !reflect.DeepEqual(d.Names(), []string{"simagx"}) {
		t.Errorf("names: %v", d.Names())
	}
	if have := d.Aliases().Of("psi"); !reflect.DeepEqual(have, []string{"psirz"}) {
		t.Errorf("aliases of psi: %v", have)
	}
	d.Delete("simag")
	if d.Has("simagx") {
		t.Error("delete through an alias failed")
	}
}

func TestDocument_accessors(t *testing.T) {
	d := NewDocument(nil)
	d.SetInt("nx", 3)
	d.SetString("limloc", "SNB")
	d.SetFloats("fpol", []float64{1, 2, 3})

	if x, err := d.Float("nx"); err != nil || x != 3 {
		t.Errorf("Float(nx) = %g, %v", x, err)
	}
	if s, err := d.Text("limloc"); err != nil || s != "SNB" {
		t.Errorf("Text(limloc) = %q, %v", s, err)
	}
	if _, err := d.Int("limloc"); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Int(limloc): %v", err)
	}
	if _, err := d.Text("nx"); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Text(nx): %v", err)
	}
	if _, err := d.Float("fpol"); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Float(fpol): %v", err)
	}
	if _, err := d.Floats("nx"); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Floats(nx): %v", err)
	}
	if _, err := d.Floats("absent"); !errors.Is(err, ErrMissingField) {
		t.Errorf("Floats(absent): %v", err)
	}
	if d.Len("fpol") != 3 || d.Len("absent") != 0 {
		t.Errorf("Len: %d, %d", d.Len("fpol"), d.Len("absent"))
	}
	if err := d.SetArray("psi", fortran.Reals([]float64{1, 2, 3}), 2, 2); err == nil {
		t.Error("SetArray accepted a short array")
	}
}

func TestDocument_dense(t *testing.T) {
	d := NewDocument(nil)
	if err := d.SetArray("psi", fortran.Reals([]float64{0, 1, 2, 3, 4, 5}), 2, 3); err != nil {
		t.Fatal(err)
	}
	a, err := d.Dense("psi")
	if err != nil {
		t.Fatal(err)
	}
	if a.Get(1, 0) != 1 || a.Get(0, 2) != 4 {
		t.Errorf("unexpected layout %v", a.Elements)
	}
	d.SetDense("copy", a)
	it, _ := d.Get("copy")
	if !reflect.DeepEqual(it.Shape, []int{2, 3}) || !floats.Equal(it.Floats(), []float64{0, 1, 2, 3, 4, 5}) {
		t.Errorf("%v", pretty.Sprint(it))
	}
}

func TestDocument_Clone(t *testing.T) {
	d := NewDocument(nil)
	d.SetFloats("fpol", []float64{1, 2})
	c := d.Clone()
	c.SetFloat("extra", 1)
	it, _ := c.Get("fpol")
	it.Values[0] = fortran.Real(10)
	if d.Has("extra") {
		t.Error("clone shares keys")
	}
	if x, _ := d.Floats("fpol"); x[0] != 1 {
		t.Error("clone shares values")
	}
}

func TestDocument_SetAny(t *testing.T) {
	tests := []struct {
		v    interface{}
		want Item
	}{
		{int64(3), Item{Values: []fortran.Value{fortran.Int(3)}}},
		{2.5, Item{Values: []fortran.Value{fortran.Real(2.5)}}},
		{float32(0.5), Item{Values: []fortran.Value{fortran.Real(0.5)}}},
		{json.Number("1.25"), Item{Values: []fortran.Value{fortran.Real(1.25)}}},
		{"DN", Item{Values: []fortran.Value{fortran.Str("DN")}}},
		{[]float64{1, 2}, Item{Values: fortran.Reals([]float64{1, 2}), Shape: []int{2}}},
		{[]interface{}{int64(1), 2.5}, Item{Values: []fortran.Value{fortran.Int(1), fortran.Real(2.5)}, Shape: []int{2}}},
		{[]interface{}{}, Item{Values: []fortran.Value{}, Shape: []int{0}}},
		{
			[][]float64{{0, 1, 2}, {3, 4, 5}},
			Item{Values: fortran.Reals([]float64{0, 3, 1, 4, 2, 5}), Shape: []int{2, 3}},
		},
	}
	for _, test := range tests {
		d := NewDocument(nil)
		if err := d.SetAny("x", test.v); err != nil {
			t.Fatal(err)
		}
		have, _ := d.Get("x")
		if !reflect.DeepEqual(have, test.want) {
			t.Errorf("%#v: %v", test.v, pretty.Diff(have, test.want))
		}
		if back := d.Any("x"); test.want.IsArray() && len(test.want.Shape) == 2 && !reflect.DeepEqual(back, test.v) {
			t.Errorf("Any: have %v, want %v", back, test.v)
		}
	}
	d := NewDocument(nil)
	for _, v := range []interface{}{true, map[string]interface{}{}, [][]float64{{1}, {1, 2}}, nil} {
		if err := d.SetAny("x", v); !errors.Is(err, ErrWrongKind) {
			t.Errorf("%#v: have %v, want ErrWrongKind", v, err)
		}
	}
}

func TestTOML(t *testing.T) {
	const in = `
nx = 3
ny = 2
simag = -0.5
comment = "test"
fpol = [1.0, 2.0, 3.0]
psi = [[0.0, 0.1], [0.2, 0.3], [0.4, 0.5]]
`
	aliases := Aliases{"simag": "simagx"}
	d, err := DecodeTOML(strings.NewReader(in), aliases)
	if err != nil {
		t.Fatal(err)
	}
	names := []string{"comment", "fpol", "nx", "ny", "psi", "simagx"}
	if !reflect.DeepEqual(d.Names(), names) {
		t.Errorf("names: %v", pretty.Diff(d.Names(), names))
	}
	psi, _ := d.Get("psi")
	if !reflect.DeepEqual(psi.Shape, []int{3, 2}) {
		t.Errorf("psi shape %v", psi.Shape)
	}
	if !floats.Equal(psi.Floats(), []float64{0, 0.2, 0.4, 0.1, 0.3, 0.5}) {
		t.Errorf("psi is not column-major: %v", psi.Floats())
	}
	if n, _ := d.Int("nx"); n != 3 {
		t.Errorf("nx = %d", n)
	}

	var b bytes.Buffer
	if err := EncodeTOML(&b, d); err != nil {
		t.Fatal(err)
	}
	d2, err := DecodeTOML(&b, aliases)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range d.Names() {
		have, _ := d2.Get(n)
		want, _ := d.Get(n)
		if !reflect.DeepEqual(have, want) {
			t.Errorf("%s: %v", n, pretty.Diff(have, want))
		}
	}

	if _, err := DecodeTOML(strings.NewReader("x = "), nil); err == nil {
		t.Error("expected a syntax error")
	}
}

func TestQuantity(t *testing.T) {
	d := NewDocument(nil)
	d.SetFloat("rdim", 1.5)
	q, err := Quantity(d, Field{Name: "rdim", Units: unit.Meter})
	if err != nil {
		t.Fatal(err)
	}
	if q.Value() != 1.5 || !q.Dimensions().Matches(unit.Meter) {
		t.Errorf("have %v", q)
	}
	if _, err := Quantity(d, Field{Name: "rdim"}); err == nil {
		t.Error("expected an error for a field without units")
	}
	if _, err := Quantity(d, Field{Name: "zdim", Units: unit.Meter}); !errors.Is(err, ErrMissingField) {
		t.Errorf("have %v, want ErrMissingField", err)
	}
}
