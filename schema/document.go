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
	"fmt"
	"sort"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/eqdsk/fortran"
)

// Item is the value of one field. Shape is nil for scalars. Arrays are
// stored flat in column-major order.
type Item struct {
	Values []fortran.Value
	Shape  []int
}

// IsArray reports whether the item is an array.
func (it Item) IsArray() bool { return it.Shape != nil }

// Len returns the number of values in the item.
func (it Item) Len() int { return len(it.Values) }

// Floats returns the numeric values of the item.
func (it Item) Floats() []float64 { return fortran.Floats(it.Values) }

func (it Item) clone() Item {
	o := Item{Values: append([]fortran.Value{}, it.Values...)}
	if it.Shape != nil {
		o.Shape = append([]int{}, it.Shape...)
	}
	return o
}

// Document holds the fields of one file, keyed by canonical name.
type Document struct {
	items   map[string]Item
	aliases Aliases
}

// NewDocument returns an empty document. Names given to its methods are
// translated through aliases first; aliases may be nil.
func NewDocument(aliases Aliases) *Document {
	return &Document{items: make(map[string]Item), aliases: aliases}
}

// Aliases returns the alias table of d.
func (d *Document) Aliases() Aliases { return d.aliases }

// Set stores it under name, replacing any previous value.
func (d *Document) Set(name string, it Item) {
	d.items[d.aliases.Canonical(name)] = it.clone()
}

// SetInt stores an integer scalar.
func (d *Document) SetInt(name string, i int) {
	d.Set(name, Item{Values: []fortran.Value{fortran.Int(int64(i))}})
}

// SetFloat stores a floating point scalar.
func (d *Document) SetFloat(name string, x float64) {
	d.Set(name, Item{Values: []fortran.Value{fortran.Real(x)}})
}

// SetString stores a string scalar.
func (d *Document) SetString(name string, s string) {
	d.Set(name, Item{Values: []fortran.Value{fortran.Str(s)}})
}

// SetFloats stores a one-dimensional array.
func (d *Document) SetFloats(name string, x []float64) {
	d.Set(name, Item{Values: fortran.Reals(x), Shape: []int{len(x)}})
}

// SetArray stores vals, which are in column-major order, as an array with
// the given dimensions. With no dimensions, the array is one-dimensional.
func (d *Document) SetArray(name string, vals []fortran.Value, dims ...int) error {
	if len(dims) == 0 {
		dims = []int{len(vals)}
	}
	n := 1
	for _, dim := range dims {
		n *= dim
	}
	if n != len(vals) {
		return fmt.Errorf("schema: setting %s: %d values do not fill shape %v", name, len(vals), dims)
	}
	d.Set(name, Item{Values: vals, Shape: dims})
	return nil
}

// SetDense stores a multi-dimensional array.
func (d *Document) SetDense(name string, a *sparse.DenseArray) {
	d.Set(name, Item{Values: fortran.Reals(fortran.Flatten(a)), Shape: append([]int{}, a.Shape...)})
}

// Get returns the item stored under name.
func (d *Document) Get(name string) (Item, bool) {
	it, ok := d.items[d.aliases.Canonical(name)]
	return it, ok
}

// Has reports whether name is present.
func (d *Document) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Delete removes name from the document.
func (d *Document) Delete(name string) {
	delete(d.items, d.aliases.Canonical(name))
}

// Names returns the canonical names of all fields present, sorted.
func (d *Document) Names() []string {
	o := make([]string, 0, len(d.items))
	for n := range d.items {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	o := NewDocument(d.aliases)
	for n, it := range d.items {
		o.items[n] = it.clone()
	}
	return o
}

func (d *Document) scalar(name string) (fortran.Value, error) {
	it, ok := d.Get(name)
	if !ok {
		return fortran.Value{}, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if it.IsArray() || len(it.Values) != 1 {
		return fortran.Value{}, fmt.Errorf("%w: %s is an array, not a scalar", ErrWrongKind, name)
	}
	return it.Values[0], nil
}

// Float returns the numeric scalar stored under name.
func (d *Document) Float(name string) (float64, error) {
	v, err := d.scalar(name)
	if err != nil {
		return 0, err
	}
	if !v.IsNumeric() {
		return 0, fmt.Errorf("%w: %s holds a %v, not a number", ErrWrongKind, name, v.Kind())
	}
	return v.AsFloat(), nil
}

// Int returns the numeric scalar stored under name as an integer.
func (d *Document) Int(name string) (int, error) {
	v, err := d.scalar(name)
	if err != nil {
		return 0, err
	}
	if !v.IsNumeric() {
		return 0, fmt.Errorf("%w: %s holds a %v, not a number", ErrWrongKind, name, v.Kind())
	}
	return int(v.AsInt()), nil
}

// Text returns the string scalar stored under name.
func (d *Document) Text(name string) (string, error) {
	v, err := d.scalar(name)
	if err != nil {
		return "", err
	}
	if v.Kind() != fortran.String {
		return "", fmt.Errorf("%w: %s holds a %v, not a string", ErrWrongKind, name, v.Kind())
	}
	return v.AsString(), nil
}

// Floats returns the numeric values of the array stored under name.
func (d *Document) Floats(name string) ([]float64, error) {
	it, ok := d.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if !it.IsArray() {
		return nil, fmt.Errorf("%w: %s is a scalar, not an array", ErrWrongKind, name)
	}
	return it.Floats(), nil
}

// Dense returns the array stored under name with its shape.
func (d *Document) Dense(name string) (*sparse.DenseArray, error) {
	it, ok := d.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if !it.IsArray() {
		return nil, fmt.Errorf("%w: %s is a scalar, not an array", ErrWrongKind, name)
	}
	return fortran.Reshape(it.Floats(), it.Shape...)
}

// Len returns the number of values stored under name, or 0 if it is
// absent.
func (d *Document) Len(name string) int {
	it, _ := d.Get(name)
	return it.Len()
}
