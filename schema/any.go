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
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spf13/cast"
)

// SetAny stores a plain Go value under name. Integers, floats and strings
// become scalars; slices become one-dimensional arrays; slices of equal
// length slices become two-dimensional arrays indexed [row][column].
// Items, fortran Values and dense arrays are stored as they are.
func (d *Document) SetAny(name string, v interface{}) error {
	it, err := itemOf(v)
	if err != nil {
		return fmt.Errorf("schema: setting %s: %w", name, err)
	}
	d.Set(name, it)
	return nil
}

// Any returns the value stored under name as a plain Go value: int64,
// float64 or string for scalars, a slice for one-dimensional arrays and
// [][]float64 for two-dimensional ones. It returns nil if name is absent.
func (d *Document) Any(name string) interface{} {
	it, ok := d.Get(name)
	if !ok {
		return nil
	}
	if !it.IsArray() {
		if len(it.Values) == 0 {
			return nil
		}
		return plain(it.Values[0])
	}
	if len(it.Shape) == 2 {
		rows, cols := it.Shape[0], it.Shape[1]
		o := make([][]float64, rows)
		for i := range o {
			o[i] = make([]float64, cols)
			for j := range o[i] {
				o[i][j] = it.Values[i+j*rows].AsFloat()
			}
		}
		return o
	}
	kind := fortran.Integer
	for _, v := range it.Values {
		if v.Kind() != fortran.Integer {
			kind = v.Kind()
			break
		}
	}
	switch kind {
	case fortran.Integer:
		o := make([]int64, len(it.Values))
		for i, v := range it.Values {
			o[i] = v.AsInt()
		}
		return o
	case fortran.String:
		o := make([]string, len(it.Values))
		for i, v := range it.Values {
			o[i] = v.AsString()
		}
		return o
	}
	return it.Floats()
}

func plain(v fortran.Value) interface{} {
	switch v.Kind() {
	case fortran.Integer:
		return v.AsInt()
	case fortran.String:
		return v.AsString()
	}
	return v.AsFloat()
}

func itemOf(v interface{}) (Item, error) {
	switch x := v.(type) {
	case Item:
		return x, nil
	case fortran.Value:
		return Item{Values: []fortran.Value{x}}, nil
	case *sparse.DenseArray:
		return Item{Values: fortran.Reals(fortran.Flatten(x)), Shape: append([]int{}, x.Shape...)}, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		s, err := scalarOf(v)
		if err != nil {
			return Item{}, err
		}
		return Item{Values: []fortran.Value{s}}, nil
	}
	n := rv.Len()
	if n > 0 && isList(elem(rv.Index(0))) {
		return gridOf(rv)
	}
	vals := make([]fortran.Value, n)
	for i := range vals {
		s, err := scalarOf(iface(rv.Index(i)))
		if err != nil {
			return Item{}, fmt.Errorf("element %d: %w", i, err)
		}
		vals[i] = s
	}
	return Item{Values: vals, Shape: []int{n}}, nil
}

// gridOf converts a slice of rows into a column-major two-dimensional
// array.
func gridOf(rv reflect.Value) (Item, error) {
	rows := rv.Len()
	cols := elem(rv.Index(0)).Len()
	vals := make([]fortran.Value, rows*cols)
	for i := 0; i < rows; i++ {
		row := elem(rv.Index(i))
		if !isList(row) || row.Len() != cols {
			return Item{}, fmt.Errorf("%w: row %d of a %d column array is ragged", ErrWrongKind, i, cols)
		}
		for j := 0; j < cols; j++ {
			s, err := scalarOf(iface(row.Index(j)))
			if err != nil {
				return Item{}, fmt.Errorf("element [%d][%d]: %w", i, j, err)
			}
			vals[i+j*rows] = s
		}
	}
	return Item{Values: vals, Shape: []int{rows, cols}}, nil
}

func scalarOf(v interface{}) (fortran.Value, error) {
	switch x := v.(type) {
	case fortran.Value:
		return x, nil
	case string:
		return fortran.Str(x), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return fortran.Value{}, err
		}
		return fortran.Int(i), nil
	case float32, float64, json.Number:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fortran.Value{}, err
		}
		return fortran.Real(f), nil
	}
	return fortran.Value{}, fmt.Errorf("%w: unsupported type %T", ErrWrongKind, v)
}

func elem(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v
}

// iface returns the value held by v, or nil.
func iface(v reflect.Value) interface{} {
	v = elem(v)
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

func isList(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}
