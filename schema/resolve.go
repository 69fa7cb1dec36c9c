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

	"github.com/spatialmodel/eqdsk/fortran"
)

// Resolve returns the value of f for writing doc.
//
// A field present in doc is returned as it is, after checking that its
// length agrees with any size field it is paired with. Otherwise the
// field's default policy applies:
//
//	Constant(v)  v
//	LengthOf(n)  an array of doc[n] zeros, or an empty array if n is absent
//	SizeOf(a)    the length of doc[a], or 0 if a is absent
//
// A missing field with no policy is an error.
func Resolve(f Field, doc *Document) (Item, error) {
	if it, ok := doc.Get(f.Name); ok {
		if err := checkLength(f, it, doc); err != nil {
			return Item{}, err
		}
		return it.clone(), nil
	}
	switch f.Default.Kind {
	case ConstantDefault:
		return Item{Values: []fortran.Value{f.Default.Value}}, nil
	case LengthOfDefault:
		if !doc.Has(f.Default.Ref) {
			return Item{Values: []fortran.Value{}, Shape: []int{0}}, nil
		}
		n, err := sizeValue(f.Default.Ref, doc)
		if err != nil {
			return Item{}, fmt.Errorf("schema: resolving %s: %w", f.Name, err)
		}
		return Item{Values: fortran.Reals(make([]float64, n)), Shape: []int{n}}, nil
	case SizeOfDefault:
		return Item{Values: []fortran.Value{fortran.Int(int64(doc.Len(f.Default.Ref)))}}, nil
	}
	return Item{}, fmt.Errorf("%w: %s has no default", ErrMissingField, f.Name)
}

// checkLength checks a present field against the other half of its
// array and size pair.
func checkLength(f Field, it Item, doc *Document) error {
	switch f.Default.Kind {
	case LengthOfDefault:
		if !doc.Has(f.Default.Ref) {
			return nil
		}
		n, err := sizeValue(f.Default.Ref, doc)
		if err != nil {
			return fmt.Errorf("schema: resolving %s: %w", f.Name, err)
		}
		if it.Len() != n {
			return fmt.Errorf("%w: %s has %d values but %s is %d", ErrLengthMismatch, f.Name, it.Len(), f.Default.Ref, n)
		}
	case SizeOfDefault:
		arr, ok := doc.Get(f.Default.Ref)
		if !ok {
			return nil
		}
		if it.IsArray() || len(it.Values) != 1 || !it.Values[0].IsNumeric() {
			return fmt.Errorf("%w: size field %s must be an integer", ErrWrongKind, f.Name)
		}
		if n := int(it.Values[0].AsInt()); n != arr.Len() {
			return fmt.Errorf("%w: %s is %d but %s has %d values", ErrLengthMismatch, f.Name, n, f.Default.Ref, arr.Len())
		}
	}
	return nil
}

// sizeValue returns the non-negative integer held by the size field name.
func sizeValue(name string, doc *Document) (int, error) {
	n, err := doc.Int(name)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: size field %s is negative (%d)", ErrWrongKind, name, n)
	}
	return n, nil
}
