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

	"github.com/ctessum/unit"
	"github.com/spatialmodel/eqdsk/fortran"
)

// PolicyKind says how a missing field is filled in.
type PolicyKind int

const (
	// NoDefault fields must be present.
	NoDefault PolicyKind = iota
	// ConstantDefault fields take a fixed value.
	ConstantDefault
	// LengthOfDefault fields are arrays of zeros whose length is held by
	// another field.
	LengthOfDefault
	// SizeOfDefault fields are integers holding the length of another
	// field.
	SizeOfDefault
)

// Policy is the default rule for a Field.
type Policy struct {
	Kind  PolicyKind
	Value fortran.Value // ConstantDefault
	Ref   string        // LengthOfDefault and SizeOfDefault
}

// None is the policy of fields without a default.
func None() Policy { return Policy{} }

// Constant defaults a field to v.
func Constant(v fortran.Value) Policy { return Policy{Kind: ConstantDefault, Value: v} }

// Float defaults a field to x.
func Float(x float64) Policy { return Constant(fortran.Real(x)) }

// LengthOf defaults an array field to zeros, as many as the integer field
// ref holds.
func LengthOf(ref string) Policy { return Policy{Kind: LengthOfDefault, Ref: ref} }

// SizeOf defaults an integer field to the length of the array field ref.
func SizeOf(ref string) Policy { return Policy{Kind: SizeOfDefault, Ref: ref} }

func (p Policy) String() string {
	switch p.Kind {
	case ConstantDefault:
		return p.Value.String()
	case LengthOfDefault:
		return fmt.Sprintf("%s * [0.0]", p.Ref)
	case SizeOfDefault:
		return fmt.Sprintf("len(%s)", p.Ref)
	}
	return "none"
}

// Field describes one named value in a file.
type Field struct {
	Name        string
	Description string
	Default     Policy

	// Units are the SI dimensions of the field, or nil if they are not
	// known.
	Units unit.Dimensions
}

// Catalog is an ordered block of fields.
type Catalog struct {
	Name   string
	Fields []Field
}

// Names returns the field names of c in order.
func (c *Catalog) Names() []string {
	o := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		o[i] = f.Name
	}
	return o
}

// Field returns the field with the given name.
func (c *Catalog) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// AnyPresent reports whether any field of c is present in doc.
func (c *Catalog) AnyPresent(doc *Document) bool {
	for _, f := range c.Fields {
		if doc.Has(f.Name) {
			return true
		}
	}
	return false
}

// Trim returns the leading fields of c up to and including the last one
// present in doc, extended to a multiple of align fields but never past the
// end of the catalog. If no field is present the result is empty.
func (c *Catalog) Trim(doc *Document, align int) []Field {
	last := -1
	for i, f := range c.Fields {
		if doc.Has(f.Name) {
			last = i
		}
	}
	n := last + 1
	if n == 0 {
		return nil
	}
	if align > 1 && n%align != 0 {
		n += align - n%align
	}
	if n > len(c.Fields) {
		n = len(c.Fields)
	}
	return c.Fields[:n]
}

// Values resolves every field of c against doc. Each must be a scalar.
func (c *Catalog) Values(doc *Document) ([]fortran.Value, error) {
	return Values(c.Fields, doc)
}

// Values resolves each of fields against doc. Each must be a scalar.
func Values(fields []Field, doc *Document) ([]fortran.Value, error) {
	o := make([]fortran.Value, len(fields))
	for i, f := range fields {
		it, err := Resolve(f, doc)
		if err != nil {
			return nil, err
		}
		if it.IsArray() || len(it.Values) != 1 {
			return nil, fmt.Errorf("%w: %s must be a scalar", ErrWrongKind, f.Name)
		}
		o[i] = it.Values[0]
	}
	return o, nil
}

// Assign stores vals in doc under the names of fields, in order. Extra
// values are ignored and missing ones are left unset. It returns the number
// of values assigned.
func Assign(doc *Document, fields []Field, vals []fortran.Value) int {
	n := len(fields)
	if len(vals) < n {
		n = len(vals)
	}
	for i := 0; i < n; i++ {
		doc.Set(fields[i].Name, Item{Values: vals[i : i+1]})
	}
	return n
}
