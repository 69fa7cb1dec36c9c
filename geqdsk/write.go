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

package geqdsk

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// Write writes doc as a G-EQDSK file. doc is not modified, and nothing is
// written to w unless the whole file can be encoded.
//
// Absent ffprime and pprime are written as zeros, and absent boundary or
// limiter contours as empty ones. fpol, pres and qpsi must have nx values
// and psi must have shape (nx, ny).
func Write(doc *schema.Document, w io.Writer, o *Options) error {
	o = o.withDefaults()
	d := doc.Clone()
	for _, f := range Contours.Fields {
		if f.Default.Kind != schema.SizeOfDefault {
			continue
		}
		it, err := schema.Resolve(f, d)
		if err != nil {
			return fmt.Errorf("geqdsk: writing %s: %w", f.Name, err)
		}
		d.Set(f.Name, it)
	}
	if err := toFile(d, o); err != nil {
		return err
	}

	var b bytes.Buffer
	fw := fortran.NewWriter(&b)
	nx, ny, err := writeHeader(fw, d, o)
	if err != nil {
		return err
	}

	vals, err := schema.Values(slotFields(), d)
	if err != nil {
		return fmt.Errorf("geqdsk: writing scalars: %w", err)
	}
	if err := fw.WriteArray(vals, o.DataFormat); err != nil {
		return fmt.Errorf("geqdsk: writing scalars: %w", err)
	}

	for _, name := range []string{"fpol", "pres", "ffprime", "pprime"} {
		if err := writeArray(fw, d, o, name, nx); err != nil {
			return err
		}
	}
	if err := writeGrid(fw, d, o, "psi", nx, ny); err != nil {
		return err
	}
	if err := writeArray(fw, d, o, "qpsi", nx); err != nil {
		return err
	}

	nbdry, _ := d.Int("nbdry")
	nlim, _ := d.Int("nlim")
	counts := []fortran.Value{fortran.Int(int64(nbdry)), fortran.Int(int64(nlim))}
	if err := fw.WriteRecord(counts, o.CountsFormat); err != nil {
		return fmt.Errorf("geqdsk: writing boundary and limiter counts: %w", err)
	}
	if err := writePairs(fw, d, o, "rbdry", "zbdry"); err != nil {
		return err
	}
	if err := writePairs(fw, d, o, "rlim", "zlim"); err != nil {
		return err
	}

	_, err = w.Write(b.Bytes())
	return err
}

// writeHeader writes the first line and returns the grid size.
func writeHeader(fw *fortran.Writer, d *schema.Document, o *Options) (nx, ny int, err error) {
	if nx, err = d.Int("nx"); err != nil {
		return 0, 0, fmt.Errorf("geqdsk: writing header: %w", err)
	}
	if ny, err = d.Int("ny"); err != nil {
		return 0, 0, fmt.Errorf("geqdsk: writing header: %w", err)
	}
	if nx < 0 || ny < 0 {
		return 0, 0, fmt.Errorf("geqdsk: writing header: negative grid size (%d, %d): %w", nx, ny, schema.ErrWrongKind)
	}
	comment, err := d.Text("comment")
	if err != nil && !errors.Is(err, schema.ErrMissingField) {
		return 0, 0, fmt.Errorf("geqdsk: writing header: %w", err)
	}
	idum, err := schema.Values([]schema.Field{field("idum")}, d)
	if err != nil {
		return 0, 0, fmt.Errorf("geqdsk: writing header: %w", err)
	}
	vals := []fortran.Value{
		fortran.Str(o.header(comment, d.Has("comment"))),
		idum[0],
		fortran.Int(int64(nx)),
		fortran.Int(int64(ny)),
	}
	if err := fw.WriteRecord(vals, o.HeaderFormat); err != nil {
		return 0, 0, fmt.Errorf("geqdsk: writing header: %w", err)
	}
	return nx, ny, nil
}

// slotFields returns the field for each scalar slot. Empty slots are
// zero.
func slotFields() []schema.Field {
	o := make([]schema.Field, len(ScalarSlots))
	for i, name := range ScalarSlots {
		if name == "" {
			o[i] = schema.Field{Default: schema.Float(0)}
			continue
		}
		o[i] = field(name)
	}
	return o
}

// writeGrid writes the two-dimensional array name, first index fastest.
func writeGrid(fw *fortran.Writer, d *schema.Document, o *Options, name string, nx, ny int) error {
	it, err := schema.Resolve(field(name), d)
	if err != nil {
		return fmt.Errorf("geqdsk: writing %s: %w", name, err)
	}
	if !sameShape(it.Shape, []int{nx, ny}) {
		return fmt.Errorf("geqdsk: writing %s: %w: shape is %v, want [%d %d]", name, schema.ErrLengthMismatch, it.Shape, nx, ny)
	}
	for i, v := range it.Values {
		if !v.IsNumeric() {
			return fmt.Errorf("geqdsk: writing %s: %w: value %d is a %s", name, schema.ErrWrongKind, i, v.Kind())
		}
	}
	a, err := d.Dense(name)
	if err != nil {
		return fmt.Errorf("geqdsk: writing %s: %w", name, err)
	}
	if err := fw.WriteDense(a, o.DataFormat); err != nil {
		return fmt.Errorf("geqdsk: writing %s: %w", name, err)
	}
	return nil
}

// writeArray writes the array name after checking that it has the given
// dimensions.
func writeArray(fw *fortran.Writer, d *schema.Document, o *Options, name string, dims ...int) error {
	it, err := schema.Resolve(field(name), d)
	if err != nil {
		return fmt.Errorf("geqdsk: writing %s: %w", name, err)
	}
	if !it.IsArray() {
		return fmt.Errorf("geqdsk: writing %s: %w: not an array", name, schema.ErrWrongKind)
	}
	if !sameShape(it.Shape, dims) {
		return fmt.Errorf("geqdsk: writing %s: %w: shape is %v, want %v", name, schema.ErrLengthMismatch, it.Shape, dims)
	}
	if err := fw.WriteArray(it.Values, o.DataFormat); err != nil {
		return fmt.Errorf("geqdsk: writing %s: %w", name, err)
	}
	return nil
}

// sameShape reports whether shape matches dims.
func sameShape(shape, dims []int) bool {
	if len(shape) != len(dims) {
		return false
	}
	for i := range shape {
		if shape[i] != dims[i] {
			return false
		}
	}
	return true
}

// writePairs writes the arrays rname and zname as interleaved (R, Z)
// pairs.
func writePairs(fw *fortran.Writer, d *schema.Document, o *Options, rname, zname string) error {
	r, err := schema.Resolve(field(rname), d)
	if err != nil {
		return fmt.Errorf("geqdsk: writing %s: %w", rname, err)
	}
	z, err := schema.Resolve(field(zname), d)
	if err != nil {
		return fmt.Errorf("geqdsk: writing %s: %w", zname, err)
	}
	if r.Len() != z.Len() {
		return fmt.Errorf("geqdsk: writing %s and %s: %w: %d and %d values", rname, zname,
			schema.ErrLengthMismatch, r.Len(), z.Len())
	}
	vals := make([]fortran.Value, 0, 2*r.Len())
	for i := range r.Values {
		vals = append(vals, r.Values[i], z.Values[i])
	}
	if err := fw.WriteArray(vals, o.DataFormat); err != nil {
		return fmt.Errorf("geqdsk: writing %s and %s: %w", rname, zname, err)
	}
	return nil
}
