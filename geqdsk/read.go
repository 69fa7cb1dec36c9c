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
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// Read reads a G-EQDSK file. The returned document stores psi with shape
// (nx, ny) and the boundary and limiter as separate R and Z arrays.
func Read(r io.Reader, o *Options) (*schema.Document, error) {
	o = o.withDefaults()
	fr := fortran.NewReader(r)
	fr.Log = o.Log
	doc := NewDocument()

	if err := readHeader(fr, doc, o); err != nil {
		return nil, err
	}
	nx, _ := doc.Int("nx")
	ny, _ := doc.Int("ny")

	vals, err := fr.ReadArray(fortran.Fixed(len(ScalarSlots)), o.DataFormat)
	if err != nil {
		return nil, fmt.Errorf("geqdsk: reading scalars: %w", err)
	}
	for i, name := range ScalarSlots {
		if name == "" || doc.Has(name) {
			continue
		}
		doc.Set(name, schema.Item{Values: vals[i : i+1]})
	}

	for _, name := range []string{"fpol", "pres", "ffprime", "pprime"} {
		if err := readArray(fr, doc, o, name, nx); err != nil {
			return nil, err
		}
	}
	if err := readGrid(fr, doc, o, "psi", nx, ny); err != nil {
		return nil, err
	}
	if err := readArray(fr, doc, o, "qpsi", nx); err != nil {
		return nil, err
	}

	counts, err := fr.ReadArray(fortran.Fixed(2), o.CountsFormat)
	if err != nil {
		return nil, fmt.Errorf("geqdsk: reading boundary and limiter counts: %w", err)
	}
	nbdry, nlim := int(counts[0].AsInt()), int(counts[1].AsInt())
	if nbdry < 0 || nlim < 0 {
		return nil, fmt.Errorf("geqdsk: line %d: negative point count (%d, %d): %w",
			fr.Line(), nbdry, nlim, fortran.ErrRecordFormatMismatch)
	}
	doc.SetInt("nbdry", nbdry)
	doc.SetInt("nlim", nlim)
	if err := readPairs(fr, doc, o, "rbdry", "zbdry", nbdry); err != nil {
		return nil, err
	}
	if err := readPairs(fr, doc, o, "rlim", "zlim", nlim); err != nil {
		return nil, err
	}

	if err := fromFile(doc, o); err != nil {
		return nil, err
	}
	return doc, nil
}

// readHeader decodes the first line with o.HeaderFormat: the string cells
// make up the comment and the last three cells are idum, nx and ny. Lines
// that do not fit the format are split on white space instead.
func readHeader(fr *fortran.Reader, doc *schema.Document, o *Options) error {
	line, err := fr.ReadLine()
	if err != nil {
		return fmt.Errorf("geqdsk: reading header: %w", err)
	}
	comment, ints, err := decodeHeader(line, o.HeaderFormat)
	if err != nil {
		o.Log.WithFields(logrus.Fields{"header": line, "error": err}).Debug(
			"geqdsk: header does not match format; splitting on white space")
		comment, ints, err = splitHeader(line)
		if err != nil {
			return fmt.Errorf("geqdsk: line 1: %w", err)
		}
	}
	nx, ny := ints[len(ints)-2], ints[len(ints)-1]
	if nx < 0 || ny < 0 {
		return fmt.Errorf("geqdsk: line 1: negative grid size (%d, %d): %w", nx, ny, fortran.ErrRecordFormatMismatch)
	}
	doc.SetString("comment", comment)
	if len(ints) == 3 {
		doc.SetInt("idum", int(ints[0]))
	}
	doc.SetInt("nx", int(nx))
	doc.SetInt("ny", int(ny))
	return nil
}

func decodeHeader(line string, f *fortran.Format) (string, []int64, error) {
	vals, err := f.Decode(line)
	if err != nil {
		return "", nil, err
	}
	n := len(vals)
	if n < 3 {
		return "", nil, fmt.Errorf("%w: %s has fewer than three cells", fortran.ErrRecordFormatMismatch, f)
	}
	var comment strings.Builder
	for _, v := range vals[:n-3] {
		comment.WriteString(v.AsString())
	}
	ints := make([]int64, 3)
	for i, v := range vals[n-3:] {
		if !v.IsNumeric() {
			return "", nil, fmt.Errorf("%w: cell %d of %s is not a number", fortran.ErrRecordFormatMismatch, n-3+i, f)
		}
		ints[i] = v.AsInt()
	}
	return strings.TrimRight(comment.String(), " "), ints, nil
}

// splitHeader reads nx and ny from the last two words of line, and idum
// from the word before them if it is an integer.
func splitHeader(line string) (string, []int64, error) {
	words := strings.Fields(line)
	if len(words) < 2 {
		return "", nil, fmt.Errorf("%w: header %q does not end with nx and ny", fortran.ErrRecordFormatMismatch, line)
	}
	var ints []int64
	first := len(words) - 2
	if len(words) >= 3 {
		if idum, err := fortran.ParseInteger(words[len(words)-3]); err == nil {
			ints = append(ints, idum)
			first--
		}
	}
	for _, w := range words[len(words)-2:] {
		i, err := fortran.ParseInteger(w)
		if err != nil {
			return "", nil, fmt.Errorf("%w: header %q does not end with nx and ny", fortran.ErrRecordFormatMismatch, line)
		}
		ints = append(ints, i)
	}
	return strings.Join(words[:first], " "), ints, nil
}

// readArray reads the array name with the given dimensions.
func readArray(fr *fortran.Reader, doc *schema.Document, o *Options, name string, dims ...int) error {
	vals, err := fr.ReadArray(fortran.Shape(dims...), o.DataFormat)
	if err != nil {
		return fmt.Errorf("geqdsk: reading %s: %w", name, err)
	}
	return doc.SetArray(name, vals, dims...)
}

// readGrid reads the two-dimensional array name, first index fastest.
func readGrid(fr *fortran.Reader, doc *schema.Document, o *Options, name string, nx, ny int) error {
	a, err := fr.ReadDense(o.DataFormat, nx, ny)
	if err != nil {
		return fmt.Errorf("geqdsk: reading %s: %w", name, err)
	}
	doc.SetDense(name, a)
	return nil
}

// readPairs reads n interleaved (R, Z) pairs into the arrays rname and
// zname.
func readPairs(fr *fortran.Reader, doc *schema.Document, o *Options, rname, zname string, n int) error {
	vals, err := fr.ReadArray(fortran.Fixed(2*n), o.DataFormat)
	if err != nil {
		return fmt.Errorf("geqdsk: reading %s and %s: %w", rname, zname, err)
	}
	r := make([]fortran.Value, n)
	z := make([]fortran.Value, n)
	for i := 0; i < n; i++ {
		r[i], z[i] = vals[2*i], vals[2*i+1]
	}
	doc.Set(rname, schema.Item{Values: r, Shape: []int{n}})
	doc.Set(zname, schema.Item{Values: z, Shape: []int{n}})
	return nil
}
