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

package aeqdsk

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// flags are the words of the fourth header line after the time.
var flags = []struct {
	name    string
	integer bool
}{
	{"jflag", true},
	{"lflag", true},
	{"limloc", false},
	{"mco2v", true},
	{"mco2r", true},
	{"qmflag", false},
}

// Read reads an A-EQDSK file.
//
// The header is read on a best effort basis: values that are missing or
// cannot be parsed are logged and left out of the document. If the file
// ends before the extended section, or the extended section cannot be
// read, a warning is logged and the document read so far is returned.
func Read(r io.Reader, o *Options) (*schema.Document, error) {
	o = o.withDefaults()
	fr := fortran.NewReader(r)
	fr.Log = o.Log
	doc := NewDocument()

	if err := readHeader(fr, doc, o); err != nil {
		return nil, err
	}
	if err := readScalars(fr, doc, o, General1); err != nil {
		return nil, err
	}
	for _, f := range Laser.Fields {
		n, err := size(doc, f.Default.Ref)
		if err != nil {
			return nil, err
		}
		if err := readArray(fr, doc, o, f.Name, n); err != nil {
			return nil, err
		}
	}
	if err := readScalars(fr, doc, o, General2); err != nil {
		return nil, err
	}

	line := fr.Line() + 1
	sizes, err := fr.ReadArray(fortran.Fixed(len(ExtendedSizes.Fields)), o.ExtendedSizesFormat)
	if errors.Is(err, fortran.ErrUnexpectedEOF) || errors.Is(err, fortran.ErrRecordFormatMismatch) {
		o.Log.WithFields(logrus.Fields{"line": line, "error": err}).Warn(
			"aeqdsk: no extended section; assuming a file written before 1997")
		return doc, nil
	} else if err != nil {
		return nil, fmt.Errorf("aeqdsk: reading extended sizes: %w", err)
	}
	schema.Assign(doc, ExtendedSizes.Fields, sizes)

	// csilop and cmpr2 are stored as one array.
	nsilop, err := size(doc, "nsilop")
	if err != nil {
		return nil, err
	}
	magpri, err := size(doc, "magpri")
	if err != nil {
		return nil, err
	}
	joined, err := fr.ReadArray(fortran.Fixed(nsilop+magpri), o.DataFormat)
	if err != nil {
		return nil, fmt.Errorf("aeqdsk: reading csilop and cmpr2: %w", err)
	}
	doc.Set("csilop", schema.Item{Values: joined[:nsilop], Shape: []int{nsilop}})
	doc.Set("cmpr2", schema.Item{Values: joined[nsilop:], Shape: []int{magpri}})

	for _, name := range []string{"ccbrsp", "eccurt"} {
		n, err := size(doc, field(name).Default.Ref)
		if err != nil {
			return nil, err
		}
		if err := readArray(fr, doc, o, name, n); err != nil {
			return nil, err
		}
	}

	rest, err := fr.ReadArray(fortran.UntilEnd(), o.DataFormat)
	if err != nil {
		return nil, fmt.Errorf("aeqdsk: reading %s: %w", ExtendedGeneral.Name, err)
	}
	if n := schema.Assign(doc, ExtendedGeneral.Fields, rest); n < len(rest) {
		o.Log.WithFields(logrus.Fields{"unrecognised": len(rest) - n}).Warn(
			"aeqdsk: values at the end of the file were not recognised and were discarded")
	}
	return doc, nil
}

func readHeader(fr *fortran.Reader, doc *schema.Document, o *Options) error {
	var lines [4]string
	for i := range lines {
		line, err := fr.ReadLine()
		if err != nil {
			return fmt.Errorf("aeqdsk: reading header: %w", err)
		}
		lines[i] = line
	}
	skip := func(line int, name, token string, err error) {
		o.Log.WithFields(logrus.Fields{"line": line, "field": name, "token": token, "error": err}).Warn(
			"aeqdsk: header value skipped")
	}

	doc.SetString("header", lines[0])

	words := strings.Fields(lines[1])
	if len(words) == 0 {
		skip(2, "shot", "", fortran.ErrUnexpectedEOF)
	} else if shot, err := fortran.ParseInteger(words[0]); err != nil {
		skip(2, "shot", words[0], err)
	} else {
		doc.SetInt("shot", int(shot))
	}

	if t, err := fortran.ParseReal(lines[2]); err != nil {
		skip(3, "time", lines[2], err)
	} else {
		doc.SetFloat("time", t)
	}

	words = strings.Fields(lines[3])
	for i, f := range flags {
		if i+1 >= len(words) {
			skip(4, f.name, "", fortran.ErrUnexpectedEOF)
			continue
		}
		w := words[i+1]
		if !f.integer {
			doc.SetString(f.name, w)
			continue
		}
		v, err := fortran.ParseInteger(w)
		if err != nil {
			skip(4, f.name, w, err)
			continue
		}
		doc.SetInt(f.name, int(v))
	}
	return nil
}

func readScalars(fr *fortran.Reader, doc *schema.Document, o *Options, c *schema.Catalog) error {
	vals, err := fr.ReadArray(fortran.Fixed(len(c.Fields)), o.DataFormat)
	if err != nil {
		return fmt.Errorf("aeqdsk: reading %s: %w", c.Name, err)
	}
	schema.Assign(doc, c.Fields, vals)
	return nil
}

func readArray(fr *fortran.Reader, doc *schema.Document, o *Options, name string, n int) error {
	vals, err := fr.ReadArray(fortran.Fixed(n), o.DataFormat)
	if err != nil {
		return fmt.Errorf("aeqdsk: reading %s: %w", name, err)
	}
	doc.Set(name, schema.Item{Values: vals, Shape: []int{n}})
	return nil
}

// size returns the array length held by the size field name, or 0 if it
// is absent.
func size(doc *schema.Document, name string) (int, error) {
	if !doc.Has(name) {
		return 0, nil
	}
	n, err := doc.Int(name)
	if err != nil {
		return 0, fmt.Errorf("aeqdsk: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("aeqdsk: %s is negative (%d): %w", name, n, fortran.ErrRecordFormatMismatch)
	}
	return n, nil
}
