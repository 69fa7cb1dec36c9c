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

// Package peqdsk reads and writes P-EQDSK files, which hold kinetic
// profiles as functions of the normalised poloidal flux psinorm.
//
// Each block of the file has a header line and one row per point:
//
//	3 psinorm ne(10^20/m^3) dne/dpsiN
//	 0.000000 1.200000 -0.100000
//	 ...
//
// The file ends with a block describing the ion species:
//
//	2 N Z A of ION SPECIES
//	 6.000000 6.000000 12.000000
//	 1.000000 1.000000 2.000000
//
// Columns are separated by white space, which is not preserved.
package peqdsk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// DefaultPrecision is the number of decimals written for each value.
const DefaultPrecision = 6

// Profile is one block of the file.
type Profile struct {
	// Name is the profile variable, Units its units (which may be empty)
	// and Derivative the name of the third column.
	Name, Units, Derivative string

	Psinorm, Data, Deriv []float64
}

// Species is the atomic number N, charge Z and mass number A of one ion
// species.
type Species struct {
	N, Z, A float64
}

// File holds the contents of a P-EQDSK file.
type File struct {
	Profiles []Profile
	Species  []Species
}

// Profile returns the profile with the given name.
func (f *File) Profile(name string) (*Profile, bool) {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i], true
		}
	}
	return nil, false
}

// Options control reading and writing. A nil *Options uses the defaults.
type Options struct {
	// Precision is the number of decimals written. It defaults to
	// DefaultPrecision.
	Precision int

	Log logrus.FieldLogger
}

func (o *Options) withDefaults() *Options {
	var c Options
	if o != nil {
		c = *o
	}
	if c.Precision <= 0 {
		c.Precision = DefaultPrecision
	}
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
	return &c
}

var nameUnits = regexp.MustCompile(`^(.*)\((.*)\)$`)

// Read reads a P-EQDSK file. Blank lines are skipped.
func Read(r io.Reader, o *Options) (*File, error) {
	o = o.withDefaults()
	fr := fortran.NewReader(r)
	fr.Log = o.Log
	f := new(File)
	for {
		header, err := nextLine(fr)
		if errors.Is(err, fortran.ErrUnexpectedEOF) {
			return f, nil
		} else if err != nil {
			return nil, fmt.Errorf("peqdsk: %w", err)
		}
		line := fr.Line()
		words := strings.Fields(header)
		if len(words) < 4 {
			return nil, fmt.Errorf("peqdsk: line %d: %w: block header %q has fewer than 4 words",
				line, fortran.ErrRecordFormatMismatch, header)
		}
		n, err := fortran.ParseInteger(words[0])
		if err == nil && n < 0 {
			err = fmt.Errorf("%w: negative row count", fortran.ErrRecordFormatMismatch)
		}
		if err != nil {
			return nil, fmt.Errorf("peqdsk: line %d: %w", line, err)
		}
		rows, err := readRows(fr, int(n))
		if err != nil {
			return nil, err
		}

		if words[1] == "N" && words[2] == "Z" && words[3] == "A" {
			f.Species = make([]Species, len(rows))
			for i, row := range rows {
				f.Species[i] = Species{N: row[0], Z: row[1], A: row[2]}
			}
			continue
		}
		if words[1] != "psinorm" {
			return nil, fmt.Errorf("peqdsk: line %d: %w: first column is %q, not psinorm",
				line, fortran.ErrRecordFormatMismatch, words[1])
		}
		p := Profile{Name: words[2], Derivative: words[3]}
		if m := nameUnits.FindStringSubmatch(words[2]); m != nil {
			p.Name, p.Units = m[1], m[2]
		}
		p.Psinorm, p.Data, p.Deriv = columns(rows)
		o.Log.WithFields(logrus.Fields{"profile": p.Name, "rows": len(rows)}).Debug("peqdsk: read profile")
		f.Profiles = append(f.Profiles, p)
	}
}

// nextLine returns the next line that is not blank.
func nextLine(fr *fortran.Reader) (string, error) {
	for {
		line, err := fr.ReadLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

func readRows(fr *fortran.Reader, n int) ([][3]float64, error) {
	rows := make([][3]float64, n)
	for i := range rows {
		line, err := nextLine(fr)
		if err != nil {
			return nil, fmt.Errorf("peqdsk: reading row %d of %d: %w", i+1, n, err)
		}
		words := strings.Fields(line)
		if len(words) != 3 {
			return nil, fmt.Errorf("peqdsk: line %d: %w: %d columns, want 3",
				fr.Line(), fortran.ErrRecordFormatMismatch, len(words))
		}
		for j, w := range words {
			x, err := fortran.ParseReal(w)
			if err != nil {
				return nil, fmt.Errorf("peqdsk: line %d: %w", fr.Line(), err)
			}
			rows[i][j] = x
		}
	}
	return rows, nil
}

func columns(rows [][3]float64) (a, b, c []float64) {
	a, b, c = make([]float64, len(rows)), make([]float64, len(rows)), make([]float64, len(rows))
	for i, row := range rows {
		a[i], b[i], c[i] = row[0], row[1], row[2]
	}
	return
}

// Write writes f as a P-EQDSK file, one block per profile followed by the
// species block. Nothing is written to w unless the whole file can be
// encoded.
func Write(f *File, w io.Writer, o *Options) error {
	o = o.withDefaults()
	var b bytes.Buffer
	for _, p := range f.Profiles {
		if p.Name == "" || strings.ContainsAny(p.Name+p.Units+p.Derivative, " \t") {
			return fmt.Errorf("peqdsk: writing profile %q: names and units must be single words", p.Name)
		}
		n := len(p.Psinorm)
		if len(p.Data) != n || len(p.Deriv) != n {
			return fmt.Errorf("peqdsk: writing profile %s: %w: %d psinorm, %d data and %d derivative values",
				p.Name, schema.ErrLengthMismatch, n, len(p.Data), len(p.Deriv))
		}
		name := p.Name
		if p.Units != "" {
			name = fmt.Sprintf("%s(%s)", p.Name, p.Units)
		}
		deriv := p.Derivative
		if deriv == "" {
			deriv = fmt.Sprintf("d%s/dpsiN", p.Name)
		}
		fmt.Fprintf(&b, "%d psinorm %s %s\n", n, name, deriv)
		for i := 0; i < n; i++ {
			writeRow(&b, o.Precision, p.Psinorm[i], p.Data[i], p.Deriv[i])
		}
	}
	fmt.Fprintf(&b, "%d N Z A of ION SPECIES\n", len(f.Species))
	for _, s := range f.Species {
		writeRow(&b, o.Precision, s.N, s.Z, s.A)
	}
	_, err := w.Write(b.Bytes())
	return err
}

func writeRow(b *bytes.Buffer, prec int, x ...float64) {
	for i, v := range x {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(v, 'f', prec, 64))
	}
	b.WriteByte('\n')
}
