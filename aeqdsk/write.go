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
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// Write writes doc as an A-EQDSK file. doc is not modified, and nothing
// is written to w unless the whole file can be encoded.
//
// Missing fields take their catalog defaults. The extended section is
// written only if doc holds one of its fields, and its trailing block
// stops after the last field present, filled out to a whole line.
func Write(doc *schema.Document, w io.Writer, o *Options) error {
	o = o.withDefaults()
	d := doc.Clone()
	extended := false
	for _, c := range Extended {
		extended = extended || c.AnyPresent(d)
	}
	sizeCatalogs := []*schema.Catalog{Header}
	if extended {
		sizeCatalogs = append(sizeCatalogs, ExtendedSizes)
	}
	for _, c := range sizeCatalogs {
		for _, f := range c.Fields {
			if f.Default.Kind != schema.SizeOfDefault {
				continue
			}
			it, err := schema.Resolve(f, d)
			if err != nil {
				return fmt.Errorf("aeqdsk: writing %s: %w", f.Name, err)
			}
			d.Set(f.Name, it)
		}
	}

	var b bytes.Buffer
	fw := fortran.NewWriter(&b)
	if err := writeHeader(fw, d, o); err != nil {
		return err
	}
	if err := writeScalars(fw, d, o, General1.Fields, General1.Name); err != nil {
		return err
	}
	for _, f := range Laser.Fields {
		if err := writeArrays(fw, d, o, f.Name); err != nil {
			return err
		}
	}
	if err := writeScalars(fw, d, o, General2.Fields, General2.Name); err != nil {
		return err
	}

	if extended {
		sizes, err := ExtendedSizes.Values(d)
		if err != nil {
			return fmt.Errorf("aeqdsk: writing %s: %w", ExtendedSizes.Name, err)
		}
		if err := fw.WriteRecord(sizes, o.ExtendedSizesFormat); err != nil {
			return fmt.Errorf("aeqdsk: writing %s: %w", ExtendedSizes.Name, err)
		}
		for _, names := range [][]string{{"csilop", "cmpr2"}, {"ccbrsp"}, {"eccurt"}} {
			if err := writeArrays(fw, d, o, names...); err != nil {
				return err
			}
		}
		fields := ExtendedGeneral.Trim(d, o.DataFormat.Len())
		if err := writeScalars(fw, d, o, fields, ExtendedGeneral.Name); err != nil {
			return err
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}

func writeHeader(fw *fortran.Writer, d *schema.Document, o *Options) error {
	vals, err := Header.Values(d)
	if err != nil {
		return fmt.Errorf("aeqdsk: writing header: %w", err)
	}
	v := make(map[string]fortran.Value)
	for i, f := range Header.Fields {
		text := f.Name == "header" || f.Name == "limloc" || f.Name == "qmflag"
		if text != (vals[i].Kind() == fortran.String) {
			return fmt.Errorf("aeqdsk: writing header: %w: %s holds a %v", schema.ErrWrongKind, f.Name, vals[i].Kind())
		}
		v[f.Name] = vals[i]
	}
	time, err := o.TimeFormat.Encode([]fortran.Value{v["time"]})
	if err != nil {
		return fmt.Errorf("aeqdsk: writing time: %w", err)
	}
	lines := []string{
		fmt.Sprintf("%-11s", v["header"].AsString()),
		fmt.Sprintf(" %d               1", v["shot"].AsInt()),
		strings.TrimRight(time, "\n"),
		fmt.Sprintf("*%s             %d                %d %s  %d   %d %s",
			strings.TrimSpace(time), v["jflag"].AsInt(), v["lflag"].AsInt(), v["limloc"].AsString(),
			v["mco2v"].AsInt(), v["mco2r"].AsInt(), v["qmflag"].AsString()),
	}
	for _, l := range lines {
		if err := fw.WriteLine(l); err != nil {
			return err
		}
	}
	return nil
}

func writeScalars(fw *fortran.Writer, d *schema.Document, o *Options, fields []schema.Field, block string) error {
	vals, err := schema.Values(fields, d)
	if err != nil {
		return fmt.Errorf("aeqdsk: writing %s: %w", block, err)
	}
	if err := fw.WriteArray(vals, o.DataFormat); err != nil {
		return fmt.Errorf("aeqdsk: writing %s: %w", block, err)
	}
	return nil
}

// writeArrays writes the named arrays one after the other, starting on a
// new line.
func writeArrays(fw *fortran.Writer, d *schema.Document, o *Options, names ...string) error {
	var vals []fortran.Value
	for _, name := range names {
		it, err := schema.Resolve(field(name), d)
		if err != nil {
			return fmt.Errorf("aeqdsk: writing %s: %w", name, err)
		}
		if !it.IsArray() {
			return fmt.Errorf("aeqdsk: writing %s: %w: not an array", name, schema.ErrWrongKind)
		}
		vals = append(vals, it.Values...)
	}
	if err := fw.WriteArray(vals, o.DataFormat); err != nil {
		return fmt.Errorf("aeqdsk: writing %s: %w", strings.Join(names, " and "), err)
	}
	return nil
}
