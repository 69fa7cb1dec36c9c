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
	"os"
	"sort"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/unit"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// netCDF dimensions of each array field. psi is stored with Z as the
// slow dimension so that its values keep their file order.
var ncDims = map[string][]string{
	"fpol":    {"nx"},
	"pres":    {"nx"},
	"ffprime": {"nx"},
	"pprime":  {"nx"},
	"qpsi":    {"nx"},
	"psi":     {"ny", "nx"},
	"rbdry":   {"nbdry"},
	"zbdry":   {"nbdry"},
	"rlim":    {"nlim"},
	"zlim":    {"nlim"},
}

// WriteNetCDF writes the arrays of doc to w as netCDF variables, with
// their descriptions and units as attributes. Scalars are written as
// global attributes. Empty arrays are left out.
func WriteNetCDF(doc *schema.Document, w *os.File) error {
	sizes := map[string]int{"nbdry": doc.Len("rbdry"), "nlim": doc.Len("rlim")}
	for _, n := range []string{"nx", "ny"} {
		v, err := doc.Int(n)
		if err != nil {
			return fmt.Errorf("geqdsk: writing netcdf: %w", err)
		}
		sizes[n] = v
	}

	var vars []string
	used := make(map[string]bool)
	for _, c := range Catalogs {
		for _, f := range c.Fields {
			dims, ok := ncDims[f.Name]
			if !ok || doc.Len(f.Name) == 0 {
				continue
			}
			n := 1
			for _, dim := range dims {
				n *= sizes[dim]
			}
			if doc.Len(f.Name) != n {
				return fmt.Errorf("geqdsk: writing netcdf: %w: %s has %d values, want %d",
					schema.ErrLengthMismatch, f.Name, doc.Len(f.Name), n)
			}
			vars = append(vars, f.Name)
			for _, dim := range dims {
				used[dim] = true
			}
		}
	}
	var dimNames []string
	var dimLengths []int
	for _, dim := range []string{"nx", "ny", "nbdry", "nlim"} {
		if used[dim] {
			dimNames = append(dimNames, dim)
			dimLengths = append(dimLengths, sizes[dim])
		}
	}

	h := cdf.NewHeader(dimNames, dimLengths)
	h.AddAttribute("", "comment", "G-EQDSK equilibrium")
	for _, name := range doc.Names() {
		if _, ok := ncDims[name]; ok {
			continue
		}
		it, _ := doc.Get(name)
		if it.IsArray() || len(it.Values) != 1 {
			continue
		}
		switch v := it.Values[0]; v.Kind() {
		case fortran.Integer:
			h.AddAttribute("", name, []int32{int32(v.AsInt())})
		case fortran.Float:
			h.AddAttribute("", name, []float64{v.AsFloat()})
		case fortran.String:
			if name != "comment" && v.AsString() != "" {
				h.AddAttribute("", name, v.AsString())
			}
		}
	}
	if c, err := doc.Text("comment"); err == nil && c != "" {
		h.AddAttribute("", "header", c)
	}
	for _, name := range vars {
		f := field(name)
		h.AddVariable(name, ncDims[name], []float64{0})
		h.AddAttribute(name, "description", f.Description)
		if u := unitsText(f.Units); u != "" {
			h.AddAttribute(name, "units", u)
		}
	}
	h.Define()

	cf, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("geqdsk: writing netcdf: %w", err)
	}
	for _, name := range vars {
		x, err := doc.Floats(name)
		if err != nil {
			return fmt.Errorf("geqdsk: writing netcdf: %w", err)
		}
		end := cf.Header.Lengths(name)
		start := make([]int, len(end))
		if _, err := cf.Writer(name, start, end).Write(x); err != nil {
			return fmt.Errorf("geqdsk: writing variable %s to netcdf file: %v", name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

// unitsText writes d as "kg m^2 A^-1 s^-2": positive powers first, each
// group ordered by symbol. unit.Dimensions.String does not give a stable
// order, which would make the file differ from run to run.
func unitsText(d unit.Dimensions) string {
	type atom struct {
		symbol string
		pow    int
	}
	var atoms []atom
	for dim, pow := range d {
		if pow != 0 {
			atoms = append(atoms, atom{dim.String(), pow})
		}
	}
	sort.Slice(atoms, func(i, j int) bool {
		if (atoms[i].pow < 0) != (atoms[j].pow < 0) {
			return atoms[i].pow > 0
		}
		return atoms[i].symbol < atoms[j].symbol
	})
	s := make([]string, len(atoms))
	for i, a := range atoms {
		s[i] = a.symbol
		if a.pow != 1 {
			s[i] += fmt.Sprintf("^%d", a.pow)
		}
	}
	return strings.Join(s, " ")
}
