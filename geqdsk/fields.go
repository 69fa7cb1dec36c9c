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

// Package geqdsk reads and writes G-EQDSK files, which hold a tokamak
// equilibrium on a rectangular (R, Z) grid together with its flux surface
// profiles and the plasma boundary and limiter contours.
//
// The file layout is:
//
//	header        (a48,3i4)   comment, idum, nx, ny
//	scalars       (5e16.9)    20 values, some repeated
//	fpol, pres, ffprime, pprime   nx values each
//	psi           nx*ny values, first index fastest
//	qpsi          nx values
//	counts        (2i5)       nbdry, nlim
//	boundary      nbdry (R, Z) pairs
//	limiter       nlim (R, Z) pairs
//
// Every array starts on a new line.
package geqdsk

import (
	"github.com/ctessum/unit"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// Header holds the fields of the first line.
var Header = &schema.Catalog{
	Name: "header",
	Fields: []schema.Field{
		{Name: "comment", Description: "free text: code name, date, shot and time"},
		{Name: "idum", Description: "unused integer", Default: schema.Constant(fortran.Int(3))},
		{Name: "nx", Description: "number of grid points in R"},
		{Name: "ny", Description: "number of grid points in Z"},
	},
}

// Scalars holds the distinct scalar fields of the second block. Their
// position in the file is given by ScalarSlots.
var Scalars = &schema.Catalog{
	Name: "scalars",
	Fields: []schema.Field{
		{Name: "rdim", Description: "horizontal extent of the grid", Units: unit.Meter},
		{Name: "zdim", Description: "vertical extent of the grid", Units: unit.Meter},
		{Name: "rcentr", Description: "reference major radius for bcentr", Units: unit.Meter},
		{Name: "rleft", Description: "major radius of the inner edge of the grid", Units: unit.Meter},
		{Name: "zmid", Description: "height of the centre of the grid", Units: unit.Meter},
		{Name: "rmagx", Description: "major radius of the magnetic axis", Units: unit.Meter},
		{Name: "zmagx", Description: "height of the magnetic axis", Units: unit.Meter},
		{Name: "simagx", Description: "poloidal flux at the magnetic axis", Units: schema.WeberPerRadian},
		{Name: "sibdry", Description: "poloidal flux at the plasma boundary", Units: schema.WeberPerRadian},
		{Name: "bcentr", Description: "vacuum toroidal field at rcentr", Units: schema.Tesla},
		{Name: "cpasma", Description: "plasma current", Units: schema.Ampere},
	},
}

// ScalarSlots gives the field stored in each of the 20 scalar positions.
// Empty slots are written as zero and ignored on reading. When a field
// appears more than once, the first occurrence is the one that is read.
var ScalarSlots = [20]string{
	"rdim", "zdim", "rcentr", "rleft", "zmid",
	"rmagx", "zmagx", "simagx", "sibdry", "bcentr",
	"cpasma", "simagx", "", "rmagx", "",
	"zmagx", "", "sibdry", "", "",
}

// Profiles holds the arrays on the flux surface and R-Z grids.
var Profiles = &schema.Catalog{
	Name: "profiles",
	Fields: []schema.Field{
		{Name: "fpol", Description: "poloidal current function F = R Bt on the flux grid", Units: schema.TeslaMeter},
		{Name: "pres", Description: "plasma pressure on the flux grid", Units: unit.Pascal},
		{Name: "ffprime", Description: "F dF/dpsi on the flux grid", Default: schema.LengthOf("nx"), Units: schema.FFPrime},
		{Name: "pprime", Description: "dp/dpsi on the flux grid", Default: schema.LengthOf("nx"), Units: schema.PascalPerWeber},
		{Name: "psi", Description: "poloidal flux on the nx by ny grid", Units: schema.WeberPerRadian},
		{Name: "qpsi", Description: "safety factor on the flux grid", Units: unit.Dimless},
	},
}

// Contours holds the plasma boundary and limiter.
var Contours = &schema.Catalog{
	Name: "contours",
	Fields: []schema.Field{
		{Name: "nbdry", Description: "number of boundary points", Default: schema.SizeOf("rbdry")},
		{Name: "nlim", Description: "number of limiter points", Default: schema.SizeOf("rlim")},
		{Name: "rbdry", Description: "major radius of the boundary points", Default: schema.LengthOf("nbdry"), Units: unit.Meter},
		{Name: "zbdry", Description: "height of the boundary points", Default: schema.LengthOf("nbdry"), Units: unit.Meter},
		{Name: "rlim", Description: "major radius of the limiter points", Default: schema.LengthOf("nlim"), Units: unit.Meter},
		{Name: "zlim", Description: "height of the limiter points", Default: schema.LengthOf("nlim"), Units: unit.Meter},
	},
}

// Catalogs lists every block of the file in order.
var Catalogs = []*schema.Catalog{Header, Scalars, Profiles, Contours}

// Aliases maps the names used by EFIT and its readers to the field names
// used here.
var Aliases = schema.Aliases{
	"case":    "comment",
	"nw":      "nx",
	"nh":      "ny",
	"xdim":    "rdim",
	"rmaxis":  "rmagx",
	"zmaxis":  "zmagx",
	"simag":   "simagx",
	"sibry":   "sibdry",
	"current": "cpasma",
	"ffprim":  "ffprime",
	"psirz":   "psi",
	"nbbbs":   "nbdry",
	"limitr":  "nlim",
	"rbbbs":   "rbdry",
	"zbbbs":   "zbdry",
	"xlim":    "rlim",
	"ylim":    "zlim",
}

// NewDocument returns an empty document that understands Aliases.
func NewDocument() *schema.Document { return schema.NewDocument(Aliases) }

func field(name string) schema.Field {
	for _, c := range Catalogs {
		if f, ok := c.Field(name); ok {
			return f
		}
	}
	panic("geqdsk: no field " + name)
}
