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

// Package aeqdsk reads and writes A-EQDSK files, the summary of scalar
// diagnostics that EFIT writes alongside each G-EQDSK equilibrium.
//
// A file starts with a four line header, followed by blocks of numbers
// written four to a line:
//
//	general block 1    24 values
//	CO2 laser chords   rco2v, dco2v (mco2v values each), rco2r, dco2r (mco2r)
//	general block 2    44 values
//
// Files written since 1997 continue with an extended section:
//
//	sizes     (4i4)    nsilop, magpri, nfcoil, nesum
//	csilop and cmpr2, written as one array
//	ccbrsp, eccurt
//	a trailing block of up to 32 values
//
// Files without the extended section are read without it.
package aeqdsk

import (
	"github.com/ctessum/unit"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
)

// Header holds the fields of the first four lines.
var Header = &schema.Catalog{
	Name: "header",
	Fields: []schema.Field{
		{Name: "header", Description: "identification string, usually the run date", Default: schema.Constant(fortran.Str(" 26-OCT-98 09/07/98  "))},
		{Name: "shot", Description: "shot number", Default: schema.Constant(fortran.Int(0))},
		{Name: "time", Description: "time in ms", Default: schema.Float(0)},
		{Name: "jflag", Description: "0 if the fit failed", Default: schema.Constant(fortran.Int(1))},
		{Name: "lflag", Description: "greater than 0 if the fit failed", Default: schema.Constant(fortran.Int(0))},
		{Name: "limloc", Description: "plasma shape: IN, OUT, TOP or BOT for limited, SNT or SNB for single null, DN for double null", Default: schema.Constant(fortran.Str("DN"))},
		{Name: "mco2v", Description: "number of vertical CO2 density chords", Default: schema.SizeOf("rco2v")},
		{Name: "mco2r", Description: "number of radial CO2 density chords", Default: schema.SizeOf("rco2r")},
		{Name: "qmflag", Description: "axial q(0) flag: FIX if constrained, CLC if free", Default: schema.Constant(fortran.Str("CLC"))},
	},
}

// General1 is the first block of scalars.
var General1 = &schema.Catalog{
	Name: "general block 1",
	Fields: []schema.Field{
		{Name: "tsaisq", Description: "total chi2 from magnetic probes, flux loops, Rogowski and external coils", Default: schema.Float(0)},
		{Name: "rcencm", Description: "major radius in cm for vacuum field bcentr", Default: schema.Float(100)},
		{Name: "bcentr", Description: "vacuum toroidal magnetic field in Tesla at rcencm", Default: schema.Float(1), Units: schema.Tesla},
		{Name: "pasmat", Description: "measured plasma toroidal current in Ampere", Default: schema.Float(1e6), Units: schema.Ampere},
		{Name: "cpasma", Description: "fitted plasma toroidal current in Ampere-turn", Default: schema.Float(1e6), Units: schema.Ampere},
		{Name: "rout", Description: "major radius of geometric center in cm", Default: schema.Float(100)},
		{Name: "zout", Description: "Z of geometric center in cm", Default: schema.Float(0)},
		{Name: "aout", Description: "plasma minor radius in cm", Default: schema.Float(50)},
		{Name: "eout", Description: "plasma boundary elongation", Default: schema.Float(1)},
		{Name: "doutu", Description: "upper triangularity", Default: schema.Float(1)},
		{Name: "doutl", Description: "lower triangularity", Default: schema.Float(1)},
		{Name: "vout", Description: "plasma volume in cm3", Default: schema.Float(1000)},
		{Name: "rcurrt", Description: "major radius in cm of current centroid", Default: schema.Float(100)},
		{Name: "zcurrt", Description: "Z in cm at current centroid", Default: schema.Float(0)},
		{Name: "qsta", Description: "equivalent safety factor q*", Default: schema.Float(5)},
		{Name: "betat", Description: "toroidal beta in %", Default: schema.Float(1)},
		{Name: "betap", Description: "poloidal beta normalized by the average poloidal field bpolav", Default: schema.Float(1)},
		{Name: "ali", Description: "internal inductance normalized by the average poloidal field", Default: schema.Float(0)},
		{Name: "oleft", Description: "plasma inner gap in cm", Default: schema.Float(10)},
		{Name: "oright", Description: "plasma outer gap in cm", Default: schema.Float(10)},
		{Name: "otop", Description: "plasma top gap in cm", Default: schema.Float(10)},
		{Name: "obott", Description: "plasma bottom gap in cm", Default: schema.Float(10)},
		{Name: "qpsib", Description: "q at 95% of poloidal flux", Default: schema.Float(5)},
		{Name: "vertn", Description: "vacuum field index at current centroid", Default: schema.Float(1)},
	},
}

// Laser holds the CO2 interferometer chords. Each array starts on a new
// line.
var Laser = &schema.Catalog{
	Name: "laser",
	Fields: []schema.Field{
		{Name: "rco2v", Description: "path length in cm of vertical CO2 density chords", Default: schema.LengthOf("mco2v")},
		{Name: "dco2v", Description: "line average electron density in cm3 from vertical CO2 chords", Default: schema.LengthOf("mco2v")},
		{Name: "rco2r", Description: "path length in cm of radial CO2 density chords", Default: schema.LengthOf("mco2r")},
		{Name: "dco2r", Description: "line average electron density in cm3 from radial CO2 chords", Default: schema.LengthOf("mco2r")},
	},
}

// General2 is the second block of scalars.
var General2 = &schema.Catalog{
	Name: "general block 2",
	Fields: []schema.Field{
		{Name: "shearb", Default: schema.Float(0)},
		{Name: "bpolav", Description: "average poloidal magnetic field in Tesla defined through Ampere's law", Default: schema.Float(1), Units: schema.Tesla},
		{Name: "s1", Description: "Shafranov boundary line integral", Default: schema.Float(0)},
		{Name: "s2", Description: "Shafranov boundary line integral", Default: schema.Float(0)},
		{Name: "s3", Description: "Shafranov boundary line integral", Default: schema.Float(0)},
		{Name: "qout", Description: "q at plasma boundary", Default: schema.Float(0)},
		{Name: "olefs", Default: schema.Float(0)},
		{Name: "orighs", Description: "outer gap of external second separatrix in cm", Default: schema.Float(0)},
		{Name: "otops", Description: "top gap of external second separatrix in cm", Default: schema.Float(0)},
		{Name: "sibdry", Default: schema.Float(1)},
		{Name: "areao", Description: "cross sectional area in cm2", Default: schema.Float(100)},
		{Name: "wplasm", Default: schema.Float(0)},
		{Name: "terror", Description: "equilibrium convergence error", Default: schema.Float(0)},
		{Name: "elongm", Description: "elongation at magnetic axis", Default: schema.Float(0)},
		{Name: "qqmagx", Description: "axial safety factor q(0)", Default: schema.Float(0)},
		{Name: "cdflux", Description: "computed diamagnetic flux in Volt-sec", Default: schema.Float(0)},
		{Name: "alpha", Description: "Shafranov boundary line integral parameter", Default: schema.Float(0)},
		{Name: "rttt", Description: "Shafranov boundary line integral parameter", Default: schema.Float(0)},
		{Name: "psiref", Description: "reference poloidal flux in VS/rad", Default: schema.Float(1)},
		{Name: "xndnt", Description: "vertical stability parameter, vacuum field index normalized to critical index value", Default: schema.Float(0)},
		{Name: "rseps1", Description: "major radius of x point in cm", Default: schema.Float(1)},
		{Name: "zseps1", Default: schema.Float(-1)},
		{Name: "rseps2", Description: "major radius of x point in cm", Default: schema.Float(1)},
		{Name: "zseps2", Default: schema.Float(1)},
		{Name: "sepexp", Description: "separatrix radial expansion in cm", Default: schema.Float(0)},
		{Name: "obots", Description: "bottom gap of external second separatrix in cm", Default: schema.Float(0)},
		{Name: "btaxp", Description: "toroidal magnetic field at magnetic axis in Tesla", Default: schema.Float(1), Units: schema.Tesla},
		{Name: "btaxv", Description: "vacuum toroidal magnetic field at magnetic axis in Tesla", Default: schema.Float(1), Units: schema.Tesla},
		{Name: "aaq1", Description: "minor radius of q=1 surface in cm, 100 if not found", Default: schema.Float(100)},
		{Name: "aaq2", Description: "minor radius of q=2 surface in cm, 100 if not found", Default: schema.Float(100)},
		{Name: "aaq3", Description: "minor radius of q=3 surface in cm, 100 if not found", Default: schema.Float(100)},
		{Name: "seplim", Description: "minimum gap in cm in divertor configurations if positive, minus the minimum distance to the external separatrix in limiter configurations if negative", Default: schema.Float(0)},
		{Name: "rmagx", Description: "major radius in cm at magnetic axis", Default: schema.Float(100)},
		{Name: "zmagx", Default: schema.Float(0)},
		{Name: "simagx", Description: "poloidal flux at the magnetic axis", Default: schema.Float(0)},
		{Name: "taumhd", Description: "energy confinement time in ms", Default: schema.Float(0)},
		{Name: "betapd", Description: "diamagnetic poloidal beta", Default: schema.Float(0)},
		{Name: "betatd", Description: "diamagnetic toroidal beta in %", Default: schema.Float(0)},
		{Name: "wplasmd", Description: "diamagnetic plasma stored energy in Joule", Default: schema.Float(0), Units: unit.Joule},
		{Name: "diamag", Description: "measured diamagnetic flux in Volt-sec", Default: schema.Float(0)},
		{Name: "vloopt", Description: "measured loop voltage in volt", Default: schema.Float(0)},
		{Name: "taudia", Description: "diamagnetic energy confinement time in ms", Default: schema.Float(0)},
		{Name: "qmerci", Description: "Mercier stability criterion on axial q(0), q(0) > qmerci for stability", Default: schema.Float(0)},
		{Name: "tavem", Description: "average time in ms for magnetic and MSE data", Default: schema.Float(0)},
	},
}

// ExtendedSizes holds the lengths of the extended arrays, written on one
// line.
var ExtendedSizes = &schema.Catalog{
	Name: "extended sizes",
	Fields: []schema.Field{
		{Name: "nsilop", Description: "number of flux loop signals, len(csilop)", Default: schema.SizeOf("csilop")},
		{Name: "magpri", Description: "number of magnetic probe signals, len(cmpr2)", Default: schema.SizeOf("cmpr2")},
		{Name: "nfcoil", Description: "number of calculated external coil currents, len(ccbrsp)", Default: schema.SizeOf("ccbrsp")},
		{Name: "nesum", Description: "number of measured E-coil currents, len(eccurt)", Default: schema.SizeOf("eccurt")},
	},
}

// ExtendedArrays holds the arrays of the extended section. The first two
// are written one after the other as a single array.
var ExtendedArrays = &schema.Catalog{
	Name: "extended arrays",
	Fields: []schema.Field{
		{Name: "csilop", Description: "computed flux loop signals in Weber", Default: schema.LengthOf("nsilop")},
		{Name: "cmpr2", Description: "computed magnetic probe signals", Default: schema.LengthOf("magpri")},
		{Name: "ccbrsp", Description: "computed external coil currents in Ampere", Default: schema.LengthOf("nfcoil")},
		{Name: "eccurt", Description: "measured E-coil current in Ampere", Default: schema.LengthOf("nesum")},
	},
}

// ExtendedGeneral is the trailing block of scalars. Files may stop
// anywhere within it.
var ExtendedGeneral = &schema.Catalog{
	Name: "extended general block",
	Fields: []schema.Field{
		{Name: "pbinj", Description: "neutral beam injection power in Watts", Default: schema.Float(0), Units: unit.Watt},
		{Name: "rvsin", Description: "major radius of vessel inner hit spot in cm", Default: schema.Float(0)},
		{Name: "zvsin", Description: "Z of vessel inner hit spot in cm", Default: schema.Float(0)},
		{Name: "rvsout", Description: "major radius of vessel outer hit spot in cm", Default: schema.Float(0)},
		{Name: "zvsout", Description: "Z of vessel outer hit spot in cm", Default: schema.Float(0)},
		{Name: "vsurfa", Description: "plasma surface loop voltage in volt, E EQDSK only", Default: schema.Float(0)},
		{Name: "wpdot", Description: "time derivative of plasma stored energy in Watt, E EQDSK only", Default: schema.Float(0), Units: unit.Watt},
		{Name: "wbdot", Description: "time derivative of poloidal magnetic energy in Watt, E EQDSK only", Default: schema.Float(0), Units: unit.Watt},
		{Name: "slantu", Default: schema.Float(0)},
		{Name: "slantl", Default: schema.Float(0)},
		{Name: "zuperts", Default: schema.Float(0)},
		{Name: "chipre", Description: "total chi2 pressure", Default: schema.Float(0)},
		{Name: "cjor95", Default: schema.Float(0)},
		{Name: "pp95", Description: "normalized P'(y) at 95% normalized poloidal flux", Default: schema.Float(0)},
		{Name: "ssep", Default: schema.Float(0)},
		{Name: "yyy2", Description: "Shafranov Y2 current moment", Default: schema.Float(0)},
		{Name: "xnnc", Default: schema.Float(0)},
		{Name: "cprof", Description: "current profile parametrization parameter", Default: schema.Float(0)},
		{Name: "oring", Description: "not used", Default: schema.Float(0)},
		{Name: "cjor0", Description: "normalized flux surface average current density at 99% of normalized poloidal flux", Default: schema.Float(0)},
		{Name: "fexpan", Description: "flux expansion at x point", Default: schema.Float(0)},
		{Name: "qqmin", Description: "minimum safety factor qmin", Default: schema.Float(0)},
		{Name: "chigamt", Description: "total chi2 MSE", Default: schema.Float(0)},
		{Name: "ssi01", Description: "magnetic shear at 1% of normalized poloidal flux", Default: schema.Float(0)},
		{Name: "fexpvs", Description: "flux expansion at outer lower vessel hit spot", Default: schema.Float(0)},
		{Name: "sepnose", Description: "radial distance in cm between x point and external field line at znose", Default: schema.Float(0)},
		{Name: "ssi95", Description: "magnetic shear at 95% of normalized poloidal flux", Default: schema.Float(0)},
		{Name: "rqqmin", Description: "normalized radius of qmin, square root of normalized volume", Default: schema.Float(0)},
		{Name: "cjor99", Default: schema.Float(0)},
		{Name: "cj1ave", Description: "normalized average current density in plasma outer 5% normalized poloidal flux region", Default: schema.Float(0)},
		{Name: "rmidin", Description: "inner major radius in m at Z=0.0", Default: schema.Float(0), Units: unit.Meter},
		{Name: "rmidout", Description: "outer major radius in m at Z=0.0", Default: schema.Float(0), Units: unit.Meter},
	},
}

// Extended lists the catalogs of the extended section. It is written if
// any of their fields is present.
var Extended = []*schema.Catalog{ExtendedSizes, ExtendedArrays, ExtendedGeneral}

// Catalogs lists every block of the file in order.
var Catalogs = []*schema.Catalog{Header, General1, Laser, General2, ExtendedSizes, ExtendedArrays, ExtendedGeneral}

// NewDocument returns an empty A-EQDSK document.
func NewDocument() *schema.Document { return schema.NewDocument(nil) }

func field(name string) schema.Field {
	for _, c := range Catalogs {
		if f, ok := c.Field(name); ok {
			return f
		}
	}
	panic("aeqdsk: no field " + name)
}
