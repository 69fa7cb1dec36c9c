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
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
	"gonum.org/v1/gonum/floats"
)

// fluxFields are stored per radian in a Document and per 2π radians in
// files with COCOS greater than 10.
var fluxFields = []string{"psi", "simagx", "sibdry"}

var derivativeFields = []string{"ffprime", "pprime"}

// fromFile converts doc, as read, to flux per radian.
func fromFile(doc *schema.Document, o *Options) error {
	if o.COCOS <= 10 {
		return nil
	}
	if err := scale(doc, 1/(2*math.Pi), fluxFields...); err != nil {
		return err
	}
	return derivatives(doc, o, 2*math.Pi)
}

// toFile converts doc, which must be a copy, to the flux convention of
// the file.
func toFile(doc *schema.Document, o *Options) error {
	if o.COCOS <= 10 {
		return nil
	}
	if err := scale(doc, 2*math.Pi, fluxFields...); err != nil {
		return err
	}
	return derivatives(doc, o, 1/(2*math.Pi))
}

func derivatives(doc *schema.Document, o *Options, factor float64) error {
	switch o.Derivatives {
	case DerivativesScaled:
		return scale(doc, factor, derivativeFields...)
	case DerivativesUnspecified:
		o.Log.WithFields(logrus.Fields{"cocos": o.COCOS}).Warn(
			"geqdsk: ffprime and pprime were not rescaled with psi; set Derivatives to choose a convention")
	}
	return nil
}

// scale multiplies the named fields of doc by factor. Absent fields are
// skipped.
func scale(doc *schema.Document, factor float64, names ...string) error {
	for _, name := range names {
		it, ok := doc.Get(name)
		if !ok {
			continue
		}
		for _, v := range it.Values {
			if !v.IsNumeric() {
				return fmt.Errorf("geqdsk: scaling %s: %w", name, schema.ErrWrongKind)
			}
		}
		x := it.Floats()
		floats.Scale(factor, x)
		doc.Set(name, schema.Item{Values: fortran.Reals(x), Shape: it.Shape})
	}
	return nil
}
