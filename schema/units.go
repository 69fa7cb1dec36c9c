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
)

// Dimensions used by equilibrium quantities that are not predefined by
// package unit.
var (
	Ampere = unit.Dimensions{unit.CurrentDim: 1}

	// Tesla is magnetic flux density [kg s-2 A-1].
	Tesla = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2, unit.CurrentDim: -1}

	// TeslaMeter is the unit of the poloidal current function F = R Bt.
	TeslaMeter = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -2, unit.CurrentDim: -1}

	// WeberPerRadian is poloidal flux per radian [kg m2 s-2 A-1 rad-1].
	WeberPerRadian = unit.Dimensions{
		unit.MassDim:    1,
		unit.LengthDim:  2,
		unit.TimeDim:    -2,
		unit.CurrentDim: -1,
		unit.AngleDim:   -1,
	}

	// PascalPerWeber is the unit of p'(psi).
	PascalPerWeber = unit.Dimensions{unit.LengthDim: -3, unit.CurrentDim: 1, unit.AngleDim: 1}

	// FFPrime is the unit of F F'(psi) [T m2 rad Wb-1 = kg s-2 A-1 rad].
	FFPrime = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2, unit.CurrentDim: -1, unit.AngleDim: 1}
)

// Quantity returns the scalar field f of doc as a value with units.
func Quantity(doc *Document, f Field) (*unit.Unit, error) {
	if f.Units == nil {
		return nil, fmt.Errorf("schema: %s has no units", f.Name)
	}
	x, err := doc.Float(f.Name)
	if err != nil {
		return nil, err
	}
	return unit.New(x, f.Units), nil
}
