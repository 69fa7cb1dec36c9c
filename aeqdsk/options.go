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
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/fortran"
)

// Default formats.
var (
	DefaultDataFormat          = fortran.MustParseFormat("(4e16.9)")
	DefaultExtendedSizesFormat = fortran.MustParseFormat("(4i4)")
	DefaultTimeFormat          = fortran.MustParseFormat("(1e16.9)")
)

// Options control reading and writing. A nil *Options uses the default
// formats and logger.
type Options struct {
	DataFormat          *fortran.Format
	ExtendedSizesFormat *fortran.Format
	TimeFormat          *fortran.Format

	// Log receives warnings about legacy files and unrecognised values.
	Log logrus.FieldLogger
}

func (o *Options) withDefaults() *Options {
	var c Options
	if o != nil {
		c = *o
	}
	if c.DataFormat == nil {
		c.DataFormat = DefaultDataFormat
	}
	if c.ExtendedSizesFormat == nil {
		c.ExtendedSizesFormat = DefaultExtendedSizesFormat
	}
	if c.TimeFormat == nil {
		c.TimeFormat = DefaultTimeFormat
	}
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
	return &c
}
