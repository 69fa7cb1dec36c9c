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
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/fortran"
)

// Default formats.
var (
	DefaultDataFormat   = fortran.MustParseFormat("(5e16.9)")
	DefaultHeaderFormat = fortran.MustParseFormat("(a48,3i4)")
	DefaultCountsFormat = fortran.MustParseFormat("(2i5)")
)

// DefaultLabel is the code name written at the start of a new header.
const DefaultLabel = "EQDSK"

// Derivatives says how ffprime and pprime are converted when COCOS
// rescales the poloidal flux.
type Derivatives int

const (
	// DerivativesUnspecified leaves the derivatives as they are and logs a
	// warning when COCOS rescales the flux.
	DerivativesUnspecified Derivatives = iota

	// DerivativesUnchanged leaves the derivatives as they are.
	DerivativesUnchanged

	// DerivativesScaled multiplies the derivatives by 2π on reading and
	// divides them by 2π on writing, the inverse of the flux scaling.
	DerivativesScaled
)

func (d Derivatives) String() string {
	switch d {
	case DerivativesUnspecified:
		return "unspecified"
	case DerivativesUnchanged:
		return "unchanged"
	case DerivativesScaled:
		return "scaled"
	}
	return fmt.Sprintf("Derivatives(%d)", int(d))
}

// ParseDerivatives returns the Derivatives named s.
func ParseDerivatives(s string) (Derivatives, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified":
		return DerivativesUnspecified, nil
	case "unchanged":
		return DerivativesUnchanged, nil
	case "scaled":
		return DerivativesScaled, nil
	}
	return DerivativesUnspecified, fmt.Errorf("geqdsk: invalid derivative convention %q", s)
}

// Options control reading and writing. A nil *Options is the same as
// &Options{}.
type Options struct {
	// DataFormat, HeaderFormat and CountsFormat override the formats of
	// the numeric blocks, the first line and the boundary counts line.
	DataFormat, HeaderFormat, CountsFormat *fortran.Format

	// COCOS is the coordinate convention of the file. When it is greater
	// than 10 the flux in the file is per radian times 2π.
	COCOS int

	// Derivatives chooses how ffprime and pprime follow the COCOS
	// flux scaling.
	Derivatives Derivatives

	// Label, Shot, TimeMS and Date make up a new header. If Label is empty
	// and the document has a comment, the comment is written instead.
	Label  string
	Shot   int
	TimeMS int
	Date   time.Time

	// Log receives warnings. It defaults to the logrus standard logger.
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
	if c.HeaderFormat == nil {
		c.HeaderFormat = DefaultHeaderFormat
	}
	if c.CountsFormat == nil {
		c.CountsFormat = DefaultCountsFormat
	}
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
	return &c
}

// header returns the text of the first line, before the integers.
func (o *Options) header(comment string, haveComment bool) string {
	if o.Label == "" && haveComment {
		return comment
	}
	label := o.Label
	if label == "" {
		label = DefaultLabel
	}
	if len(label) > 11 {
		o.Log.WithFields(logrus.Fields{"label": label}).Warn("geqdsk: label truncated to 11 characters")
		label = label[:11]
	}
	date := o.Date
	if date.IsZero() {
		date = time.Now()
	}
	return fmt.Sprintf("%-11s%-10s   %s", label, date.Format("02/01/2006"), o.shotTime())
}

// shotTime returns the last 24 characters of a new header. A long shot
// number takes space from the padding after the time; if the two still do
// not fit, the end is cut off.
func (o *Options) shotTime() string {
	shot := fmt.Sprintf("# %d", o.Shot)
	t := fmt.Sprintf("  %dms", o.TimeMS)
	s := fmt.Sprintf("%8s%-16s", shot, t)
	if len(s) > 24 {
		s = shot + t
	}
	if len(s) > 24 {
		o.Log.WithFields(logrus.Fields{"shot": o.Shot, "time_ms": o.TimeMS}).Warn("geqdsk: shot and time truncated to fit the header")
		s = s[:24]
	}
	return s + strings.Repeat(" ", 24-len(s))
}
