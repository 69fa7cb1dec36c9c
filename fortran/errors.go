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

package fortran

import "errors"

var (
	// ErrMalformedDescriptor is returned when a format specification
	// cannot be parsed.
	ErrMalformedDescriptor = errors.New("fortran: malformed format descriptor")

	// ErrRecordFormatMismatch is returned when a line, or a cell within it,
	// does not match the kind declared by the format, or when a value
	// handed to the encoder does not suit its cell.
	ErrRecordFormatMismatch = errors.New("fortran: record does not match format")

	// ErrUnexpectedEOF is returned when the input ends while more data
	// are still required.
	ErrUnexpectedEOF = errors.New("fortran: unexpected end of input")

	// ErrValueWidthExceeded is returned when a value cannot be rendered
	// within the width of its cell.
	ErrValueWidthExceeded = errors.New("fortran: value does not fit in field width")
)
