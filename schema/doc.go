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

// Package schema maps named fields of an equilibrium file onto the values
// read by package fortran.
//
// A Document holds the contents of one file as named scalars and arrays.
// A Catalog is an ordered list of Fields describing one block of a file,
// together with the rule used to fill each field in when a document does not
// provide it. All defaulting goes through Resolve, so that the rules are the
// same for every file format.
package schema

import "errors"

var (
	// ErrLengthMismatch is returned when an array does not have the length
	// given by its size field.
	ErrLengthMismatch = errors.New("schema: array length does not match size field")

	// ErrMissingField is returned when a required field is absent and has
	// no default.
	ErrMissingField = errors.New("schema: missing field")

	// ErrWrongKind is returned when a field holds a different kind of data
	// than was asked for, such as an array where a scalar was expected.
	ErrWrongKind = errors.New("schema: field has the wrong kind")

	// ErrInvalidCatalog is returned by Validate for inconsistent field
	// definitions.
	ErrInvalidCatalog = errors.New("schema: invalid catalog")
)
