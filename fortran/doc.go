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

// Package fortran reads and writes fixed-column text records described by
// Fortran-style FORMAT strings such as "(5e16.9)", "(4i4)" or "(a48,3i4)".
//
// Only the subset of edit descriptors used by equilibrium files is supported:
// Iw (integers), Ew.d (fixed exponential floats; Dw.d is read as a synonym)
// and Aw (strings), each with an optional repeat count, plus one level of
// parenthesized repeat groups.
//
// A record is one line of text. Its columns are the cells of the format, in
// order. Arrays longer than one record are written over as many lines as
// needed, with the final line holding only the remaining cells, and are read
// back the same way. Multi-dimensional arrays are flattened in column-major
// order: the first index varies fastest.
//
// Values cut into cells by position rather than by whitespace, because
// adjacent cells in these files are frequently not separated by any blank
// (for example "-0.15E+01-0.21E+01").
package fortran
