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

import (
	"fmt"
	"strconv"
	"strings"
)

// A Request describes how many values ReadArray should read and the shape
// they have.
type Request struct {
	dims     []int
	untilEnd bool
}

// Scalar requests a single value.
func Scalar() Request { return Request{dims: []int{}} }

// Fixed requests a one-dimensional array of n values.
func Fixed(n int) Request { return Request{dims: []int{n}} }

// Shape requests an array with the given dimensions, stored in column-major
// order.
func Shape(dims ...int) Request { return Request{dims: append([]int{}, dims...)} }

// UntilEnd requests every value remaining in the input.
func UntilEnd() Request { return Request{untilEnd: true} }

// Len returns the number of values requested, or -1 for UntilEnd.
func (q Request) Len() int {
	if q.untilEnd {
		return -1
	}
	n := 1
	for _, d := range q.dims {
		n *= d
	}
	return n
}

// Dims returns the requested dimensions. It is empty for scalars and nil
// for UntilEnd.
func (q Request) Dims() []int { return append([]int(nil), q.dims...) }

// IsUntilEnd reports whether q reads to the end of the input.
func (q Request) IsUntilEnd() bool { return q.untilEnd }

func (q Request) check() error {
	for _, d := range q.dims {
		if d < 0 {
			return fmt.Errorf("fortran: invalid request %v: negative dimension", q)
		}
	}
	return nil
}

func (q Request) String() string {
	switch {
	case q.untilEnd:
		return "until end"
	case len(q.dims) == 0:
		return "scalar"
	}
	s := make([]string, len(q.dims))
	for i, d := range q.dims {
		s[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(s, ",") + ")"
}
