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

	"github.com/ctessum/sparse"
)

// Reshape places flat, which is in column-major order, into a new array
// with the given dimensions. len(flat) must equal the product of dims.
func Reshape(flat []float64, dims ...int) (*sparse.DenseArray, error) {
	n := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("fortran: reshape: negative dimension in %v", dims)
		}
		n *= d
	}
	if n != len(flat) {
		return nil, fmt.Errorf("fortran: reshape: %d values do not fill shape %v", len(flat), dims)
	}
	a := sparse.ZerosDense(append([]int(nil), dims...)...)
	if n == 0 {
		return a, nil
	}
	index := make([]int, len(dims))
	for _, v := range flat {
		a.Set(v, index...)
		next(index, dims)
	}
	return a, nil
}

// Flatten returns the elements of a in column-major order.
func Flatten(a *sparse.DenseArray) []float64 {
	dims := a.Shape
	n := 1
	for _, d := range dims {
		n *= d
	}
	o := make([]float64, n)
	if n == 0 {
		return o
	}
	index := make([]int, len(dims))
	for i := range o {
		o[i] = a.Get(index...)
		next(index, dims)
	}
	return o
}

// next advances index to the following element in column-major order.
func next(index, dims []int) {
	for i := range index {
		index[i]++
		if index[i] < dims[i] {
			return
		}
		index[i] = 0
	}
}
