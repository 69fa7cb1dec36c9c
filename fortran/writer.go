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
	"io"
	"strings"

	"github.com/ctessum/sparse"
)

// Writer writes records and arrays as lines of text.
type Writer struct {
	w    io.Writer
	line int
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Line returns the number of lines written so far.
func (w *Writer) Line() int { return w.line }

// WriteLine writes s followed by a newline, unless s already ends in one.
func (w *Writer) WriteLine(s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		return fmt.Errorf("fortran: writing line %d: %w", w.line+1, err)
	}
	w.line++
	return nil
}

// WriteRecord writes vals as a single record of f.
func (w *Writer) WriteRecord(vals []Value, f *Format) error {
	line, err := f.Encode(vals)
	if err != nil {
		return fmt.Errorf("fortran: line %d: %w", w.line+1, err)
	}
	return w.WriteLine(line)
}

// WriteArray writes vals as consecutive records of f. Every line but the
// last holds f.Len() values. Nothing is written for an empty array.
func (w *Writer) WriteArray(vals []Value, f *Format) error {
	n := f.Len()
	for i := 0; i < len(vals); i += n {
		end := i + n
		if end > len(vals) {
			end = len(vals)
		}
		if err := w.WriteRecord(vals[i:end], f); err != nil {
			return err
		}
	}
	return nil
}

// WriteFloats writes x as an array of f.
func (w *Writer) WriteFloats(x []float64, f *Format) error {
	return w.WriteArray(Reals(x), f)
}

// WriteDense writes a in column-major order.
func (w *Writer) WriteDense(a *sparse.DenseArray, f *Format) error {
	return w.WriteFloats(Flatten(a), f)
}
