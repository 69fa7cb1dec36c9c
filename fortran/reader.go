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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// Reader reads records and arrays from line-oriented text.
type Reader struct {
	r    *bufio.Reader
	line int

	// Log receives non-fatal diagnostics such as discarded trailing
	// values. It defaults to the logrus standard logger.
	Log logrus.FieldLogger
}

// NewReader returns a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br, Log: logrus.StandardLogger()}
}

// Line returns the number of lines read so far.
func (r *Reader) Line() int { return r.line }

// ReadLine returns the next line without its terminator. The last line of
// the input does not need to be terminated.
func (r *Reader) ReadLine() (string, error) {
	s, err := r.r.ReadString('\n')
	if err == io.EOF {
		if s == "" {
			return "", fmt.Errorf("%w after line %d", ErrUnexpectedEOF, r.line)
		}
	} else if err != nil {
		return "", fmt.Errorf("fortran: reading line %d: %w", r.line+1, err)
	}
	r.line++
	return strings.TrimRight(s, "\r\n"), nil
}

// ReadRecord reads one line and decodes it as a complete record of f.
func (r *Reader) ReadRecord(f *Format) ([]Value, error) {
	line, err := r.ReadLine()
	if err != nil {
		return nil, err
	}
	vals, err := f.Decode(line)
	if err != nil {
		return nil, fmt.Errorf("fortran: line %d: %w", r.line, err)
	}
	return vals, nil
}

// ReadArray reads the values described by req, taking each line as a
// record of f. A line may hold fewer cells than f describes, in which case
// only the cells present are read. If the final line holds more values
// than needed, the extra values are discarded and a warning is logged.
func (r *Reader) ReadArray(req Request, f *Format) ([]Value, error) {
	if err := req.check(); err != nil {
		return nil, err
	}
	if req.IsUntilEnd() {
		return r.readUntilEnd(f)
	}
	n := req.Len()
	o := make([]Value, 0, n)
	for len(o) < n {
		line, err := r.ReadLine()
		if err != nil {
			return nil, fmt.Errorf("fortran: reading %v array: %d of %d values read: %w", req, len(o), n, err)
		}
		vals, err := f.decodeCells(line, f.cellsIn(line))
		if err != nil {
			return nil, fmt.Errorf("fortran: line %d: %w", r.line, err)
		}
		if extra := len(o) + len(vals) - n; extra > 0 {
			r.Log.WithFields(logrus.Fields{
				"line":      r.line,
				"discarded": extra,
			}).Warn("fortran: values beyond the end of the array were discarded")
			vals = vals[:len(vals)-extra]
		}
		o = append(o, vals...)
	}
	return o, nil
}

func (r *Reader) readUntilEnd(f *Format) ([]Value, error) {
	var o []Value
	for {
		line, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, ErrUnexpectedEOF) {
				return o, nil
			}
			return nil, err
		}
		vals, err := f.decodeCells(line, f.cellsIn(line))
		if err != nil {
			return nil, fmt.Errorf("fortran: line %d: %w", r.line, err)
		}
		o = append(o, vals...)
	}
}

// ReadFloats reads n numbers with format f.
func (r *Reader) ReadFloats(f *Format, n int) ([]float64, error) {
	vals, err := r.ReadArray(Fixed(n), f)
	if err != nil {
		return nil, err
	}
	return Floats(vals), nil
}

// ReadDense reads an array with the given dimensions, stored in
// column-major order.
func (r *Reader) ReadDense(f *Format, dims ...int) (*sparse.DenseArray, error) {
	vals, err := r.ReadArray(Shape(dims...), f)
	if err != nil {
		return nil, err
	}
	return Reshape(Floats(vals), dims...)
}
