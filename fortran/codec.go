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
	"math"
	"strconv"
	"strings"
)

// Encode renders vals as one newline-terminated record. vals may hold fewer
// values than f has cells, in which case the line ends after the last value.
func (f *Format) Encode(vals []Value) (string, error) {
	if len(vals) > len(f.cells) {
		return "", fmt.Errorf("%w: %d values given but %s holds %d", ErrRecordFormatMismatch, len(vals), f, len(f.cells))
	}
	var b strings.Builder
	b.Grow(f.width + 1)
	for i, v := range vals {
		s, err := encodeCell(f.cells[i], v)
		if err != nil {
			return "", fmt.Errorf("cell %d of %s: %w", i+1, f, err)
		}
		b.WriteString(s)
	}
	b.WriteByte('\n')
	return b.String(), nil
}

// Decode parses one full record. The line terminator, if present, is
// ignored.
func (f *Format) Decode(line string) ([]Value, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < f.width {
		return nil, fmt.Errorf("%w: line %q is %d characters long but %s needs %d",
			ErrRecordFormatMismatch, line, len(line), f, f.width)
	}
	return f.decodeCells(line, len(f.cells))
}

// decodeCells parses the first n cells of line. The last cell may be cut
// short by the end of the line.
func (f *Format) decodeCells(line string, n int) ([]Value, error) {
	o := make([]Value, n)
	for i := 0; i < n; i++ {
		c := f.cells[i]
		end := c.offset + c.width
		if end > len(line) {
			end = len(line)
		}
		var text string
		if c.offset < end {
			text = line[c.offset:end]
		}
		v, err := decodeCell(c, text)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c.offset+1, err)
		}
		o[i] = v
	}
	return o, nil
}

// cellsIn returns the number of cells that line holds data for. A line as
// wide as the record holds every cell, blank ones included; a shorter line
// ends at its last non-blank character.
func (f *Format) cellsIn(line string) int {
	line = strings.TrimRight(line, "\r\n")
	if len(line) >= f.width {
		return len(f.cells)
	}
	n := len(strings.TrimRight(line, " \t"))
	for i, c := range f.cells {
		if c.offset >= n {
			return i
		}
	}
	return len(f.cells)
}

func encodeCell(c cell, v Value) (string, error) {
	switch c.kind {
	case Integer:
		if !v.isIntegral() {
			return "", fmt.Errorf("%w: %s value %v in integer field", ErrRecordFormatMismatch, v.Kind(), v)
		}
		s := strconv.FormatInt(v.AsInt(), 10)
		if len(s) > c.width {
			return "", fmt.Errorf("%w: %s needs %d characters but the field is %d wide",
				ErrValueWidthExceeded, s, len(s), c.width)
		}
		return strings.Repeat(" ", c.width-len(s)) + s, nil
	case Float:
		if !v.IsNumeric() {
			return "", fmt.Errorf("%w: %s value %v in float field", ErrRecordFormatMismatch, v.Kind(), v)
		}
		return formatE(v.AsFloat(), c.width, c.digits)
	case String:
		if v.Kind() != String {
			return "", fmt.Errorf("%w: %s value %v in string field", ErrRecordFormatMismatch, v.Kind(), v)
		}
		s := v.AsString()
		if len(s) > c.width {
			return s[:c.width], nil
		}
		return s + strings.Repeat(" ", c.width-len(s)), nil
	}
	return "", fmt.Errorf("%w: invalid cell kind", ErrRecordFormatMismatch)
}

func decodeCell(c cell, text string) (Value, error) {
	switch c.kind {
	case Integer:
		t := strings.TrimSpace(text)
		if t == "" {
			return Int(0), nil
		}
		i, err := ParseInteger(t)
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	case Float:
		t := strings.TrimSpace(text)
		if t == "" {
			return Real(0), nil
		}
		x, err := parseReal(t, c.digits)
		if err != nil {
			return Value{}, err
		}
		return Real(x), nil
	case String:
		return Str(text), nil
	}
	return Value{}, fmt.Errorf("%w: invalid cell kind", ErrRecordFormatMismatch)
}

// formatE renders x in the Fortran Ew.d style: a sign column (blank for
// non-negative numbers), a mantissa 0.ddd with d digits and a signed two
// digit exponent, right-justified in w characters. If the field is exactly
// one character too narrow, the leading zero is dropped.
func formatE(x float64, w, d int) (string, error) {
	switch {
	case math.IsNaN(x):
		return rightJustify("NaN", w)
	case math.IsInf(x, 1):
		return rightJustify("Inf", w)
	case math.IsInf(x, -1):
		return rightJustify("-Inf", w)
	}
	sign := " "
	if x < 0 {
		sign = "-"
	}
	a := math.Abs(x)

	digits := strings.Repeat("0", d)
	exp := 0
	if a != 0 {
		prec := d - 1
		if prec < 0 {
			prec = 0
		}
		s := strconv.FormatFloat(a, 'e', prec, 64)
		i := strings.IndexByte(s, 'e')
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return "", fmt.Errorf("fortran: formatting %v: %v", x, err)
		}
		exp = e + 1
		if d > 0 {
			digits = strings.Replace(s[:i], ".", "", 1)
		}
	}
	if exp < -99 || exp > 99 {
		return "", fmt.Errorf("%w: the exponent of %g needs three digits", ErrValueWidthExceeded, x)
	}
	body := fmt.Sprintf("0.%sE%+03d", digits, exp)
	if len(sign)+len(body) > w {
		body = body[1:]
	}
	s := sign + body
	if len(s) > w {
		return "", fmt.Errorf("%w: %g needs %d characters with %d digits but the field is %d wide",
			ErrValueWidthExceeded, x, len(s), d, w)
	}
	return strings.Repeat(" ", w-len(s)) + s, nil
}

func rightJustify(s string, w int) (string, error) {
	if len(s) > w {
		return "", fmt.Errorf("%w: %q is wider than %d characters", ErrValueWidthExceeded, s, w)
	}
	return strings.Repeat(" ", w-len(s)) + s, nil
}

// ParseInteger parses a single integer token, allowing surrounding blanks
// and a leading plus sign.
func ParseInteger(s string) (int64, error) {
	t := strings.TrimSpace(s)
	i, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrRecordFormatMismatch, s)
	}
	return i, nil
}

// ParseReal parses a single floating point token as written by Fortran
// programs: "0.123E+01", "1.5", "-2.0D-03" and "1.0+100" are all accepted.
func ParseReal(s string) (float64, error) {
	return parseReal(strings.TrimSpace(s), 0)
}

// parseReal parses t, which must not have surrounding blanks. If the
// mantissa has no decimal point, it is scaled by 10^-implied.
func parseReal(t string, implied int) (float64, error) {
	bad := fmt.Errorf("%w: %q is not a number", ErrRecordFormatMismatch, t)
	if t == "" {
		return 0, bad
	}
	u := strings.ToUpper(t)
	switch strings.TrimLeft(u, "+-") {
	case "NAN", "INF", "INFINITY":
		x, err := strconv.ParseFloat(u, 64)
		if err != nil {
			return 0, bad
		}
		return x, nil
	}
	for i := 0; i < len(u); i++ {
		if !strings.ContainsRune("0123456789+-.ED", rune(u[i])) {
			return 0, bad
		}
	}
	u = strings.Replace(u, "D", "E", 1)

	mant, exp := u, ""
	if i := strings.IndexByte(u, 'E'); i >= 0 {
		mant, exp = u[:i], u[i+1:]
	} else if i := strings.LastIndexAny(u, "+-"); i > 0 {
		// Fortran drops the exponent letter for three digit exponents.
		mant, exp = u[:i], u[i:]
	}
	if mant == "" || mant == "+" || mant == "-" {
		return 0, bad
	}
	e := 0
	if strings.IndexByte(u, 'E') >= 0 || exp != "" {
		var err error
		if e, err = strconv.Atoi(exp); err != nil {
			return 0, bad
		}
	}
	if implied > 0 && !strings.Contains(mant, ".") {
		e -= implied
	}
	x, err := strconv.ParseFloat(mant+"E"+strconv.Itoa(e), 64)
	if err != nil {
		return 0, bad
	}
	return x, nil
}
