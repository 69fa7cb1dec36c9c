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
	"unicode"
)

// EditItem is one edit descriptor: Repeat cells of the given Kind, each
// Width characters wide. Digits is the number of digits after the decimal
// point and is only used by Float cells.
type EditItem struct {
	Repeat int
	Kind   Kind
	Width  int
	Digits int
}

func (e EditItem) String() string {
	var b strings.Builder
	if e.Repeat != 1 {
		b.WriteString(strconv.Itoa(e.Repeat))
	}
	switch e.Kind {
	case Integer:
		fmt.Fprintf(&b, "i%d", e.Width)
	case Float:
		fmt.Fprintf(&b, "e%d.%d", e.Width, e.Digits)
	case String:
		fmt.Fprintf(&b, "a%d", e.Width)
	default:
		b.WriteString("?")
	}
	return b.String()
}

func (e EditItem) check() error {
	if e.Repeat < 1 {
		return fmt.Errorf("%w: repeat count %d in %s must be at least 1", ErrMalformedDescriptor, e.Repeat, e)
	}
	if e.Width < 1 {
		return fmt.Errorf("%w: width %d in %s must be at least 1", ErrMalformedDescriptor, e.Width, e)
	}
	switch e.Kind {
	case Integer, String:
	case Float:
		if e.Digits < 0 {
			return fmt.Errorf("%w: negative number of digits in %s", ErrMalformedDescriptor, e)
		}
	default:
		return fmt.Errorf("%w: invalid kind %d", ErrMalformedDescriptor, e.Kind)
	}
	return nil
}

// cell is the position of one column within a record.
type cell struct {
	kind          Kind
	width, digits int
	offset        int
}

// A Format describes the layout of one record. It is immutable and may be
// shared between any number of readers and writers.
type Format struct {
	spec  string
	items []EditItem
	cells []cell
	width int
}

// ParseFormat parses a Fortran FORMAT specification such as "(4e16.9)",
// "(3i3)", "(a7,4i1)" or "(2(i5,e16.9))". The enclosing parentheses are
// optional and blanks are ignored.
func ParseFormat(spec string) (*Format, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, spec)
	if s == "" {
		return nil, fmt.Errorf("%w: empty format", ErrMalformedDescriptor)
	}
	if s[0] == '(' && closing(s, 0) == len(s)-1 {
		s = s[1 : len(s)-1]
	}
	items, err := parseList(s, 0)
	if err != nil {
		return nil, fmt.Errorf("%w (in %q)", err, spec)
	}
	f, err := NewFormat(items...)
	if err != nil {
		return nil, err
	}
	f.spec = spec
	return f, nil
}

// MustParseFormat is like ParseFormat but panics if spec cannot be parsed.
// It is intended for package-level format variables.
func MustParseFormat(spec string) *Format {
	f, err := ParseFormat(spec)
	if err != nil {
		panic(err)
	}
	return f
}

// NewFormat creates a Format from a list of edit items.
func NewFormat(items ...EditItem) (*Format, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty format", ErrMalformedDescriptor)
	}
	f := &Format{items: append([]EditItem(nil), items...)}
	for _, it := range items {
		if err := it.check(); err != nil {
			return nil, err
		}
		for i := 0; i < it.Repeat; i++ {
			f.cells = append(f.cells, cell{
				kind:   it.Kind,
				width:  it.Width,
				digits: it.Digits,
				offset: f.width,
			})
			f.width += it.Width
		}
	}
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = it.String()
	}
	f.spec = "(" + strings.Join(strs, ",") + ")"
	return f, nil
}

// Items returns the edit items of f, with any repeat groups expanded.
func (f *Format) Items() []EditItem { return append([]EditItem(nil), f.items...) }

// Len returns the number of cells in one record.
func (f *Format) Len() int { return len(f.cells) }

// Width returns the number of characters in one full record, not counting
// the line terminator.
func (f *Format) Width() int { return f.width }

func (f *Format) String() string { return f.spec }

// parseList parses a comma separated list of edit items. depth is the
// group nesting level of s.
func parseList(s string, depth int) ([]EditItem, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty item list", ErrMalformedDescriptor)
	}
	var items []EditItem
	for len(s) > 0 {
		end := nextComma(s)
		if end < 0 {
			return nil, fmt.Errorf("%w: unbalanced parentheses", ErrMalformedDescriptor)
		}
		tok := s[:end]
		if end < len(s) {
			s = s[end+1:]
			if s == "" {
				return nil, fmt.Errorf("%w: trailing comma", ErrMalformedDescriptor)
			}
		} else {
			s = ""
		}
		it, err := parseItem(tok, depth)
		if err != nil {
			return nil, err
		}
		items = append(items, it...)
	}
	return items, nil
}

// parseItem parses a single edit item or repeat group.
func parseItem(tok string, depth int) ([]EditItem, error) {
	if tok == "" {
		return nil, fmt.Errorf("%w: empty item", ErrMalformedDescriptor)
	}
	n, rest := leadingInt(tok)
	repeat := 1
	if n != "" {
		var err error
		if repeat, err = strconv.Atoi(n); err != nil || repeat < 1 {
			return nil, fmt.Errorf("%w: invalid repeat count %q", ErrMalformedDescriptor, n)
		}
	}
	if rest == "" {
		return nil, fmt.Errorf("%w: missing edit descriptor after %q", ErrMalformedDescriptor, n)
	}

	if rest[0] == '(' {
		if depth > 0 {
			return nil, fmt.Errorf("%w: nested repeat groups are not supported", ErrMalformedDescriptor)
		}
		if closing(rest, 0) != len(rest)-1 {
			return nil, fmt.Errorf("%w: unbalanced parentheses in %q", ErrMalformedDescriptor, tok)
		}
		group, err := parseList(rest[1:len(rest)-1], depth+1)
		if err != nil {
			return nil, err
		}
		var o []EditItem
		for i := 0; i < repeat; i++ {
			o = append(o, group...)
		}
		return o, nil
	}

	it := EditItem{Repeat: repeat}
	desc := rest[1:]
	switch unicode.ToUpper(rune(rest[0])) {
	case 'I':
		it.Kind = Integer
	case 'E', 'D':
		it.Kind = Float
	case 'A':
		it.Kind = String
	default:
		return nil, fmt.Errorf("%w: unsupported edit descriptor %q", ErrMalformedDescriptor, rest)
	}

	w, d, hasDot := desc, "", false
	if i := strings.IndexByte(desc, '.'); i >= 0 {
		w, d, hasDot = desc[:i], desc[i+1:], true
	}
	var err error
	if it.Width, err = strconv.Atoi(w); err != nil || !isDigits(w) {
		return nil, fmt.Errorf("%w: non-numeric width %q in %q", ErrMalformedDescriptor, w, tok)
	}
	switch it.Kind {
	case Float:
		if !hasDot {
			return nil, fmt.Errorf("%w: %q needs a number of digits after the decimal point", ErrMalformedDescriptor, tok)
		}
		if it.Digits, err = strconv.Atoi(d); err != nil || !isDigits(d) {
			return nil, fmt.Errorf("%w: non-numeric digits %q in %q", ErrMalformedDescriptor, d, tok)
		}
	default:
		if hasDot {
			return nil, fmt.Errorf("%w: unexpected '.' in %q", ErrMalformedDescriptor, tok)
		}
	}
	if err := it.check(); err != nil {
		return nil, err
	}
	return []EditItem{it}, nil
}

// leadingInt splits s into its leading decimal digits and the remainder.
func leadingInt(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// closing returns the index of the parenthesis closing the one at open,
// or -1.
func closing(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// nextComma returns the index of the first comma in s outside of any
// parentheses, len(s) if there is none, or -1 if the parentheses are
// unbalanced.
func nextComma(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return -1
			}
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	if depth != 0 {
		return -1
	}
	return len(s)
}
