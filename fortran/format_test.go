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
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		spec  string
		items []EditItem
		width int
	}{
		{
			spec:  "(5e16.9)",
			items: []EditItem{{Repeat: 5, Kind: Float, Width: 16, Digits: 9}},
			width: 80,
		},
		{
			spec:  "(a48,3i4)",
			items: []EditItem{{Repeat: 1, Kind: String, Width: 48}, {Repeat: 3, Kind: Integer, Width: 4}},
			width: 60,
		},
		{
			spec:  "3I3",
			items: []EditItem{{Repeat: 3, Kind: Integer, Width: 3}},
			width: 9,
		},
		{
			spec:  " ( 2D9.2 ) ",
			items: []EditItem{{Repeat: 2, Kind: Float, Width: 9, Digits: 2}},
			width: 18,
		},
		{
			spec: "(2(i5,e16.9))",
			items: []EditItem{
				{Repeat: 1, Kind: Integer, Width: 5},
				{Repeat: 1, Kind: Float, Width: 16, Digits: 9},
				{Repeat: 1, Kind: Integer, Width: 5},
				{Repeat: 1, Kind: Float, Width: 16, Digits: 9},
			},
			width: 42,
		},
		{
			spec:  "(i3),(i4)",
			items: []EditItem{{Repeat: 1, Kind: Integer, Width: 3}, {Repeat: 1, Kind: Integer, Width: 4}},
			width: 7,
		},
	}
	for _, test := range tests {
		t.Run(test.spec, func(t *testing.T) {
			f, err := ParseFormat(test.spec)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(f.Items(), test.items) {
				t.Errorf("items: %v", pretty.Diff(f.Items(), test.items))
			}
			if f.Width() != test.width {
				t.Errorf("width: have %d, want %d", f.Width(), test.width)
			}
			if f.String() != test.spec {
				t.Errorf("string: have %q, want %q", f.String(), test.spec)
			}
		})
	}
}

func TestParseFormat_malformed(t *testing.T) {
	for _, spec := range []string{
		"",
		"()",
		"(5e16)",
		"(5ex.9)",
		"(5e16.x)",
		"(i0)",
		"(0i3)",
		"(3x4)",
		"(i3.2)",
		"(2(i3,(i4)))",
		"((i3)",
		"(i3))",
		"(i3,)",
		"(,i3)",
		"(3)",
	} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseFormat(spec)
			if !errors.Is(err, ErrMalformedDescriptor) {
				t.Errorf("have %v, want ErrMalformedDescriptor", err)
			}
		})
	}
}

func TestNewFormat(t *testing.T) {
	f, err := NewFormat(EditItem{Repeat: 4, Kind: Float, Width: 16, Digits: 9})
	if err != nil {
		t.Fatal(err)
	}
	if f.String() != "(4e16.9)" {
		t.Errorf("have %q", f.String())
	}
	if f.Len() != 4 {
		t.Errorf("len: have %d, want 4", f.Len())
	}
	if _, err := NewFormat(EditItem{Repeat: 1, Kind: Float, Width: 0}); !errors.Is(err, ErrMalformedDescriptor) {
		t.Errorf("zero width: have %v", err)
	}
	if _, err := NewFormat(); !errors.Is(err, ErrMalformedDescriptor) {
		t.Errorf("empty: have %v", err)
	}
}

func TestMustParseFormat(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	MustParseFormat("(q3)")
}
