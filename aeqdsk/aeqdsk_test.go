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

package aeqdsk

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/schema"
	"gonum.org/v1/gonum/floats"
)

func readFile(t *testing.T, name string, o *Options) *schema.Document {
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := Read(f, o)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func fileText(t *testing.T, name string) string {
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCatalogs(t *testing.T) {
	if err := schema.Validate(nil, Catalogs...); err != nil {
		t.Fatal(err)
	}
	for c, n := range map[*schema.Catalog]int{General1: 24, General2: 44, ExtendedGeneral: 32} {
		if len(c.Fields) != n {
			t.Errorf("%s has %d fields, want %d", c.Name, len(c.Fields), n)
		}
	}
}

func TestRead(t *testing.T) {
	logger, hook := test.NewNullLogger()
	doc := readFile(t, "testdata/a123456.01000", &Options{Log: logger})

	if s, _ := doc.Text("header"); s != " 19-OCT-26 10/19/26  " {
		t.Errorf("header: %q", s)
	}
	ints := map[string]int{
		"shot": 123456, "jflag": 1, "lflag": 0, "mco2v": 3, "mco2r": 1,
		"nsilop": 3, "magpri": 5, "nfcoil": 2, "nesum": 1,
	}
	for name, want := range ints {
		if have, err := doc.Int(name); err != nil || have != want {
			t.Errorf("%s: have %d (%v), want %d", name, have, err, want)
		}
	}
	for name, want := range map[string]string{"limloc": "SNB", "qmflag": "CLC"} {
		if have, _ := doc.Text(name); have != want {
			t.Errorf("%s: have %q, want %q", name, have, want)
		}
	}
	scalars := map[string]float64{
		"time": 1000, "tsaisq": 0.5, "rcencm": 1.5, "vertn": 23.5,
		"shearb": 100.5, "tavem": 143.5, "pbinj": 1000, "rmidout": 1031,
	}
	for name, want := range scalars {
		if have, err := doc.Float(name); err != nil || have != want {
			t.Errorf("%s: have %g (%v), want %g", name, have, err, want)
		}
	}
	arrays := map[string][]float64{
		"rco2v":  {10, 20, 30},
		"dco2v":  {1e13, 2e13, 3e13},
		"rco2r":  {40},
		"dco2r":  {4e13},
		"csilop": {0.1, 0.2, 0.3},
		"cmpr2":  {-1, -2, -3, -4, -5},
		"ccbrsp": {5e3, 6e3},
		"eccurt": {7e3},
	}
	for name, want := range arrays {
		have, err := doc.Floats(name)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualApprox(have, want, 1e-12) {
			t.Errorf("%s: %v", name, pretty.Diff(have, want))
		}
	}

	// The file has two values more than the trailing block.
	if len(hook.AllEntries()) != 1 {
		t.Fatalf("%d log entries, want 1", len(hook.AllEntries()))
	}
	if e := hook.LastEntry(); e.Level != logrus.WarnLevel || e.Data["unrecognised"] != 2 {
		t.Errorf("%v %v", e.Level, e.Data)
	}
}

func TestRead_legacy(t *testing.T) {
	logger, hook := test.NewNullLogger()
	doc := readFile(t, "testdata/legacy.aeqdsk", &Options{Log: logger})
	if x, _ := doc.Float("tavem"); x != 143.5 {
		t.Errorf("tavem = %g", x)
	}
	for _, c := range Extended {
		if c.AnyPresent(doc) {
			t.Errorf("%s was read from a legacy file", c.Name)
		}
	}
	if len(hook.AllEntries()) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Errorf("log entries: %v", hook.AllEntries())
	}

	// A line that is not a sizes record also marks a legacy file.
	text := fileText(t, "testdata/legacy.aeqdsk") + " 0.100000000E+01\n"
	hook.Reset()
	if _, err := Read(strings.NewReader(text), &Options{Log: logger}); err != nil {
		t.Fatal(err)
	}
	if len(hook.AllEntries()) != 1 {
		t.Errorf("log entries: %v", hook.AllEntries())
	}
}

func TestRead_header(t *testing.T) {
	lines := strings.SplitAfter(fileText(t, "testdata/a123456.01000"), "\n")
	lines[1] = " abc               1\n"
	lines[3] = strings.Replace(lines[3], "             1    ", "             x    ", 1)
	logger, hook := test.NewNullLogger()
	doc, err := Read(strings.NewReader(strings.Join(lines, "")), &Options{Log: logger})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"shot", "jflag"} {
		if doc.Has(name) {
			t.Errorf("%s should have been skipped", name)
		}
	}
	if n, _ := doc.Int("mco2v"); n != 3 {
		t.Errorf("mco2v = %d", n)
	}
	skipped := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "aeqdsk: header value skipped" {
			skipped++
		}
	}
	if skipped != 2 {
		t.Errorf("%d header values skipped, want 2", skipped)
	}
}

func TestRead_errors(t *testing.T) {
	text := fileText(t, "testdata/a123456.01000")
	lines := strings.SplitAfter(text, "\n")
	for _, n := range []int{0, 3, 6, 12} {
		doc, err := Read(strings.NewReader(strings.Join(lines[:n], "")), nil)
		if !errors.Is(err, fortran.ErrUnexpectedEOF) {
			t.Errorf("%d lines: have %v, want ErrUnexpectedEOF", n, err)
		}
		if doc != nil {
			t.Errorf("%d lines: a document was returned with the error", n)
		}
	}
	// The joined arrays stop short.
	if _, err := Read(strings.NewReader(strings.Join(lines[:27], "")), nil); !errors.Is(err, fortran.ErrUnexpectedEOF) {
		t.Errorf("have %v, want ErrUnexpectedEOF", err)
	}
	bad := strings.Replace(text, "0.150000000E+01", "0.15000000xE+01", 1)
	if _, err := Read(strings.NewReader(bad), nil); !errors.Is(err, fortran.ErrRecordFormatMismatch) {
		t.Errorf("have %v, want ErrRecordFormatMismatch", err)
	}
}

func TestWrite_roundTrip(t *testing.T) {
	logger, _ := test.NewNullLogger()
	for _, name := range []string{"testdata/a123456.01000", "testdata/legacy.aeqdsk"} {
		t.Run(name, func(t *testing.T) {
			doc := readFile(t, name, &Options{Log: logger})
			var b bytes.Buffer
			if err := Write(doc, &b, nil); err != nil {
				t.Fatal(err)
			}
			want := fileText(t, name)
			if name == "testdata/a123456.01000" {
				// The unrecognised values on the last line are not kept.
				want = strings.TrimSuffix(want, " 0.103200000E+04 0.103300000E+04\n")
			}
			if b.String() != want {
				t.Errorf("have:\n%s\nwant:\n%s", b.String(), want)
			}
		})
	}
}

func TestWrite_defaults(t *testing.T) {
	var b bytes.Buffer
	if err := Write(NewDocument(), &b, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(b.String(), "\n")
	want := []string{
		" 26-OCT-98 09/07/98  ",
		" 0               1",
		" 0.000000000E+00",
		"*0.000000000E+00             1                0 DN  0   0 CLC",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: have %q, want %q", i+1, lines[i], w)
		}
	}
	// 4 header lines, 6 for general block 1 and 11 for general block 2.
	if len(lines) != 4+6+11+1 {
		t.Errorf("have %d lines", len(lines)-1)
	}

	logger, hook := test.NewNullLogger()
	doc, err := Read(&b, &Options{Log: logger})
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]float64{"rcencm": 100, "pasmat": 1e6, "zseps1": -1, "aaq3": 100} {
		if have, _ := doc.Float(name); have != want {
			t.Errorf("%s: have %g, want %g", name, have, want)
		}
	}
	if len(hook.AllEntries()) != 1 {
		t.Errorf("expected a legacy file warning, have %v", hook.AllEntries())
	}
}

// The trailing block stops at the last field present, rounded up to a
// whole line.
func TestWrite_trim(t *testing.T) {
	tests := []struct {
		present []string
		values  int
	}{
		{[]string{"csilop"}, 0},
		{[]string{"pbinj"}, 4},
		{[]string{"zvsout"}, 8},
		{[]string{"rvsin", "qqmin"}, 24},
		{[]string{"rmidout"}, 32},
	}
	logger, _ := test.NewNullLogger()
	for _, test := range tests {
		t.Run(strings.Join(test.present, ","), func(t *testing.T) {
			doc := NewDocument()
			for _, name := range test.present {
				if name == "csilop" {
					doc.SetFloats(name, []float64{1, 2})
				} else {
					doc.SetFloat(name, 3)
				}
			}
			var b bytes.Buffer
			if err := Write(doc, &b, nil); err != nil {
				t.Fatal(err)
			}
			back, err := Read(&b, &Options{Log: logger})
			if err != nil {
				t.Fatal(err)
			}
			n := 0
			for _, f := range ExtendedGeneral.Fields {
				if back.Has(f.Name) {
					n++
				}
			}
			if n != test.values {
				t.Errorf("%d trailing values, want %d", n, test.values)
			}
			for _, name := range test.present {
				if !back.Has(name) {
					t.Errorf("%s was not written", name)
				}
			}
		})
	}
}

func TestWrite_errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(d *schema.Document)
		want   error
	}{
		{"laser length", func(d *schema.Document) { d.SetFloats("dco2v", []float64{1}) }, schema.ErrLengthMismatch},
		{"laser size", func(d *schema.Document) { d.SetInt("mco2r", 4) }, schema.ErrLengthMismatch},
		{"extended size", func(d *schema.Document) { d.SetInt("nsilop", 4) }, schema.ErrLengthMismatch},
		{"numeric limloc", func(d *schema.Document) { d.SetInt("limloc", 1) }, schema.ErrWrongKind},
		{"text jflag", func(d *schema.Document) { d.SetString("jflag", "yes") }, schema.ErrWrongKind},
		{"array scalar", func(d *schema.Document) { d.SetFloats("betat", []float64{1}) }, schema.ErrWrongKind},
		{"scalar array", func(d *schema.Document) {
			d.SetFloat("ccbrsp", 1)
			d.SetInt("nfcoil", 1)
		}, schema.ErrWrongKind},
	}
	logger, _ := test.NewNullLogger()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := readFile(t, "testdata/a123456.01000", &Options{Log: logger})
			test.modify(doc)
			var b bytes.Buffer
			if err := Write(doc, &b, nil); !errors.Is(err, test.want) {
				t.Errorf("have %v, want %v", err, test.want)
			}
			if b.Len() != 0 {
				t.Errorf("%d bytes were written", b.Len())
			}
		})
	}
}
