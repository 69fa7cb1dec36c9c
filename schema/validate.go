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

package schema

import (
	"fmt"
	"strings"
)

// Validate checks the definitions of a set of catalogs that make up one
// file format. Every LengthOf or SizeOf reference must name a field in
// one of the catalogs other than the field itself. LengthOf must refer to
// a size rather than an array, and SizeOf to an array rather than a size.
// References may form a loop only between an array and its own size
// field. aliases, which may be nil, must not shadow fields or refer to
// unknown ones.
func Validate(aliases Aliases, catalogs ...*Catalog) error {
	fields := make(map[string]Field)
	for _, c := range catalogs {
		for _, f := range c.Fields {
			if f.Name == "" {
				return fmt.Errorf("%w: %s: unnamed field", ErrInvalidCatalog, c.Name)
			}
			if _, ok := fields[f.Name]; ok {
				return fmt.Errorf("%w: %s: duplicate field %s", ErrInvalidCatalog, c.Name, f.Name)
			}
			fields[f.Name] = f
		}
	}
	for _, c := range catalogs {
		for _, f := range c.Fields {
			if err := checkRef(f, fields); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, c.Name, err)
			}
		}
	}
	for _, c := range catalogs {
		for _, f := range c.Fields {
			if cycle := findCycle(f.Name, fields); cycle != nil {
				return fmt.Errorf("%w: %s: reference cycle %s", ErrInvalidCatalog, c.Name, strings.Join(cycle, " -> "))
			}
		}
	}
	return aliases.check(fields)
}

func checkRef(f Field, fields map[string]Field) error {
	p := f.Default
	if p.Kind != LengthOfDefault && p.Kind != SizeOfDefault {
		return nil
	}
	if p.Ref == f.Name {
		return fmt.Errorf("%s refers to itself", f.Name)
	}
	ref, ok := fields[p.Ref]
	if !ok {
		return fmt.Errorf("%s refers to unknown field %s", f.Name, p.Ref)
	}
	if p.Kind == LengthOfDefault && ref.Default.Kind == LengthOfDefault {
		return fmt.Errorf("the length of %s is given by %s, which is an array", f.Name, p.Ref)
	}
	if p.Kind == SizeOfDefault && ref.Default.Kind == SizeOfDefault {
		return fmt.Errorf("%s is the size of %s, which is a size", f.Name, p.Ref)
	}
	return nil
}

// findCycle follows references from start and returns the path of a loop
// back to start, unless the loop is an array paired with its own size.
func findCycle(start string, fields map[string]Field) []string {
	path := []string{start}
	seen := map[string]bool{start: true}
	name := start
	for {
		p := fields[name].Default
		if p.Kind != LengthOfDefault && p.Kind != SizeOfDefault {
			return nil
		}
		name = p.Ref
		path = append(path, name)
		if name == start {
			if len(path) == 3 {
				// An array and its size field refer to each other.
				return nil
			}
			return path
		}
		if seen[name] {
			// A loop not through start; it is reported when its own
			// members are checked.
			return nil
		}
		seen[name] = true
	}
}
