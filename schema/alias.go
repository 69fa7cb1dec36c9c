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
	"sort"
)

// Aliases maps alternative field names to canonical ones.
type Aliases map[string]string

// Canonical returns the canonical form of name.
func (a Aliases) Canonical(name string) string {
	if c, ok := a[name]; ok {
		return c
	}
	return name
}

// Of returns the aliases of the canonical name, sorted.
func (a Aliases) Of(name string) []string {
	var o []string
	for alias, c := range a {
		if c == name {
			o = append(o, alias)
		}
	}
	sort.Strings(o)
	return o
}

// check returns an error if an alias shadows a field or points at a name
// that is not in the given catalogs.
func (a Aliases) check(fields map[string]Field) error {
	for alias, c := range a {
		if _, ok := fields[alias]; ok {
			return fmt.Errorf("%w: alias %s shadows a field", ErrInvalidCatalog, alias)
		}
		if _, ok := fields[c]; !ok {
			return fmt.Errorf("%w: alias %s refers to unknown field %s", ErrInvalidCatalog, alias, c)
		}
	}
	return nil
}
