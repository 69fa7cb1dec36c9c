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
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// DecodeTOML reads a document written as top-level TOML keys, for example
//
//	nx = 3
//	rdim = 1.5
//	fpol = [1.0, 2.0, 3.0]
//	psi = [[0.0, 0.1], [0.2, 0.3], [0.4, 0.5]]
//
// Two-dimensional arrays are given row by row.
func DecodeTOML(r io.Reader, aliases Aliases) (*Document, error) {
	var m map[string]interface{}
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("schema: decoding TOML: %w", err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	doc := NewDocument(aliases)
	for _, k := range keys {
		if err := doc.SetAny(k, m[k]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// EncodeTOML writes doc in the form read by DecodeTOML.
func EncodeTOML(w io.Writer, doc *Document) error {
	m := make(map[string]interface{})
	for _, n := range doc.Names() {
		m[n] = doc.Any(n)
	}
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("schema: encoding TOML: %w", err)
	}
	return nil
}
