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

// Package eqdsk reads and writes plasma equilibrium files: G-EQDSK
// boundary-grid equilibria, A-EQDSK diagnostic summaries and P-EQDSK
// kinetic profiles. The formats themselves live in the geqdsk, aeqdsk and
// peqdsk packages; this package adds configuration, file-kind detection
// and reading or writing files by local path or blob storage URL.
package eqdsk

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spatialmodel/eqdsk/cloud"
)

// ErrUnknownKind is returned when the kind of a file cannot be told from
// its name.
var ErrUnknownKind = errors.New("eqdsk: unknown file kind")

// Kind is the format of an equilibrium file.
type Kind int

// The file kinds.
const (
	Unknown Kind = iota
	GEQDSK
	AEQDSK
	PEQDSK
)

func (k Kind) String() string {
	switch k {
	case GEQDSK:
		return "G-EQDSK"
	case AEQDSK:
		return "A-EQDSK"
	case PEQDSK:
		return "P-EQDSK"
	}
	return "unknown"
}

// efitName matches the names EFIT gives its output, a letter followed by
// the shot number and the time in milliseconds: g123456.01000.
var efitName = regexp.MustCompile(`^([gap])(\d+)\.(\d+)$`)

var extensions = map[string]Kind{
	".geqdsk": GEQDSK,
	".gfile":  GEQDSK,
	".eqdsk":  GEQDSK,
	".aeqdsk": AEQDSK,
	".afile":  AEQDSK,
	".peqdsk": PEQDSK,
	".pfile":  PEQDSK,
}

// DetectKind returns the kind of the file at loc, which may be a local
// path or a blob URL, judging by its name. Both EFIT names such as
// a123456.01000 and extensions such as .geqdsk are recognised.
func DetectKind(loc string) (Kind, error) {
	base := filepath.Base(loc)
	if cloud.IsBlob(loc) {
		if u, err := url.Parse(loc); err == nil {
			base = path.Base(u.Path)
		}
	}
	if m := efitName.FindStringSubmatch(strings.ToLower(base)); m != nil {
		switch m[1] {
		case "g":
			return GEQDSK, nil
		case "a":
			return AEQDSK, nil
		case "p":
			return PEQDSK, nil
		}
	}
	if k, ok := extensions[strings.ToLower(path.Ext(base))]; ok {
		return k, nil
	}
	return Unknown, fmt.Errorf("%w: %s", ErrUnknownKind, loc)
}
