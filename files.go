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

package eqdsk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/aeqdsk"
	"github.com/spatialmodel/eqdsk/cloud"
	"github.com/spatialmodel/eqdsk/geqdsk"
	"github.com/spatialmodel/eqdsk/peqdsk"
	"github.com/spatialmodel/eqdsk/schema"
	"golang.org/x/sync/errgroup"
)

// File is the contents of one equilibrium file.
type File struct {
	Path string
	Kind Kind

	// Document holds G-EQDSK and A-EQDSK files.
	Document *schema.Document

	// Profiles holds P-EQDSK files.
	Profiles *peqdsk.File
}

// ReadFile reads the file at loc, a local path or blob URL, choosing the
// format with DetectKind.
func (c *Config) ReadFile(ctx context.Context, loc string) (*File, error) {
	k, err := DetectKind(loc)
	if err != nil {
		return nil, err
	}
	f := &File{Path: loc, Kind: k}
	switch k {
	case GEQDSK:
		f.Document, err = c.ReadGEQDSK(ctx, loc)
	case AEQDSK:
		f.Document, err = c.ReadAEQDSK(ctx, loc)
	case PEQDSK:
		f.Profiles, err = c.ReadPEQDSK(ctx, loc)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ReadGEQDSK reads the G-EQDSK file at loc.
func (c *Config) ReadGEQDSK(ctx context.Context, loc string) (*schema.Document, error) {
	var doc *schema.Document
	err := c.read(ctx, loc, func(r io.Reader) (err error) {
		doc, err = geqdsk.Read(r, &c.GEQDSK)
		return
	})
	return doc, err
}

// ReadAEQDSK reads the A-EQDSK file at loc.
func (c *Config) ReadAEQDSK(ctx context.Context, loc string) (*schema.Document, error) {
	var doc *schema.Document
	err := c.read(ctx, loc, func(r io.Reader) (err error) {
		doc, err = aeqdsk.Read(r, &c.AEQDSK)
		return
	})
	return doc, err
}

// ReadPEQDSK reads the P-EQDSK file at loc.
func (c *Config) ReadPEQDSK(ctx context.Context, loc string) (*peqdsk.File, error) {
	var f *peqdsk.File
	err := c.read(ctx, loc, func(r io.Reader) (err error) {
		f, err = peqdsk.Read(r, &c.PEQDSK)
		return
	})
	return f, err
}

func (c *Config) read(ctx context.Context, loc string, decode func(io.Reader) error) error {
	r, err := c.store().Open(ctx, loc)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := decode(r); err != nil {
		return fmt.Errorf("%s: %w", loc, err)
	}
	c.logger().WithFields(logrus.Fields{"file": loc}).Debug("eqdsk: read file")
	return nil
}

// ReadFiles reads the files at locs concurrently, at most c.Concurrency at
// a time. The results are in the same order as locs. The first error
// stops the remaining reads.
func (c *Config) ReadFiles(ctx context.Context, locs []string) ([]*File, error) {
	files := make([]*File, len(locs))
	err := c.each(ctx, locs, func(ctx context.Context, i int, loc string) (err error) {
		files[i], err = c.ReadFile(ctx, loc)
		return
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReadGEQDSKFiles reads the G-EQDSK files at locs concurrently in the
// manner of ReadFiles, whatever their names.
func (c *Config) ReadGEQDSKFiles(ctx context.Context, locs []string) ([]*schema.Document, error) {
	docs := make([]*schema.Document, len(locs))
	err := c.each(ctx, locs, func(ctx context.Context, i int, loc string) (err error) {
		docs[i], err = c.ReadGEQDSK(ctx, loc)
		return
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// each runs fn for every location in its own goroutine.
func (c *Config) each(ctx context.Context, locs []string, fn func(ctx context.Context, i int, loc string) error) error {
	c.store()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())
	for i, loc := range locs {
		i, loc := i, loc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i, loc)
		})
	}
	return g.Wait()
}

// WriteGEQDSK writes doc as a G-EQDSK file at loc.
func (c *Config) WriteGEQDSK(ctx context.Context, doc *schema.Document, loc string) error {
	return c.write(ctx, loc, func(w io.Writer) error { return geqdsk.Write(doc, w, &c.GEQDSK) })
}

// WriteAEQDSK writes doc as an A-EQDSK file at loc.
func (c *Config) WriteAEQDSK(ctx context.Context, doc *schema.Document, loc string) error {
	return c.write(ctx, loc, func(w io.Writer) error { return aeqdsk.Write(doc, w, &c.AEQDSK) })
}

// WritePEQDSK writes f as a P-EQDSK file at loc.
func (c *Config) WritePEQDSK(ctx context.Context, f *peqdsk.File, loc string) error {
	return c.write(ctx, loc, func(w io.Writer) error { return peqdsk.Write(f, w, &c.PEQDSK) })
}

// write encodes the whole file before storing it, so nothing is written
// to loc if encoding fails.
func (c *Config) write(ctx context.Context, loc string, encode func(io.Writer) error) error {
	var b bytes.Buffer
	if err := encode(&b); err != nil {
		return fmt.Errorf("%s: %w", loc, err)
	}
	if err := c.store().WriteFile(ctx, loc, b.Bytes()); err != nil {
		return err
	}
	c.logger().WithFields(logrus.Fields{"file": loc, "bytes": b.Len()}).Debug("eqdsk: wrote file")
	return nil
}

// WriteNetCDF writes the G-EQDSK document doc as a netCDF file at loc.
// Files bound for blob storage are written to a temporary file first and
// then uploaded.
func (c *Config) WriteNetCDF(ctx context.Context, doc *schema.Document, loc string) error {
	if !cloud.IsBlob(loc) {
		f, err := os.Create(loc)
		if err != nil {
			return fmt.Errorf("eqdsk: %v", err)
		}
		if err := geqdsk.WriteNetCDF(doc, f); err != nil {
			f.Close()
			os.Remove(loc)
			return fmt.Errorf("%s: %w", loc, err)
		}
		return f.Close()
	}
	f, err := os.CreateTemp("", "eqdsk*.nc")
	if err != nil {
		return fmt.Errorf("eqdsk: creating temporary netCDF file: %v", err)
	}
	defer os.Remove(f.Name())
	if err := geqdsk.WriteNetCDF(doc, f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", loc, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("eqdsk: %v", err)
	}
	return c.store().Upload(ctx, f.Name(), loc)
}

func (c *Config) store() *cloud.Store {
	if c.Store == nil {
		c.Store = cloud.NewStore(c.logger())
	}
	return c.Store
}

func (c *Config) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

func (c *Config) concurrency() int {
	if c.Concurrency < 1 {
		return 1
	}
	return c.Concurrency
}
