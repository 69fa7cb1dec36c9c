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

// Package cloud opens equilibrium files that are either on the local disk
// or in blob storage. Blob locations are URLs such as
//
//	file:///data/efit/g123456.01000
//	gs://bucket/shots/g123456.01000
//	s3://bucket/shots/a123456.01000?region=us-east-2
//	mem://scratch/p123456.01000
//
// where everything after the bucket name is the key of the blob.
package cloud

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"gocloud.dev/blob"

	// Providers for blob.OpenBucket.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// DefaultRetries is the number of times a failed blob write is retried.
const DefaultRetries = 3

// IsBlob returns whether path refers to a blob storage location rather
// than a local file.
func IsBlob(path string) bool {
	for _, p := range []string{"file://", "gs://", "s3://", "mem://"} {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Store reads and writes files by local path or blob URL. Buckets are
// opened on first use and kept open until Close is called, so files
// written to a mem:// bucket can be read back through the same Store.
// A Store is safe for concurrent use.
type Store struct {
	// Retries is the number of times a failed blob write is retried with
	// exponential backoff. Zero means DefaultRetries; a negative value
	// disables retries.
	Retries int

	Log logrus.FieldLogger

	mu      sync.Mutex
	buckets map[string]*blob.Bucket
}

// NewStore returns a Store that logs to log, or to the standard logger if
// log is nil.
func NewStore(log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{Log: log, buckets: make(map[string]*blob.Bucket)}
}

// split separates a blob URL into the URL of its bucket and the key of the
// blob. For file:// URLs the bucket is the directory holding the file.
func split(loc string) (bucketURL, key string, err error) {
	u, err := url.Parse(loc)
	if err != nil {
		return "", "", fmt.Errorf("cloud: parsing %q: %v", loc, err)
	}
	if u.Scheme == "file" {
		dir, base := path.Split(u.Path)
		if base == "" {
			return "", "", fmt.Errorf("cloud: %q does not name a file", loc)
		}
		return "file://" + path.Clean(dir), base, nil
	}
	key = strings.TrimLeft(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("cloud: %q does not name a blob", loc)
	}
	bucketURL = u.Scheme + "://" + u.Host
	if u.RawQuery != "" {
		bucketURL += "?" + u.RawQuery
	}
	return bucketURL, key, nil
}

// bucket returns the open bucket for bucketURL, opening it if necessary.
func (s *Store) bucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets == nil {
		s.buckets = make(map[string]*blob.Bucket)
	}
	if b, ok := s.buckets[bucketURL]; ok {
		return b, nil
	}
	b, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("cloud: opening bucket %s: %v", bucketURL, err)
	}
	s.buckets[bucketURL] = b
	return b, nil
}

// Open opens the file at loc for reading.
func (s *Store) Open(ctx context.Context, loc string) (io.ReadCloser, error) {
	if !IsBlob(loc) {
		f, err := os.Open(loc)
		if err != nil {
			return nil, fmt.Errorf("cloud: %v", err)
		}
		return f, nil
	}
	bucketURL, key, err := split(loc)
	if err != nil {
		return nil, err
	}
	b, err := s.bucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	r, err := b.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("cloud: reading blob %s: %v", loc, err)
	}
	return r, nil
}

// ReadFile returns the contents of the file at loc.
func (s *Store) ReadFile(ctx context.Context, loc string) ([]byte, error) {
	if !IsBlob(loc) {
		data, err := os.ReadFile(loc)
		if err != nil {
			return nil, fmt.Errorf("cloud: %v", err)
		}
		return data, nil
	}
	bucketURL, key, err := split(loc)
	if err != nil {
		return nil, err
	}
	b, err := s.bucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	return readBlob(ctx, b, key)
}

// WriteFile replaces the file at loc with data. Blob writes that fail are
// retried.
func (s *Store) WriteFile(ctx context.Context, loc string, data []byte) error {
	if !IsBlob(loc) {
		if err := os.WriteFile(loc, data, 0644); err != nil {
			return fmt.Errorf("cloud: %v", err)
		}
		return nil
	}
	bucketURL, key, err := split(loc)
	if err != nil {
		return err
	}
	b, err := s.bucket(ctx, bucketURL)
	if err != nil {
		return err
	}
	return s.retry(ctx, loc, func() error { return writeBlob(ctx, b, key, data) })
}

// Upload copies the local file at src to dst, which may be a local path or
// a blob URL.
func (s *Store) Upload(ctx context.Context, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("cloud: opening file %s for upload: %v", src, err)
	}
	return s.WriteFile(ctx, dst, data)
}

func (s *Store) retry(ctx context.Context, loc string, op func() error) error {
	n := s.Retries
	if n == 0 {
		n = DefaultRetries
	}
	if n < 0 {
		return op()
	}
	log := s.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(n)), ctx)
	return backoff.RetryNotify(op, b, func(err error, d time.Duration) {
		log.WithFields(logrus.Fields{"location": loc, "wait": d}).Warnf("cloud: retrying: %v", err)
	})
}

// Close closes every bucket the Store has opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for u, b := range s.buckets {
		if err := b.Close(); err != nil && first == nil {
			first = fmt.Errorf("cloud: closing bucket %s: %v", u, err)
		}
		delete(s.buckets, u)
	}
	return first
}
