// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package upload stores user-submitted files (avatars, post images) and
// returns the public URL they are served from. The only implementation
// writes to local disk under a configured directory; the handler mounts
// that directory as a static file route.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/commune-social/commune/internal/metrics"
)

// ErrTooLarge is returned when an upload exceeds the configured size limit.
var ErrTooLarge = fmt.Errorf("upload exceeds size limit")

// Store persists an uploaded file and returns its public URL.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskStore writes uploads to a local directory. Filenames are replaced
// with random names so uploads cannot overwrite each other and the
// original name cannot traverse outside the directory.
type DiskStore struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there. maxBytes of zero disables the size limit.
func NewDiskStore(dir, baseURL string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{
		dir:      dir,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		maxBytes: maxBytes,
	}, nil
}

// Dir returns the directory uploads are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save streams r to a new file and returns the URL path it is served at.
// Only the extension of the supplied filename is preserved.
func (s *DiskStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + sanitizeExt(filename)
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if s.maxBytes > 0 {
		// Read one byte past the limit so oversize uploads are detected
		// rather than silently truncated.
		r = io.LimitReader(r, s.maxBytes+1)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && written > s.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(dst)
		metrics.UploadsTotal.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	metrics.UploadBytesTotal.Add(float64(written))
	return path.Join(s.baseURL, name), nil
}

// sanitizeExt returns a safe lowercase extension for the given filename,
// or the empty string when none can be derived.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
