// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage keeps binary artifacts: uploaded icon sources, their
// previews and rendered tiles. Blobs are addressed by slash-separated keys
// and live either on the local filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Blobs stores and retrieves binary objects by key. Implementations must
// be safe for concurrent use.
type Blobs interface {
	// Put stores data under key, replacing any existing blob.
	Put(ctx context.Context, key, contentType string, data []byte) error
	// Get returns the blob under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the blob under key. A missing blob is not an error.
	Delete(ctx context.Context, key string) error
}

// Content types used for stored blobs.
const (
	ContentTypePNG = "image/png"
	ContentTypeSVG = "image/svg+xml"
)

// IconKey is the key of an icon's source file; ext is "svg" or "png".
func IconKey(id uuid.UUID, ext string) string {
	return "icons/" + id.String() + "." + strings.TrimPrefix(ext, ".")
}

// PreviewKey is the key of an icon's preview image.
func PreviewKey(id uuid.UUID) string {
	return "previews/" + id.String() + ".png"
}

// RenderKey is the key of a rendered tile.
func RenderKey(id uuid.UUID) string {
	return "renders/" + id.String() + ".png"
}

// validKey rejects empty keys and keys that could escape the storage root.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
