// Package storage uploads user files to an object store and hands back a
// URL clients can load them from.
package storage

import (
	"context"
	"io"
)

// ObjectStore is implemented by the Firebase Storage and MinIO backends.
type ObjectStore interface {
	// Upload stores size bytes from r under name and returns a public URL.
	Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

const defaultContentType = "application/octet-stream"

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return defaultContentType
	}
	return ct
}
