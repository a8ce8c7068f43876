// Package database addresses a hierarchical document store by path segments
// (collection/document/collection/...). Firestore backs it in production and
// MemoryStore backs it in tests and local runs.
package database

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Path is a slash-free list of segments. Odd lengths name collections,
// even lengths name documents.
type Path []string

// Collection starts a path at a top-level collection.
func Collection(id string) Path {
	return Path{id}
}

// Doc appends a document id to a collection path.
func (p Path) Doc(id string) Path {
	return p.append(id)
}

// Collection appends a sub-collection id to a document path.
func (p Path) Collection(id string) Path {
	return p.append(id)
}

func (p Path) append(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// IsDocument reports whether p names a document.
func (p Path) IsDocument() bool {
	return len(p) > 0 && len(p)%2 == 0
}

// ID returns the last segment.
func (p Path) ID() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path one level up.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

// Snapshot is a document read from the store.
type Snapshot struct {
	Path Path
	Data map[string]interface{}
}

// ID returns the document id.
func (s Snapshot) ID() string {
	return s.Path.ID()
}

// DocumentStore defines the document operations the application relies on.
type DocumentStore interface {
	// Get returns the document at path or ErrNotFound.
	Get(ctx context.Context, path Path) (map[string]interface{}, error)
	// Set writes data at path. With merge, fields not present in data are kept.
	Set(ctx context.Context, path Path, data map[string]interface{}, merge bool) error
	// Update changes the given fields of an existing document, ErrNotFound otherwise.
	Update(ctx context.Context, path Path, data map[string]interface{}) error
	// Add creates a document with a generated id inside collection.
	Add(ctx context.Context, collection Path, data map[string]interface{}) (string, error)
	// Delete removes the document at path. Deleting a missing document is not an error.
	Delete(ctx context.Context, path Path) error
	// List returns every document of a collection.
	List(ctx context.Context, collection Path) ([]Snapshot, error)
	// FindInGroup queries every collection named collectionID, at any depth,
	// for documents whose field equals value. limit <= 0 means no limit.
	FindInGroup(ctx context.Context, collectionID, field string, value interface{}, limit int) ([]Snapshot, error)
	Close() error
}
