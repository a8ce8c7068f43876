package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process DocumentStore. It keeps Firestore's path and
// merge semantics closely enough for unit tests and local runs without credentials.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]interface{}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]interface{})}
}

func (m *MemoryStore) Get(_ context.Context, path Path) (map[string]interface{}, error) {
	if !path.IsDocument() {
		return nil, fmt.Errorf("%q is not a document path", path.String())
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[path.String()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return copyMap(data), nil
}

func (m *MemoryStore) Set(_ context.Context, path Path, data map[string]interface{}, merge bool) error {
	if !path.IsDocument() {
		return fmt.Errorf("%q is not a document path", path.String())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := path.String()
	existing, ok := m.docs[key]
	if !merge || !ok {
		m.docs[key] = copyMap(data)
		return nil
	}
	mergeInto(existing, data)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, path Path, data map[string]interface{}) error {
	if !path.IsDocument() {
		return fmt.Errorf("%q is not a document path", path.String())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[path.String()]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	for k, v := range data {
		existing[k] = copyValue(v)
	}
	return nil
}

func (m *MemoryStore) Add(_ context.Context, collection Path, data map[string]interface{}) (string, error) {
	if len(collection) == 0 || collection.IsDocument() {
		return "", fmt.Errorf("%q is not a collection path", collection.String())
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[collection.Doc(id).String()] = copyMap(data)
	return id, nil
}

func (m *MemoryStore) Delete(_ context.Context, path Path) error {
	if !path.IsDocument() {
		return fmt.Errorf("%q is not a document path", path.String())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, path.String())
	return nil
}

func (m *MemoryStore) List(_ context.Context, collection Path) ([]Snapshot, error) {
	if len(collection) == 0 || collection.IsDocument() {
		return nil, fmt.Errorf("%q is not a collection path", collection.String())
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Snapshot
	for _, key := range m.sortedKeys() {
		p := Path(strings.Split(key, "/"))
		if len(p) != len(collection)+1 || p.Parent().String() != collection.String() {
			continue
		}
		out = append(out, Snapshot{Path: p, Data: copyMap(m.docs[key])})
	}
	return out, nil
}

func (m *MemoryStore) FindInGroup(_ context.Context, collectionID, field string, value interface{}, limit int) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Snapshot
	for _, key := range m.sortedKeys() {
		p := Path(strings.Split(key, "/"))
		if p.Parent().ID() != collectionID {
			continue
		}
		got, ok := m.docs[key][field]
		if !ok || !reflect.DeepEqual(got, value) {
			continue
		}
		out = append(out, Snapshot{Path: p, Data: copyMap(m.docs[key])})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// Len reports how many documents are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func (m *MemoryStore) sortedKeys() []string {
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mergeInto mirrors firestore.MergeAll: nested maps merge, everything else replaces.
func mergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		if sv, ok := v.(map[string]interface{}); ok {
			if dv, ok := dst[k].(map[string]interface{}); ok {
				mergeInto(dv, sv)
				continue
			}
		}
		dst[k] = copyValue(v)
	}
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return copyMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
