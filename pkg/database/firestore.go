package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements DocumentStore on a Firestore client.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an initialised Firestore client.
func NewFirestoreStore(client *firestore.Client) (*FirestoreStore, error) {
	if client == nil {
		return nil, errors.New("firestore client is nil")
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) doc(path Path) (*firestore.DocumentRef, error) {
	if !path.IsDocument() {
		return nil, fmt.Errorf("%q is not a document path", path.String())
	}
	return s.client.Doc(path.String()), nil
}

func (s *FirestoreStore) collection(path Path) (*firestore.CollectionRef, error) {
	if len(path) == 0 || path.IsDocument() {
		return nil, fmt.Errorf("%q is not a collection path", path.String())
	}
	return s.client.Collection(path.String()), nil
}

// Get retrieves a document.
func (s *FirestoreStore) Get(ctx context.Context, path Path) (map[string]interface{}, error) {
	ref, err := s.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return snap.Data(), nil
}

// Set writes a document, optionally merging into the existing one.
func (s *FirestoreStore) Set(ctx context.Context, path Path, data map[string]interface{}, merge bool) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if merge {
		_, err = ref.Set(ctx, data, firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, data)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// Update modifies top-level fields of an existing document.
func (s *FirestoreStore) Update(ctx context.Context, path Path, data map[string]interface{}) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(data))
	for field, value := range data {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{field}, Value: value})
	}
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}

// Add creates a document with a Firestore-generated id.
func (s *FirestoreStore) Add(ctx context.Context, collection Path, data map[string]interface{}) (string, error) {
	ref, err := s.collection(collection)
	if err != nil {
		return "", err
	}
	docRef, _, err := ref.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return docRef.ID, nil
}

// Delete removes a document.
func (s *FirestoreStore) Delete(ctx context.Context, path Path) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// List returns every document of a collection.
func (s *FirestoreStore) List(ctx context.Context, collection Path) ([]Snapshot, error) {
	ref, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	return drain(ref.Documents(ctx), collection.String())
}

// FindInGroup runs a collection group equality query.
func (s *FirestoreStore) FindInGroup(ctx context.Context, collectionID, field string, value interface{}, limit int) ([]Snapshot, error) {
	q := s.client.CollectionGroup(collectionID).Where(field, "==", value)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return drain(q.Documents(ctx), "group "+collectionID)
}

// Close closes the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func drain(iter *firestore.DocumentIterator, source string) ([]Snapshot, error) {
	defer iter.Stop()

	var out []Snapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s: %w", source, err)
		}
		out = append(out, Snapshot{Path: refPath(doc.Ref), Data: doc.Data()})
	}
	return out, nil
}

// refPath rebuilds the segment list of a document reference, root first.
func refPath(ref *firestore.DocumentRef) Path {
	var segs []string
	for ref != nil {
		segs = append(segs, ref.ID, ref.Parent.ID)
		ref = ref.Parent.Parent
	}
	out := make(Path, len(segs))
	for i, seg := range segs {
		out[len(segs)-1-i] = seg
	}
	return out
}
