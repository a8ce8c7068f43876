package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

type documentRepository struct {
	store database.DocumentStore
}

// NewDocumentRepository creates a DocumentRepository backed by store.
func NewDocumentRepository(store database.DocumentStore) (DocumentRepository, error) {
	if store == nil {
		return nil, errors.New("document store is not initialized for DocumentRepository")
	}
	return &documentRepository{store: store}, nil
}

func (r *documentRepository) Create(ctx context.Context, uid string, loc models.DocumentLocation, data map[string]interface{}) (string, error) {
	id, err := r.store.Add(ctx, documentsPath(uid, loc), data)
	if err != nil {
		return "", fmt.Errorf("failed to create document at %s for user '%s': %w", loc, uid, err)
	}
	return id, nil
}

func (r *documentRepository) List(ctx context.Context, uid string, loc models.DocumentLocation) ([]models.Document, error) {
	snaps, err := r.store.List(ctx, documentsPath(uid, loc))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents at %s for user '%s': %w", loc, uid, err)
	}
	docs := make([]models.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, models.Document{ID: snap.ID(), Data: snap.Data})
	}
	// ISO-8601 UTC strings order lexically.
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt() > docs[j].CreatedAt()
	})
	return docs, nil
}

func (r *documentRepository) Merge(ctx context.Context, uid string, loc models.DocumentLocation, docID string, fields map[string]interface{}) error {
	if docID == "" {
		return errors.New("document ID cannot be empty for Merge operation")
	}
	path := documentsPath(uid, loc).Doc(docID)
	if _, err := r.store.Get(ctx, path); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("document '%s' not found at %s: %w", docID, loc, ErrNotFound)
		}
		return fmt.Errorf("failed to read document '%s': %w", docID, err)
	}
	if err := r.store.Set(ctx, path, fields, true); err != nil {
		return fmt.Errorf("failed to update document '%s': %w", docID, err)
	}
	return nil
}
