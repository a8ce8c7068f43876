package db

import (
	"context"
	"errors"
	"fmt"

	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

type groupOwnerResolver struct {
	store database.DocumentStore
}

// NewOwnerResolver resolves owners with a collection group query over every
// payments collection.
func NewOwnerResolver(store database.DocumentStore) (OwnerResolver, error) {
	if store == nil {
		return nil, errors.New("document store is not initialized for OwnerResolver")
	}
	return &groupOwnerResolver{store: store}, nil
}

func (r *groupOwnerResolver) ResolveOwner(ctx context.Context, tranID string) (string, bool, error) {
	if tranID == "" {
		return "", false, nil
	}
	// An orphan record at payments/{tran_id} can match too, so look one further.
	snaps, err := r.store.FindInGroup(ctx, paymentsCollection, models.FieldTranID, tranID, 2)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up owner of '%s': %w", tranID, err)
	}
	for _, snap := range snaps {
		if uid, ok := ownerOf(snap.Path); ok {
			return uid, true, nil
		}
	}
	return "", false, nil
}

// ownerOf extracts uid from users/{uid}/payments/{tran_id}. Top-level
// payments records have no owner.
func ownerOf(p database.Path) (string, bool) {
	if len(p) != 4 || p[0] != usersCollection || p[2] != paymentsCollection {
		return "", false
	}
	owner := p.Parent().Parent()
	return owner.ID(), owner.ID() != ""
}
