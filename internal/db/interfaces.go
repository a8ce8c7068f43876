package db

import (
	"context"

	"romlerk-backend-go/internal/models"
)

// UserRepository defines the storage operations for users/{uid}.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// Update changes the given fields of an existing user, ErrNotFound otherwise.
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
}

// ProfileRepository defines the storage operations for users/{uid}/profiles.
type ProfileRepository interface {
	List(ctx context.Context, uid string) ([]*models.Profile, error)
	Create(ctx context.Context, uid string, profile *models.Profile) (string, error)
	Update(ctx context.Context, uid, profileID string, fields map[string]interface{}) error
}

// DocumentRepository defines the storage operations for documents at either location.
type DocumentRepository interface {
	Create(ctx context.Context, uid string, loc models.DocumentLocation, data map[string]interface{}) (string, error)
	// List returns the documents at loc, newest first.
	List(ctx context.Context, uid string, loc models.DocumentLocation) ([]models.Document, error)
	// Merge merges fields into an existing document, ErrNotFound otherwise.
	Merge(ctx context.Context, uid string, loc models.DocumentLocation, docID string, fields map[string]interface{}) error
}

// PaymentRepository stores payment transactions. An empty uid addresses the
// top-level payments collection used when no owner is known.
type PaymentRepository interface {
	SavePending(ctx context.Context, uid string, payment models.PendingPayment) error
	MergeOutcome(ctx context.Context, uid string, outcome models.PaymentOutcome) error
	Get(ctx context.Context, uid, tranID string) (map[string]interface{}, error)
}

// OwnerResolver finds the user a transaction was initiated by.
type OwnerResolver interface {
	// ResolveOwner returns the owning uid and true, or "" and false when no
	// user-scoped transaction carries tranID.
	ResolveOwner(ctx context.Context, tranID string) (string, bool, error)
}
