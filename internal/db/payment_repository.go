package db

import (
	"context"
	"errors"
	"fmt"

	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

type paymentRepository struct {
	store database.DocumentStore
}

// NewPaymentRepository creates a PaymentRepository backed by store.
func NewPaymentRepository(store database.DocumentStore) (PaymentRepository, error) {
	if store == nil {
		return nil, errors.New("document store is not initialized for PaymentRepository")
	}
	return &paymentRepository{store: store}, nil
}

// SavePending overwrites any previous record for the transaction.
func (r *paymentRepository) SavePending(ctx context.Context, uid string, payment models.PendingPayment) error {
	if payment.TranID == "" {
		return errors.New("tran_id cannot be empty for SavePending operation")
	}
	if err := r.store.Set(ctx, paymentPath(uid, payment.TranID), payment.ToMap(), false); err != nil {
		return fmt.Errorf("failed to save pending payment '%s': %w", payment.TranID, err)
	}
	return nil
}

// MergeOutcome keeps fields written at initiation (amount, response, ...).
func (r *paymentRepository) MergeOutcome(ctx context.Context, uid string, outcome models.PaymentOutcome) error {
	if outcome.TranID == "" {
		return errors.New("tran_id cannot be empty for MergeOutcome operation")
	}
	if err := r.store.Set(ctx, paymentPath(uid, outcome.TranID), outcome.ToMap(), true); err != nil {
		return fmt.Errorf("failed to record outcome for payment '%s': %w", outcome.TranID, err)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, uid, tranID string) (map[string]interface{}, error) {
	data, err := r.store.Get(ctx, paymentPath(uid, tranID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("payment '%s' not found: %w", tranID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment '%s': %w", tranID, err)
	}
	return data, nil
}
