package db

import (
	"context"
	"errors"
	"fmt"

	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

type userRepository struct {
	store database.DocumentStore
}

// NewUserRepository creates a UserRepository backed by store.
func NewUserRepository(store database.DocumentStore) (UserRepository, error) {
	if store == nil {
		return nil, errors.New("document store is not initialized for UserRepository")
	}
	return &userRepository{store: store}, nil
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	data, err := r.store.Get(ctx, userPath(uid))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", uid, err)
	}

	var user models.User
	if err := decode(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", uid, err)
	}
	user.UID = uid
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	if err := r.store.Set(ctx, userPath(user.UID), user.ToMap(), false); err != nil {
		return fmt.Errorf("failed to create user with ID '%s': %w", user.UID, err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Update operation")
	}
	if err := r.store.Update(ctx, userPath(uid), fields); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("user with ID '%s' not found: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update user with ID '%s': %w", uid, err)
	}
	return nil
}
