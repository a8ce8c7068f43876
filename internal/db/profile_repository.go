package db

import (
	"context"
	"errors"
	"fmt"

	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

type profileRepository struct {
	store database.DocumentStore
}

// NewProfileRepository creates a ProfileRepository backed by store.
func NewProfileRepository(store database.DocumentStore) (ProfileRepository, error) {
	if store == nil {
		return nil, errors.New("document store is not initialized for ProfileRepository")
	}
	return &profileRepository{store: store}, nil
}

func (r *profileRepository) List(ctx context.Context, uid string) ([]*models.Profile, error) {
	snaps, err := r.store.List(ctx, profilesPath(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles for user '%s': %w", uid, err)
	}
	profiles := make([]*models.Profile, 0, len(snaps))
	for _, snap := range snaps {
		var p models.Profile
		if err := decode(snap.Data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode profile '%s': %w", snap.ID(), err)
		}
		p.ID = snap.ID()
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, uid string, profile *models.Profile) (string, error) {
	id, err := r.store.Add(ctx, profilesPath(uid), profile.ToMap())
	if err != nil {
		return "", fmt.Errorf("failed to create profile for user '%s': %w", uid, err)
	}
	profile.ID = id
	return id, nil
}

func (r *profileRepository) Update(ctx context.Context, uid, profileID string, fields map[string]interface{}) error {
	if profileID == "" {
		return errors.New("profile ID cannot be empty for Update operation")
	}
	if err := r.store.Update(ctx, profilesPath(uid).Doc(profileID), fields); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("profile '%s' not found: %w", profileID, ErrNotFound)
		}
		return fmt.Errorf("failed to update profile '%s': %w", profileID, err)
	}
	return nil
}
