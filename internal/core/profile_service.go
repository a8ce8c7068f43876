package core

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"romlerk-backend-go/internal/db"
	"romlerk-backend-go/internal/models"
)

type profileService struct {
	profileRepo db.ProfileRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(profileRepo db.ProfileRepository, logger *zap.Logger) ProfileService {
	return &profileService{profileRepo: profileRepo, logger: logger, now: time.Now}
}

// normalizeProfile trims the name and applies the default type.
func normalizeProfile(req models.ProfileRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < models.MinNameLength {
		return "", "", invalid("Invalid profile name")
	}
	profileType := strings.TrimSpace(req.Type)
	if profileType == "" {
		profileType = models.DefaultProfileType
	}
	return name, profileType, nil
}

func (s *profileService) List(ctx context.Context, uid string) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx, uid)
	if err != nil {
		return nil, storeFailure("Failed to fetch profiles", err)
	}
	return profiles, nil
}

func (s *profileService) Create(ctx context.Context, uid string, req models.ProfileRequest) (*models.Profile, error) {
	name, profileType, err := normalizeProfile(req)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{
		Name:      name,
		Type:      profileType,
		CreatedAt: models.Timestamp(s.now()),
	}
	if _, err := s.profileRepo.Create(ctx, uid, profile); err != nil {
		return nil, storeFailure("Failed to create profile", err)
	}
	s.logger.Info("Profile created", zap.String("uid", uid), zap.String("profileId", profile.ID))
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, uid, profileID string, req models.ProfileRequest) (*models.Profile, error) {
	name, profileType, err := normalizeProfile(req)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{"name": name, "type": profileType}
	if err := s.profileRepo.Update(ctx, uid, profileID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, notFound("Profile not found", err)
		}
		return nil, storeFailure("Failed to update profile", err)
	}
	return &models.Profile{ID: profileID, Name: name, Type: profileType}, nil
}
