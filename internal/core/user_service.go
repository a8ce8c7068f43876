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

type userService struct {
	userRepo db.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger, now: time.Now}
}

func (s *userService) Login(ctx context.Context, uid, phone string) (*models.User, bool, error) {
	if uid == "" {
		return nil, false, invalid("Invalid or missing UID")
	}
	now := models.Timestamp(s.now())

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return nil, false, storeFailure("Unexpected Firestore error", err)
		}
		newUser := &models.User{
			UID:         uid,
			CreatedAt:   now,
			LastLoginAt: now,
			Slots:       models.DefaultSlots(),
		}
		if phone != "" {
			newUser.Phone = &phone
		}
		if err := s.userRepo.Create(ctx, newUser); err != nil {
			return nil, false, storeFailure("Unexpected Firestore error", err)
		}
		s.logger.Info("User created", zap.String("uid", uid))
		return newUser, true, nil
	}

	if err := s.userRepo.Update(ctx, uid, map[string]interface{}{"lastLoginAt": now}); err != nil {
		return nil, false, storeFailure("Unexpected Firestore error", err)
	}
	user.LastLoginAt = now
	return user, false, nil
}

func (s *userService) Get(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, notFound("User not found", err)
		}
		return nil, storeFailure("Failed to fetch user", err)
	}
	return user, nil
}

func (s *userService) UpdateName(ctx context.Context, uid, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < models.MinNameLength {
		return nil, invalid("Invalid name format")
	}
	user, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := models.Timestamp(s.now())
	if err := s.userRepo.Update(ctx, uid, map[string]interface{}{"name": name, "updatedAt": now}); err != nil {
		return nil, storeFailure("Unexpected error updating profile", err)
	}
	user.Name = &name
	user.UpdatedAt = now
	return user, nil
}

func (s *userService) UpdateSlots(ctx context.Context, uid string, req models.UpdateSlotsRequest) (*models.User, error) {
	if req.UsedSlots == nil && req.MaxSlots == nil {
		return nil, invalid("No update fields provided")
	}
	if (req.UsedSlots != nil && *req.UsedSlots < 0) || (req.MaxSlots != nil && *req.MaxSlots < 0) {
		return nil, invalid("Slot values must be non-negative integers")
	}
	user, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	slots := user.Slots
	if req.UsedSlots != nil {
		slots.UsedSlots = *req.UsedSlots
	}
	if req.MaxSlots != nil {
		slots.MaxSlots = *req.MaxSlots
	}
	if slots.UsedSlots > slots.MaxSlots {
		return nil, invalid("usedSlots cannot exceed maxSlots")
	}

	now := models.Timestamp(s.now())
	if err := s.userRepo.Update(ctx, uid, map[string]interface{}{"slots": slots.ToMap(), "updatedAt": now}); err != nil {
		return nil, storeFailure("Failed to update slots", err)
	}
	user.Slots = slots
	user.UpdatedAt = now
	return user, nil
}
