package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"romlerk-backend-go/internal/db"
	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

func newUserService(t *testing.T, store database.DocumentStore) *userService {
	repo, err := db.NewUserRepository(store)
	require.NoError(t, err)
	s := NewUserService(repo, zaptest.NewLogger(t)).(*userService)
	s.now = fixedClock
	return s
}

func intPtr(v int) *int { return &v }

func TestLogin_CreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, database.NewMemoryStore())

	user, created, err := s.Login(ctx, "u1", "+85512345678")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, user.Name)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "+85512345678", *user.Phone)
	assert.Equal(t, models.DefaultSlots(), user.Slots)
	assert.Equal(t, "2024-03-01T10:04:05.123Z", user.CreatedAt)

	later := fixedNow.Add(time.Hour)
	s.now = func() time.Time { return later }
	user, created, err = s.Login(ctx, "u1", "+85512345678")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "2024-03-01T10:04:05.123Z", user.CreatedAt)
	assert.Equal(t, models.Timestamp(later), user.LastLoginAt)

	stored, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.Timestamp(later), stored.LastLoginAt)
}

func TestLogin_WithoutPhoneStoresNull(t *testing.T) {
	s := newUserService(t, database.NewMemoryStore())
	user, _, err := s.Login(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Nil(t, user.Phone)
}

func TestLogin_Errors(t *testing.T) {
	s := newUserService(t, database.NewMemoryStore())
	_, _, err := s.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	s = newUserService(t, failingStore{})
	_, _, err = s.Login(context.Background(), "u1", "")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestUpdateName(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, database.NewMemoryStore())

	_, err := s.UpdateName(ctx, "u1", "Dara")
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = s.Login(ctx, "u1", "")
	require.NoError(t, err)

	for _, bad := range []string{"", " ", " a "} {
		_, err = s.UpdateName(ctx, "u1", bad)
		var ce *Error
		require.True(t, errors.As(err, &ce), bad)
		assert.Equal(t, "Invalid name format", ce.Message)
	}

	user, err := s.UpdateName(ctx, "u1", "  Sok Dara ")
	require.NoError(t, err)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Sok Dara", *user.Name)
	assert.Equal(t, "2024-03-01T10:04:05.123Z", user.UpdatedAt)

	stored, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sok Dara", *stored.Name)
}

func TestUpdateSlots(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, database.NewMemoryStore())
	_, _, err := s.Login(ctx, "u1", "")
	require.NoError(t, err)

	user, err := s.UpdateSlots(ctx, "u1", models.UpdateSlotsRequest{UsedSlots: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, models.Slots{UsedSlots: 2, MaxSlots: 3}, user.Slots)

	_, err = s.UpdateSlots(ctx, "u1", models.UpdateSlotsRequest{UsedSlots: intPtr(4)})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = s.UpdateSlots(ctx, "u1", models.UpdateSlotsRequest{MaxSlots: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = s.UpdateSlots(ctx, "u1", models.UpdateSlotsRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	user, err = s.UpdateSlots(ctx, "u1", models.UpdateSlotsRequest{UsedSlots: intPtr(5), MaxSlots: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, models.Slots{UsedSlots: 5, MaxSlots: 10}, user.Slots)

	stored, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.Slots{UsedSlots: 5, MaxSlots: 10}, stored.Slots)

	_, err = s.UpdateSlots(ctx, "ghost", models.UpdateSlotsRequest{UsedSlots: intPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}
