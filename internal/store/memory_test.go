package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes/memberhub/internal/models"
)

func TestCreateFillsDefaults(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	u := &models.User{Name: "A", Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, s.Create(context.Background(), u))

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestFindByEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryUserStore()
	require.NoError(t, s.Create(ctx, &models.User{Name: "A", Email: "a@x.com"}))

	u, err := s.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	_, err = s.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Email uniqueness is not enforced; duplicates resolve to the first record
// created. This documents the gap rather than endorsing it.
func TestDuplicateEmailFirstMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryUserStore()
	require.NoError(t, s.Create(ctx, &models.User{Name: "First", Email: "dup@x.com"}))
	require.NoError(t, s.Create(ctx, &models.User{Name: "Second", Email: "dup@x.com"}))

	u, err := s.FindByEmail(ctx, "dup@x.com")
	require.NoError(t, err)
	assert.Equal(t, "First", u.Name)
}

func TestUpdateRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryUserStore()
	u := &models.User{Name: "A", Email: "a@x.com"}
	require.NoError(t, s.Create(ctx, u))

	require.NoError(t, s.UpdateRole(ctx, u.ID, models.RoleAdmin))
	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)

	assert.ErrorIs(t, s.UpdateRole(ctx, "no-such-id", models.RoleAdmin), ErrNotFound)
}

func TestUpdateRoleConcurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryUserStore()
	u := &models.User{Name: "A", Email: "a@x.com"}
	require.NoError(t, s.Create(ctx, u))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.UpdateRole(ctx, u.ID, models.RoleAdmin)
		}()
	}
	wg.Wait()

	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestListNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryUserStore()
	require.NoError(t, s.Create(ctx, &models.User{Name: "A", Email: "a@x.com"}))
	require.NoError(t, s.Create(ctx, &models.User{Name: "B", Email: "b@x.com"}))

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
