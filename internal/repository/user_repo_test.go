package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publicsquare/internal/domain"
)

func TestUserRepositoryCreateStoresCredential(t *testing.T) {
	db := openDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{Username: "reader", Email: "  Reader@Example.com ", IsActive: true}
	require.NoError(t, repo.Create(ctx, u, "bcrypt-hash"))

	assert.NotZero(t, u.ID)
	assert.Equal(t, "reader@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())

	cred, err := repo.GetCredentialByEmail(ctx, "READER@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, cred.UserID)
	assert.Equal(t, "bcrypt-hash", cred.PasswordHash)
	require.NotNil(t, cred.PasswordChangedAt)
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	db := openDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "a", Email: "a@example.com", IsActive: true}, "h"))

	err := repo.Create(ctx, &domain.User{Username: "a", Email: "other@example.com", IsActive: true}, "h")
	assert.ErrorIs(t, err, ErrDuplicate)

	// the failed transaction must not leave a credential behind
	_, err = repo.GetCredentialByEmail(ctx, "other@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryExists(t *testing.T) {
	db := openDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	u := seedUser(t, db)

	exists, err := repo.ExistsByUsername(ctx, u.Username, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, u.Username, u.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, u.Email, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepositoryUpdateSyncsCredentialEmail(t *testing.T) {
	db := openDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	u := seedUser(t, db)

	u.Email = "moved@example.com"
	u.IsActive = false
	require.NoError(t, repo.Update(ctx, u))
	assert.False(t, u.IsActive)

	cred, err := repo.GetCredentialByEmail(ctx, "moved@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, cred.UserID)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUserRepositoryUpdateMissing(t *testing.T) {
	db := openDB(t)
	repo := NewUserRepository(db)

	err := repo.Update(context.Background(), &domain.User{ID: 999, Username: "ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryList(t *testing.T) {
	db := openDB(t)
	repo := NewUserRepository(db)
	for i := 0; i < 3; i++ {
		seedUser(t, db)
	}

	users, err := repo.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.List(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
