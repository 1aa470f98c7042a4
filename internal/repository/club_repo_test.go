package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publicsquare/internal/domain"
)

func TestClubRepositoryCreateAddsOwner(t *testing.T) {
	db := openDB(t)
	repo := NewClubRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db)

	club := &domain.Club{Name: "Sci-fi Sundays", CreatedBy: owner.ID, IsActive: true}
	require.NoError(t, repo.Create(ctx, club))
	assert.NotZero(t, club.ID)

	member, err := repo.GetMember(ctx, club.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClubRoleOwner, member.Role)

	n, err := repo.CountMembers(ctx, club.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestClubRepositoryMembership(t *testing.T) {
	db := openDB(t)
	repo := NewClubRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db)
	reader := seedUser(t, db)

	club := &domain.Club{Name: "Poetry", CreatedBy: owner.ID, IsActive: true}
	require.NoError(t, repo.Create(ctx, club))

	_, err := repo.AddMember(ctx, club.ID, reader.ID, domain.ClubRoleMember)
	require.NoError(t, err)

	_, err = repo.AddMember(ctx, club.ID, reader.ID, domain.ClubRoleMember)
	assert.ErrorIs(t, err, ErrDuplicate)

	members, err := repo.ListMembers(ctx, club.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, owner.ID, members[0].UserID)

	ids, err := repo.ClubIDsForUser(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{club.ID}, ids)

	removed, err := repo.RemoveMember(ctx, club.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveMember(ctx, club.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.GetMember(ctx, club.ID, reader.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClubRepositoryUpdateAndDelete(t *testing.T) {
	db := openDB(t)
	repo := NewClubRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db)

	limit := 5
	club := &domain.Club{Name: "Mystery", CreatedBy: owner.ID, IsActive: true, MaxMembers: &limit}
	require.NoError(t, repo.Create(ctx, club))

	club.Name = "Mystery & Crime"
	club.IsActive = false
	club.MaxMembers = nil
	require.NoError(t, repo.Update(ctx, club))

	got, err := repo.GetByID(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mystery & Crime", got.Name)
	assert.False(t, got.IsActive)
	assert.Nil(t, got.MaxMembers)

	require.NoError(t, repo.Delete(ctx, club.ID))
	_, err = repo.GetByID(ctx, club.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := repo.CountMembers(ctx, club.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.Delete(ctx, club.ID), ErrNotFound)
}
