package clubs

import (
	"context"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publicsquare/internal/database/dbtest"
	"publicsquare/internal/domain"
	"publicsquare/internal/repository"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordedEvents) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordedEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type clubsFixture struct {
	svc    *Service
	events *recordedEvents
	users  *repository.UserRepository
}

func newClubsFixture(t *testing.T) *clubsFixture {
	t.Helper()
	db := dbtest.Open(t, repository.Models()...)
	events := &recordedEvents{}
	return &clubsFixture{
		svc:    NewService(repository.NewClubRepository(db), events),
		events: events,
		users:  repository.NewUserRepository(db),
	}
}

func (f *clubsFixture) user(t *testing.T) int64 {
	t.Helper()
	u := &domain.User{Username: gofakeit.Username() + gofakeit.DigitN(6), Email: gofakeit.Email(), IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), u, "hash"))
	return u.ID
}

func intPtr(v int) *int { return &v }

func TestCreateEnrolsOwner(t *testing.T) {
	f := newClubsFixture(t)
	ctx := context.Background()
	owner := f.user(t)

	club, err := f.svc.Create(ctx, owner, CreateClubRequest{Name: "Inklings"})
	require.NoError(t, err)
	assert.True(t, club.IsActive)
	assert.Equal(t, owner, club.CreatedBy)

	members, err := f.svc.Members(ctx, club.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, domain.ClubRoleOwner, members[0].Role)

	_, err = f.svc.Get(ctx, club.ID+100)
	assert.ErrorIs(t, err, ErrClubNotFound)
}

func TestUpdateAndDeleteRequireCreator(t *testing.T) {
	f := newClubsFixture(t)
	ctx := context.Background()
	owner, other := f.user(t), f.user(t)
	club, err := f.svc.Create(ctx, owner, CreateClubRequest{Name: "Inklings"})
	require.NoError(t, err)

	name := "Renamed"
	_, err = f.svc.Update(ctx, other, club.ID, UpdateClubRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotAllowedUpdate)
	assert.ErrorIs(t, f.svc.Delete(ctx, other, club.ID), ErrNotAllowedDelete)

	updated, err := f.svc.Update(ctx, owner, club.ID, UpdateClubRequest{Name: &name, MaxMembers: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 10, *updated.MaxMembers)

	require.NoError(t, f.svc.Delete(ctx, owner, club.ID))
	_, err = f.svc.Get(ctx, club.ID)
	assert.ErrorIs(t, err, ErrClubNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, owner, club.ID), ErrClubNotFound)

	assert.Equal(t, []string{EventClubUpdated, EventClubDeleted}, f.events.types())
}

func TestJoinRules(t *testing.T) {
	f := newClubsFixture(t)
	ctx := context.Background()
	owner, a, b := f.user(t), f.user(t), f.user(t)

	club, err := f.svc.Create(ctx, owner, CreateClubRequest{Name: "Tiny", MaxMembers: intPtr(2)})
	require.NoError(t, err)

	member, err := f.svc.Join(ctx, a, club.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClubRoleMember, member.Role)

	_, err = f.svc.Join(ctx, a, club.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	_, err = f.svc.Join(ctx, b, club.ID)
	assert.ErrorIs(t, err, ErrClubFull)

	_, err = f.svc.Join(ctx, b, club.ID+100)
	assert.ErrorIs(t, err, ErrClubNotFound)

	inactive := false
	_, err = f.svc.Update(ctx, owner, club.ID, UpdateClubRequest{IsActive: &inactive, MaxMembers: intPtr(5)})
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, b, club.ID)
	assert.ErrorIs(t, err, ErrClubInactive)
}

func TestLeave(t *testing.T) {
	f := newClubsFixture(t)
	ctx := context.Background()
	owner, a := f.user(t), f.user(t)
	club, err := f.svc.Create(ctx, owner, CreateClubRequest{Name: "Inklings"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Leave(ctx, owner, club.ID), ErrOwnerCannotLeave)
	assert.ErrorIs(t, f.svc.Leave(ctx, a, club.ID), ErrNotMember)

	_, err = f.svc.Join(ctx, a, club.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Leave(ctx, a, club.ID))

	members, err := f.svc.Members(ctx, club.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, []string{EventMemberJoined, EventMemberLeft}, f.events.types())
}
