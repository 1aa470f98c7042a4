//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"publicsquare/internal/database"
	"publicsquare/internal/domain"
	"publicsquare/internal/repository"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("publicsquare"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Connect(dsn, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestPostgresMigrationsAndStores(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	u := &domain.User{Username: "pg-reader", Email: "pg@example.com", IsActive: true}
	require.NoError(t, users.Create(ctx, u, "hash"))

	dup := &domain.User{Username: "pg-other", Email: "PG@example.com", IsActive: true}
	assert.ErrorIs(t, users.Create(ctx, dup, "hash"), repository.ErrDuplicate)

	tokens := repository.NewRefreshTokenRepository(db, "pepper")
	now := time.Now().UTC()
	live, err := tokens.Create(ctx, u.ID, "live-token", now.Add(time.Hour), nil, nil)
	require.NoError(t, err)
	_, err = tokens.Create(ctx, u.ID, "old-token", now.Add(-30*24*time.Hour), nil, nil)
	require.NoError(t, err)

	found, err := tokens.FindByRawToken(ctx, "live-token")
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)
	assert.Len(t, found.TokenHash, 64)

	deleted, err := tokens.CleanupExpired(ctx, now, 7*24*time.Hour, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	revoked, err := tokens.RevokeAllForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), revoked)

	clubs := repository.NewClubRepository(db)
	club := &domain.Club{Name: "Postgres Readers", CreatedBy: u.ID, IsActive: true}
	require.NoError(t, clubs.Create(ctx, club))
	count, err := clubs.CountMembers(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	books := repository.NewBookRepository(db)
	published := time.Date(1937, time.September, 21, 0, 0, 0, 0, time.UTC)
	book := &domain.Book{Title: "The Hobbit", Author: "J.R.R. Tolkien", DateOfFirstPublish: &published}
	require.NoError(t, books.Create(ctx, book))

	userBooks := repository.NewUserBookRepository(db)
	rating := 5.0
	readAt := now.Add(-time.Minute)
	require.NoError(t, userBooks.Create(ctx, &domain.UserBook{
		UserID: u.ID, BookID: book.ID, IsRead: true, ReadDate: &readAt,
		ReadingStatus: domain.StatusFinished, Rating: &rating,
	}))
	stats, err := userBooks.Stats(ctx, u.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.BooksReadThisYear)
	require.NotNil(t, stats.AverageRating)
	assert.InDelta(t, 5.0, *stats.AverageRating, 0.001)

	filtered, err := books.List(ctx, repository.BookFilter{Title: "HOBBIT", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestPostgresMigrationsRollBack(t *testing.T) {
	db := startPostgres(t)

	m, err := database.NewMigrator(db)
	require.NoError(t, err)
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)
	assert.False(t, dirty)

	require.NoError(t, m.Down())
	assert.False(t, db.Migrator().HasTable("users"))
}
