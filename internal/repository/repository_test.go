package repository

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"publicsquare/internal/database/dbtest"
	"publicsquare/internal/domain"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t, Models()...)
}

func seedUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	u := &domain.User{
		Username: gofakeit.Username() + gofakeit.DigitN(4),
		Email:    gofakeit.DigitN(6) + gofakeit.Email(),
		IsActive: true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u, "hash"))
	return u
}

func seedBook(t *testing.T, db *gorm.DB) *domain.Book {
	t.Helper()
	b := &domain.Book{Title: gofakeit.BookTitle(), Author: gofakeit.BookAuthor()}
	require.NoError(t, NewBookRepository(db).Create(context.Background(), b))
	return b
}
