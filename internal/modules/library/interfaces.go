package library

import (
	"context"
	"time"

	"publicsquare/internal/domain"
	"publicsquare/internal/pkg/openlibrary"
	"publicsquare/internal/repository"
)

type BookStore interface {
	Create(ctx context.Context, b *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Book, error)
	List(ctx context.Context, f repository.BookFilter) ([]domain.Book, error)
	Update(ctx context.Context, b *domain.Book) error
	Delete(ctx context.Context, id int64) error
}

type UserBookStore interface {
	Create(ctx context.Context, ub *domain.UserBook) error
	GetByID(ctx context.Context, id int64) (*domain.UserBook, error)
	GetByUserAndBook(ctx context.Context, userID, bookID int64) (*domain.UserBook, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserBook, error)
	List(ctx context.Context, userID int64, f repository.UserBookFilter) ([]domain.UserBook, error)
	Update(ctx context.Context, ub *domain.UserBook) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, userID int64, now time.Time) (*domain.LibraryStats, error)
}

type ReadingListStore interface {
	Create(ctx context.Context, l *domain.ReadingList) error
	GetByID(ctx context.Context, id int64) (*domain.ReadingList, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ReadingList, error)
	Update(ctx context.Context, l *domain.ReadingList) error
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, listID, userBookID int64, orderIndex *int) (*domain.ReadingListItem, error)
	RemoveItem(ctx context.Context, listID, userBookID int64) (bool, error)
	ListItems(ctx context.Context, listID int64) ([]domain.ReadingListItem, error)
	Reorder(ctx context.Context, listID int64, orders []repository.ItemOrder) error
	ItemCounts(ctx context.Context, listIDs []int64) (map[int64]int64, error)
}

// ISBNLookup resolves book metadata from an external catalog.
type ISBNLookup interface {
	LookupISBN(ctx context.Context, isbn string) (*openlibrary.Lookup, error)
}
