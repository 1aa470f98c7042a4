package library

import (
	"context"
	"errors"
	"log"
	"time"

	"publicsquare/internal/domain"
	"publicsquare/internal/pkg/openlibrary"
	"publicsquare/internal/repository"
)

// Service covers the shared book catalog, each user's personal library and
// reading lists.
type Service struct {
	books     BookStore
	userBooks UserBookStore
	lists     ReadingListStore
	lookup    ISBNLookup
	now       func() time.Time
}

type ServiceOption func(*Service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(books BookStore, userBooks UserBookStore, lists ReadingListStore, lookup ISBNLookup, opts ...ServiceOption) *Service {
	s := &Service{
		books:     books,
		userBooks: userBooks,
		lists:     lists,
		lookup:    lookup,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	published, err := parseDate(req.DateOfFirstPublish)
	if err != nil {
		return nil, err
	}
	book := &domain.Book{
		Title:              req.Title,
		Author:             req.Author,
		DateOfFirstPublish: published,
		Genre:              req.Genre,
		Description:        req.Description,
		CoverImageURL:      req.CoverImageURL,
		SeriesTitle:        req.SeriesTitle,
		VolumeNumber:       req.VolumeNumber,
		VolumeTitle:        req.VolumeTitle,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	resp := newBookResponse(*book)
	return &resp, nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (*BookResponse, error) {
	book, err := s.getBook(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := newBookResponse(*book)
	return &resp, nil
}

func (s *Service) getBook(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookNotFound
	}
	return book, err
}

func (s *Service) ListBooks(ctx context.Context, f repository.BookFilter) ([]BookResponse, error) {
	books, err := s.books.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, newBookResponse(b))
	}
	return out, nil
}

func (s *Service) UpdateBook(ctx context.Context, id int64, req UpdateBookRequest) (*BookResponse, error) {
	book, err := s.getBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.DateOfFirstPublish != nil {
		if book.DateOfFirstPublish, err = parseDate(req.DateOfFirstPublish); err != nil {
			return nil, err
		}
	}
	if req.Genre != nil {
		book.Genre = req.Genre
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.CoverImageURL != nil {
		book.CoverImageURL = req.CoverImageURL
	}
	if req.SeriesTitle != nil {
		book.SeriesTitle = req.SeriesTitle
	}
	if req.VolumeNumber != nil {
		book.VolumeNumber = req.VolumeNumber
	}
	if req.VolumeTitle != nil {
		book.VolumeTitle = req.VolumeTitle
	}

	if err := s.books.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	resp := newBookResponse(*book)
	return &resp, nil
}

// DeleteBook removes the book along with every library entry that holds it.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	err := s.books.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookNotFound
	}
	return err
}

// LookupISBN asks the external catalog for metadata. Upstream failures are
// reported as ErrLookupFailed; an unknown ISBN is not an error.
func (s *Service) LookupISBN(ctx context.Context, isbn string) (*openlibrary.Lookup, error) {
	result, err := s.lookup.LookupISBN(ctx, isbn)
	if err != nil {
		log.Printf("isbn_lookup_failed isbn=%s err=%v", isbn, err)
		return nil, ErrLookupFailed
	}
	return result, nil
}

func (s *Service) Stats(ctx context.Context, userID int64) (*domain.LibraryStats, error) {
	return s.userBooks.Stats(ctx, userID, s.now())
}

func parseDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, *v, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}
