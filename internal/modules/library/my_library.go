package library

import (
	"context"
	"errors"

	"publicsquare/internal/domain"
	"publicsquare/internal/repository"
)

func (s *Service) AddToLibrary(ctx context.Context, userID int64, req AddUserBookRequest) (*UserBookResponse, error) {
	book, err := s.getBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userBooks.GetByUserAndBook(ctx, userID, req.BookID); err == nil {
		return nil, ErrBookAlreadyInLibrary
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	ub := &domain.UserBook{
		UserID:        userID,
		BookID:        req.BookID,
		IsRead:        req.IsRead,
		ReadDate:      req.ReadDate,
		ReadingStatus: domain.StatusUnread,
		Rating:        req.Rating,
		Review:        req.Review,
		Notes:         req.Notes,
		IsFavorite:    req.IsFavorite,
	}
	if req.ReadingStatus != nil {
		status := domain.ReadingStatus(*req.ReadingStatus)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		ub.ReadingStatus = status
	}

	if err := s.userBooks.Create(ctx, ub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBookAlreadyInLibrary
		}
		return nil, err
	}
	return withBook(*ub, book), nil
}

func (s *Service) ListLibrary(ctx context.Context, userID int64, f repository.UserBookFilter) ([]UserBookResponse, error) {
	entries, err := s.userBooks.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return s.withBooks(ctx, entries)
}

func (s *Service) GetUserBook(ctx context.Context, userID, id int64) (*UserBookResponse, error) {
	ub, err := s.ownUserBook(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.withOneBook(ctx, *ub)
}

func (s *Service) UpdateUserBook(ctx context.Context, userID, id int64, req UpdateUserBookRequest) (*UserBookResponse, error) {
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		if req.ReadingStatus != nil {
			status := domain.ReadingStatus(*req.ReadingStatus)
			if !status.Valid() {
				return ErrInvalidStatus
			}
			ub.ReadingStatus = status
		}
		if req.IsRead != nil {
			ub.IsRead = *req.IsRead
		}
		if req.ReadDate != nil {
			ub.ReadDate = req.ReadDate
		}
		if req.Rating != nil {
			ub.Rating = req.Rating
		}
		if req.Review != nil {
			ub.Review = req.Review
		}
		if req.Notes != nil {
			ub.Notes = req.Notes
		}
		if req.IsFavorite != nil {
			ub.IsFavorite = *req.IsFavorite
		}
		return nil
	})
}

// RemoveFromLibrary deletes the entry and its reading-list items.
func (s *Service) RemoveFromLibrary(ctx context.Context, userID, id int64) error {
	if _, err := s.ownUserBook(ctx, userID, id); err != nil {
		return err
	}
	err := s.userBooks.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserBookNotFound
	}
	return err
}

// MarkRead sets is_read; readDate defaults to now.
func (s *Service) MarkRead(ctx context.Context, userID, id int64, req MarkReadRequest) (*UserBookResponse, error) {
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		readDate := s.now()
		if req.ReadDate != nil {
			readDate = req.ReadDate.UTC()
		}
		ub.IsRead = true
		ub.ReadDate = &readDate
		return nil
	})
}

// MarkUnread clears the read state and puts the book back in progress.
func (s *Service) MarkUnread(ctx context.Context, userID, id int64) (*UserBookResponse, error) {
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		ub.IsRead = false
		ub.ReadDate = nil
		ub.ReadingStatus = domain.StatusReading
		return nil
	})
}

// SetReadingStatus keeps is_read and read_date consistent with the status:
// finished marks the book read now, anything else clears both.
func (s *Service) SetReadingStatus(ctx context.Context, userID, id int64, status string) (*UserBookResponse, error) {
	st := domain.ReadingStatus(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		ub.ReadingStatus = st
		if st == domain.StatusFinished {
			now := s.now()
			ub.IsRead = true
			ub.ReadDate = &now
		} else {
			ub.IsRead = false
			ub.ReadDate = nil
		}
		return nil
	})
}

func (s *Service) SetRating(ctx context.Context, userID, id int64, rating float64) (*UserBookResponse, error) {
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		ub.Rating = &rating
		return nil
	})
}

func (s *Service) SetReview(ctx context.Context, userID, id int64, review string) (*UserBookResponse, error) {
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		ub.Review = &review
		return nil
	})
}

func (s *Service) SetNotes(ctx context.Context, userID, id int64, notes string) (*UserBookResponse, error) {
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		ub.Notes = &notes
		return nil
	})
}

func (s *Service) ToggleFavorite(ctx context.Context, userID, id int64) (*UserBookResponse, error) {
	return s.mutate(ctx, userID, id, func(ub *domain.UserBook) error {
		ub.IsFavorite = !ub.IsFavorite
		return nil
	})
}

// mutate loads the caller's entry, applies fn and stores the result.
func (s *Service) mutate(ctx context.Context, userID, id int64, fn func(*domain.UserBook) error) (*UserBookResponse, error) {
	ub, err := s.ownUserBook(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ub); err != nil {
		return nil, err
	}
	if err := s.userBooks.Update(ctx, ub); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserBookNotFound
		}
		return nil, err
	}
	return s.withOneBook(ctx, *ub)
}

// ownUserBook hides entries of other users behind the same not-found error.
func (s *Service) ownUserBook(ctx context.Context, userID, id int64) (*domain.UserBook, error) {
	ub, err := s.userBooks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserBookNotFound
		}
		return nil, err
	}
	if ub.UserID != userID {
		return nil, ErrUserBookNotFound
	}
	return ub, nil
}

func (s *Service) withOneBook(ctx context.Context, ub domain.UserBook) (*UserBookResponse, error) {
	book, err := s.books.GetByID(ctx, ub.BookID)
	if err != nil {
		return nil, err
	}
	return withBook(ub, book), nil
}

func (s *Service) withBooks(ctx context.Context, entries []domain.UserBook) ([]UserBookResponse, error) {
	ids := make([]int64, 0, len(entries))
	for _, ub := range entries {
		ids = append(ids, ub.BookID)
	}
	books, err := s.books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]UserBookResponse, 0, len(entries))
	for _, ub := range entries {
		var book *domain.Book
		if b, ok := books[ub.BookID]; ok {
			book = &b
		}
		out = append(out, *withBook(ub, book))
	}
	return out, nil
}

func withBook(ub domain.UserBook, book *domain.Book) *UserBookResponse {
	resp := &UserBookResponse{UserBook: ub}
	if book != nil {
		br := newBookResponse(*book)
		resp.Book = &br
	}
	return resp
}
