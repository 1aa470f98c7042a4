package users

import (
	"context"
	"errors"
	"strings"

	"publicsquare/internal/domain"
	"publicsquare/internal/pkg/validator"
	"publicsquare/internal/repository"
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

type TokenRevoker interface {
	RevokeAllForUser(ctx context.Context, userID int64) (int64, error)
}

type Service struct {
	users  UserStore
	tokens TokenRevoker
}

func NewService(users UserStore, tokens TokenRevoker) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	return s.users.List(ctx, skip, limit)
}

// Update changes the caller's own profile.
func (s *Service) Update(ctx context.Context, callerID, id int64, req UpdateUserRequest) (*domain.User, error) {
	if callerID != id {
		return nil, ErrNotAllowedUpdate
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username, ok := validator.Username(*req.Username)
		if !ok {
			return nil, ErrInvalidUsername
		}
		if username != u.Username {
			taken, err := s.users.ExistsByUsername(ctx, username, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrUsernameExists
			}
		}
		u.Username = username
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != u.Email {
			taken, err := s.users.ExistsByEmail(ctx, email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrEmailExists
			}
		}
		u.Email = email
	}
	if req.FullName != nil {
		u.FullName = req.FullName
	}
	deactivated := false
	if req.IsActive != nil {
		deactivated = u.IsActive && !*req.IsActive
		u.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			if req.Username != nil {
				if taken, _ := s.users.ExistsByUsername(ctx, u.Username, id); taken {
					return nil, ErrUsernameExists
				}
			}
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if deactivated {
		if _, err := s.tokens.RevokeAllForUser(ctx, id); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Delete deactivates the caller's account and revokes all of its refresh
// tokens. It returns the number of revoked tokens.
func (s *Service) Delete(ctx context.Context, callerID, id int64) (int64, error) {
	if callerID != id {
		return 0, ErrNotAllowedDelete
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	u.IsActive = false
	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return s.tokens.RevokeAllForUser(ctx, id)
}
