package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"publicsquare/internal/domain"
	"publicsquare/internal/pkg/jwt"
	"publicsquare/internal/pkg/password"
	"publicsquare/internal/pkg/validator"
	"publicsquare/internal/repository"
)

// Session is the outcome of register and login: a fresh access token plus a
// stored refresh token.
type Session struct {
	User             *domain.User
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Service holds the session lifecycle: register, login, refresh, logout and
// access-token resolution.
type Service struct {
	users  UserStore
	tokens RefreshTokenStore
	issuer TokenIssuer
	now    func() time.Time
}

type ServiceOption func(*Service)

// WithClock overrides the clock used to judge stored refresh tokens.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(users UserStore, tokens RefreshTokenStore, issuer TokenIssuer, opts ...ServiceOption) *Service {
	s := &Service{users: users, tokens: tokens, issuer: issuer, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, req RegisterRequest, client ClientInfo) (*Session, error) {
	username, ok := validator.Username(req.Username)
	if !ok {
		return nil, ErrInvalidUsername
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.users.ExistsByUsername(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		FullName: req.FullName,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.duplicateError(ctx, username)
		}
		return nil, err
	}

	return s.openSession(ctx, user, client)
}

// duplicateError tells which unique field lost a concurrent insert race.
func (s *Service) duplicateError(ctx context.Context, username string) error {
	if taken, err := s.users.ExistsByUsername(ctx, username, 0); err == nil && taken {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// Login checks the password against the stored credential. Unknown email and
// wrong password fail identically.
func (s *Service) Login(ctx context.Context, req LoginRequest, client ClientInfo) (*Session, error) {
	cred, err := s.users.GetCredentialByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(req.Password, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, cred.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return s.openSession(ctx, user, client)
}

func (s *Service) openSession(ctx context.Context, user *domain.User, client ClientInfo) (*Session, error) {
	access, err := s.issuer.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, expiresAt, err := s.issuer.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.tokens.Create(ctx, user.ID, refresh, expiresAt, optional(client.UserAgent, 500), optional(client.IP, 64)); err != nil {
		return nil, err
	}

	return &Session{
		User:             user,
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh token
// is not rotated; it stays valid until it expires or is revoked.
func (s *Service) Refresh(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrRefreshTokenMissing
	}

	claims, ok := s.issuer.Verify(raw, jwt.TypeRefresh)
	if !ok {
		return "", ErrInvalidRefreshToken
	}
	userID, ok := claims.UserID()
	if !ok {
		return "", ErrInvalidRefreshToken
	}

	record, err := s.tokens.FindByRawToken(ctx, raw)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrRefreshTokenRevoked
		}
		return "", err
	}
	if !record.IsValid(s.now()) || record.UserID != userID {
		return "", ErrRefreshTokenRevoked
	}

	return s.issuer.IssueAccess(userID)
}

// Logout revokes raw when it belongs to userID. A missing, foreign or
// unknown token is not an error.
func (s *Service) Logout(ctx context.Context, userID int64, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	record, err := s.tokens.FindByRawToken(ctx, raw)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if record.UserID != userID {
		return nil
	}
	_, err = s.tokens.Revoke(ctx, record.ID, nil)
	return err
}

// LogoutAll revokes every active refresh token of the user and returns how many were revoked.
func (s *Service) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	return s.tokens.RevokeAllForUser(ctx, userID)
}

func (s *Service) Sessions(ctx context.Context, userID int64) ([]SessionResponse, error) {
	tokens, err := s.tokens.ListActiveForUser(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]SessionResponse, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, SessionResponse{
			ID:         t.ID,
			DeviceInfo: t.DeviceInfo,
			IPAddress:  t.IPAddress,
			CreatedAt:  t.CreatedAt,
			ExpiresAt:  t.ExpiresAt,
		})
	}
	return out, nil
}

// ResolveUser maps a bearer access token to an active user. It does one token
// verification and one user lookup.
func (s *Service) ResolveUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, ok := s.issuer.Verify(accessToken, jwt.TypeAccess)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims.UserID()
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// AccessTTLSeconds is the expires_in value of token responses.
func (s *Service) AccessTTLSeconds() int {
	return int(s.issuer.AccessTTL().Seconds())
}

// optional trims v to the column width; empty becomes nil.
func optional(v string, limit int) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if len(v) > limit {
		v = strings.ToValidUTF8(v[:limit], "")
	}
	return &v
}
