package auth

import (
	"context"
	"time"

	"publicsquare/internal/domain"
	"publicsquare/internal/pkg/jwt"
)

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	Create(ctx context.Context, u *domain.User, passwordHash string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetCredentialByEmail(ctx context.Context, email string) (*domain.Credential, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// RefreshTokenStore persists refresh tokens by hash.
type RefreshTokenStore interface {
	Create(ctx context.Context, userID int64, raw string, expiresAt time.Time, deviceInfo, ipAddress *string) (*domain.RefreshToken, error)
	FindByRawToken(ctx context.Context, raw string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64, replacedByID *int64) (bool, error)
	RevokeAllForUser(ctx context.Context, userID int64) (int64, error)
	ListActiveForUser(ctx context.Context, userID int64, now time.Time) ([]domain.RefreshToken, error)
}

// TokenIssuer signs and verifies access and refresh tokens.
type TokenIssuer interface {
	IssueAccess(userID int64) (string, error)
	IssueRefresh(userID int64) (string, time.Time, error)
	Verify(token, expectedType string) (*jwt.Claims, bool)
	AccessTTL() time.Duration
}
