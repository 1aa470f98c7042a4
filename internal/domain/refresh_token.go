package domain

import "time"

// RefreshToken is one issued refresh credential.
//
// Only the SHA-256 hash of the raw token is kept (TokenHash); the raw value
// never reaches storage. ReplacedByID links a rotated token to its successor.
type RefreshToken struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	TokenHash    string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	Revoked      bool      `json:"revoked"`
	ReplacedByID *int64    `json:"replaced_by_id,omitempty"`
	DeviceInfo   *string   `json:"device_info"`
	IPAddress    *string   `json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsValid reports whether the token can still be exchanged: not revoked and
// not past its expiry.
func (t *RefreshToken) IsValid(now time.Time) bool {
	return !t.Revoked && !t.IsExpired(now)
}
