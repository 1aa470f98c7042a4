package domain

import "time"

// User is the public identity record. It is soft-deleted by clearing IsActive.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credential is the one-to-one security record of a user. Email is an
// auxiliary copy of User.Email used for login lookups.
type Credential struct {
	ID                int64
	UserID            int64
	Email             string
	PasswordHash      string
	OldPasswordHash   *string
	PasswordChangedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
