package auth

import "publicsquare/internal/pkg/apperror"

var (
	ErrUsernameTaken      = apperror.Conflict("USERNAME_TAKEN", "Username already registered")
	ErrInvalidUsername    = apperror.BadRequest("INVALID_USERNAME", "Username must be 3-255 characters")
	ErrEmailTaken         = apperror.Conflict("EMAIL_TAKEN", "Email already registered")
	ErrInvalidCredentials = apperror.Unauthorized("INVALID_CREDENTIALS", "Incorrect email or password")
	ErrUserNotFound       = apperror.NotFound("USER_NOT_FOUND", "User not found")
	ErrInactiveUser       = apperror.BadRequest("INACTIVE_USER", "Inactive user")
	ErrInvalidToken       = apperror.Unauthorized("INVALID_TOKEN", "Could not validate credentials")

	ErrRefreshTokenMissing = apperror.Unauthorized("REFRESH_TOKEN_MISSING", "Refresh token missing")
	ErrInvalidRefreshToken = apperror.Unauthorized("INVALID_REFRESH_TOKEN", "Invalid refresh token")
	ErrRefreshTokenRevoked = apperror.Unauthorized("REFRESH_TOKEN_REVOKED", "Refresh token revoked or expired")
)
