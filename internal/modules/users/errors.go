package users

import "publicsquare/internal/pkg/apperror"

var (
	ErrUserNotFound     = apperror.NotFound("USER_NOT_FOUND", "User not found")
	ErrNotAllowedUpdate = apperror.Forbidden("FORBIDDEN", "Not authorized to update this user")
	ErrNotAllowedDelete = apperror.Forbidden("FORBIDDEN", "Not authorized to delete this user")
	ErrUsernameExists   = apperror.Conflict("USERNAME_EXISTS", "Username already exists")
	ErrEmailExists      = apperror.Conflict("EMAIL_EXISTS", "Email already exists")
	ErrInvalidUsername  = apperror.BadRequest("INVALID_USERNAME", "Username must be 3-255 characters")
)
