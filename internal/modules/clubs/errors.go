package clubs

import "publicsquare/internal/pkg/apperror"

var (
	ErrClubNotFound     = apperror.NotFound("CLUB_NOT_FOUND", "Club not found")
	ErrNotAllowedUpdate = apperror.Forbidden("FORBIDDEN", "Not authorized to update this club")
	ErrNotAllowedDelete = apperror.Forbidden("FORBIDDEN", "Not authorized to delete this club")
	ErrClubInactive     = apperror.BadRequest("CLUB_INACTIVE", "Club is not active")
	ErrAlreadyMember    = apperror.Conflict("ALREADY_MEMBER", "Already a member of this club")
	ErrClubFull         = apperror.BadRequest("CLUB_FULL", "Club is full")
	ErrNotMember        = apperror.NotFound("NOT_MEMBER", "Not a member of this club")
	ErrOwnerCannotLeave = apperror.BadRequest("OWNER_CANNOT_LEAVE", "Club owner cannot leave the club")
)
