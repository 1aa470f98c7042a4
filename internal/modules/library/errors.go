package library

import "publicsquare/internal/pkg/apperror"

var (
	ErrBookNotFound         = apperror.NotFound("BOOK_NOT_FOUND", "Book not found")
	ErrBookAlreadyInLibrary = apperror.BadRequest("BOOK_ALREADY_IN_LIBRARY", "Book already in library")
	ErrUserBookNotFound     = apperror.NotFound("USER_BOOK_NOT_FOUND", "Book not found in your library")
	ErrInvalidStatus        = apperror.BadRequest("INVALID_READING_STATUS", "Invalid reading status")
	ErrInvalidDate          = apperror.BadRequest("INVALID_DATE", "date_of_first_publish must be YYYY-MM-DD")
	ErrListNotFound         = apperror.NotFound("READING_LIST_NOT_FOUND", "Reading list not found")
	ErrAlreadyInList        = apperror.Conflict("ALREADY_IN_READING_LIST", "Book already in reading list")
	ErrNotInList            = apperror.NotFound("NOT_IN_READING_LIST", "Book not in reading list")
	ErrLookupFailed         = apperror.Unavailable("ISBN_LOOKUP_FAILED", "Failed to lookup ISBN")
)
