package library

import (
	"time"

	"publicsquare/internal/domain"
)

const dateLayout = "2006-01-02"

type CreateBookRequest struct {
	Title              string  `json:"title" binding:"required,min=1,max=500"`
	Author             string  `json:"author" binding:"required,min=1,max=255"`
	DateOfFirstPublish *string `json:"date_of_first_publish" binding:"omitempty,datetime=2006-01-02"`
	Genre              *string `json:"genre" binding:"omitempty,max=100"`
	Description        *string `json:"description"`
	CoverImageURL      *string `json:"cover_image_url" binding:"omitempty,max=1000"`
	SeriesTitle        *string `json:"series_title" binding:"omitempty,max=500"`
	VolumeNumber       *int    `json:"volume_number" binding:"omitempty,gt=0"`
	VolumeTitle        *string `json:"volume_title" binding:"omitempty,max=500"`
}

// UpdateBookRequest changes only the fields present in the body.
type UpdateBookRequest struct {
	Title              *string `json:"title" binding:"omitempty,min=1,max=500"`
	Author             *string `json:"author" binding:"omitempty,min=1,max=255"`
	DateOfFirstPublish *string `json:"date_of_first_publish" binding:"omitempty,datetime=2006-01-02"`
	Genre              *string `json:"genre" binding:"omitempty,max=100"`
	Description        *string `json:"description"`
	CoverImageURL      *string `json:"cover_image_url" binding:"omitempty,max=1000"`
	SeriesTitle        *string `json:"series_title" binding:"omitempty,max=500"`
	VolumeNumber       *int    `json:"volume_number" binding:"omitempty,gt=0"`
	VolumeTitle        *string `json:"volume_title" binding:"omitempty,max=500"`
}

type BookResponse struct {
	domain.Book
	DateOfFirstPublish *string `json:"date_of_first_publish"`
}

func newBookResponse(b domain.Book) BookResponse {
	resp := BookResponse{Book: b}
	if b.DateOfFirstPublish != nil {
		s := b.DateOfFirstPublish.Format(dateLayout)
		resp.DateOfFirstPublish = &s
	}
	return resp
}

type ISBNLookupRequest struct {
	ISBN string `json:"isbn" binding:"required,isbn_digits"`
}

type AddUserBookRequest struct {
	BookID        int64      `json:"book_id" binding:"required,gt=0"`
	IsRead        bool       `json:"is_read"`
	ReadDate      *time.Time `json:"read_date"`
	ReadingStatus *string    `json:"reading_status" binding:"omitempty,reading_status"`
	Rating        *float64   `json:"rating" binding:"omitempty,min=0,max=5"`
	Review        *string    `json:"review"`
	Notes         *string    `json:"notes"`
	IsFavorite    bool       `json:"is_favorite"`
}

type UpdateUserBookRequest struct {
	IsRead        *bool      `json:"is_read"`
	ReadDate      *time.Time `json:"read_date"`
	ReadingStatus *string    `json:"reading_status"`
	Rating        *float64   `json:"rating" binding:"omitempty,min=0,max=5"`
	Review        *string    `json:"review"`
	Notes         *string    `json:"notes"`
	IsFavorite    *bool      `json:"is_favorite"`
}

type MarkReadRequest struct {
	ReadDate *time.Time `json:"read_date"`
}

type ReadingStatusRequest struct {
	ReadingStatus string `json:"reading_status"`
}

type RatingRequest struct {
	Rating *float64 `json:"rating" binding:"required,min=0,max=5"`
}

type ReviewRequest struct {
	Review string `json:"review" binding:"required,min=1"`
}

type NotesRequest struct {
	Notes string `json:"notes" binding:"required,min=1"`
}

// UserBookResponse is a library entry with its catalog book.
type UserBookResponse struct {
	domain.UserBook
	Book *BookResponse `json:"book"`
}

type CreateReadingListRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
	IsDefault   bool    `json:"is_default"`
}

type UpdateReadingListRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	IsDefault   *bool   `json:"is_default"`
}

type ReadingListResponse struct {
	domain.ReadingList
	ItemCount int64 `json:"item_count"`
}

type ReadingListItemResponse struct {
	domain.ReadingListItem
	UserBook *UserBookResponse `json:"user_book,omitempty"`
}

type ReadingListDetail struct {
	ReadingListResponse
	Items []ReadingListItemResponse `json:"items"`
}

type AddItemRequest struct {
	UserBookID int64 `json:"user_book_id" binding:"required,gt=0"`
	OrderIndex *int  `json:"order_index" binding:"omitempty,min=0"`
}

type ReorderItem struct {
	ItemID     int64 `json:"item_id" binding:"required,gt=0"`
	OrderIndex *int  `json:"order_index" binding:"required,min=0"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required,dive"`
}
