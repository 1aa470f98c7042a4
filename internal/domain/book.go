package domain

import "time"

// Book is an entry of the shared catalog.
type Book struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	Author             string     `json:"author"`
	DateOfFirstPublish *time.Time `json:"-"`
	Genre              *string    `json:"genre"`
	Description        *string    `json:"description"`
	CoverImageURL      *string    `json:"cover_image_url"`
	SeriesTitle        *string    `json:"series_title"`
	VolumeNumber       *int       `json:"volume_number"`
	VolumeTitle        *string    `json:"volume_title"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ReadingStatus is the progress of a user on a book in their library.
type ReadingStatus string

const (
	StatusUnread   ReadingStatus = "unread"
	StatusReading  ReadingStatus = "reading"
	StatusFinished ReadingStatus = "finished"
)

func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusFinished:
		return true
	}
	return false
}

// UserBook is a book placed in a user's personal library.
type UserBook struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	BookID        int64         `json:"book_id"`
	IsRead        bool          `json:"is_read"`
	ReadDate      *time.Time    `json:"read_date"`
	ReadingStatus ReadingStatus `json:"reading_status"`
	Rating        *float64      `json:"rating"`
	Review        *string       `json:"review"`
	Notes         *string       `json:"notes"`
	IsFavorite    bool          `json:"is_favorite"`
	AddedDate     time.Time     `json:"added_date"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type ReadingList struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsDefault   bool      `json:"is_default"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReadingListItem struct {
	ID            int64     `json:"id"`
	ReadingListID int64     `json:"reading_list_id"`
	UserBookID    int64     `json:"user_book_id"`
	OrderIndex    int       `json:"order_index"`
	AddedDate     time.Time `json:"added_date"`
}

// LibraryStats aggregates a user's library.
type LibraryStats struct {
	TotalBooks         int64    `json:"total_books"`
	ReadBooks          int64    `json:"read_books"`
	UnreadBooks        int64    `json:"unread_books"`
	FavoriteBooks      int64    `json:"favorite_books"`
	TotalReadingLists  int64    `json:"total_reading_lists"`
	AverageRating      *float64 `json:"average_rating"`
	BooksReadThisYear  int64    `json:"books_read_this_year"`
	BooksReadThisMonth int64    `json:"books_read_this_month"`
}
