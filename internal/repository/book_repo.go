package repository

import (
	"context"
	"strings"
	"time"

	"publicsquare/internal/domain"

	"gorm.io/gorm"
)

type bookModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	Title              string     `gorm:"column:title;size:500;not null;index"`
	Author             string     `gorm:"column:author;size:255;not null;index"`
	DateOfFirstPublish *time.Time `gorm:"column:date_of_first_publish;type:date"`
	Genre              *string    `gorm:"column:genre;size:100;index"`
	Description        *string    `gorm:"column:description;type:text"`
	CoverImageURL      *string    `gorm:"column:cover_image_url;size:1000"`
	SeriesTitle        *string    `gorm:"column:series_title;size:500"`
	VolumeNumber       *int       `gorm:"column:volume_number"`
	VolumeTitle        *string    `gorm:"column:volume_title;size:500"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookModel) TableName() string { return "books" }

func toDomainBook(m bookModel) *domain.Book {
	return &domain.Book{
		ID:                 m.ID,
		Title:              m.Title,
		Author:             m.Author,
		DateOfFirstPublish: m.DateOfFirstPublish,
		Genre:              m.Genre,
		Description:        m.Description,
		CoverImageURL:      m.CoverImageURL,
		SeriesTitle:        m.SeriesTitle,
		VolumeNumber:       m.VolumeNumber,
		VolumeTitle:        m.VolumeTitle,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookModel(b *domain.Book) bookModel {
	return bookModel{
		ID:                 b.ID,
		Title:              b.Title,
		Author:             b.Author,
		DateOfFirstPublish: b.DateOfFirstPublish,
		Genre:              b.Genre,
		Description:        b.Description,
		CoverImageURL:      b.CoverImageURL,
		SeriesTitle:        b.SeriesTitle,
		VolumeNumber:       b.VolumeNumber,
		VolumeTitle:        b.VolumeTitle,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// BookFilter narrows catalog listings. Text filters are case-insensitive substring matches.
type BookFilter struct {
	Title  string
	Author string
	Genre  string
	Skip   int
	Limit  int
}

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *domain.Book) error {
	m := toBookModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*b = *toDomainBook(m)
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	var m bookModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBook(m), nil
}

// GetByIDs returns the books keyed by id; unknown ids are skipped.
func (r *BookRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Book, error) {
	out := make(map[int64]domain.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []bookModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = *toDomainBook(m)
	}
	return out, nil
}

func (r *BookRepository) List(ctx context.Context, f BookFilter) ([]domain.Book, error) {
	q := r.db.WithContext(ctx).Model(&bookModel{})
	if s := strings.TrimSpace(f.Title); s != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.Author); s != "" {
		q = q.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.Genre); s != "" {
		q = q.Where("LOWER(genre) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var rows []bookModel
	if err := q.Scopes(paginate(f.Skip, f.Limit)).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	books := make([]domain.Book, 0, len(rows))
	for _, m := range rows {
		books = append(books, *toDomainBook(m))
	}
	return books, nil
}

func (r *BookRepository) Update(ctx context.Context, b *domain.Book) error {
	m := toBookModel(b)
	res := r.db.WithContext(ctx).Model(&m).
		Select("title", "author", "date_of_first_publish", "genre", "description",
			"cover_image_url", "series_title", "volume_number", "volume_title", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	fresh, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}

// Delete removes the book, every library entry pointing at it and their reading-list items.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := tx.Model(&userBookModel{}).Select("id").Where("book_id = ?", id)
		if err := tx.Where("user_book_id IN (?)", entries).Delete(&readingListItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&userBookModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&bookModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
