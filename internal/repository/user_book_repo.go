package repository

import (
	"context"
	"database/sql"
	"time"

	"publicsquare/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userBookModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	UserID        int64      `gorm:"column:user_id;not null;uniqueIndex:idx_user_books_user_book,priority:1"`
	User          userModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BookID        int64      `gorm:"column:book_id;not null;uniqueIndex:idx_user_books_user_book,priority:2"`
	Book          bookModel  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	IsRead        bool       `gorm:"column:is_read;not null"`
	ReadDate      *time.Time `gorm:"column:read_date"`
	ReadingStatus string     `gorm:"column:reading_status;size:20;not null"`
	Rating        *float64   `gorm:"column:rating"`
	Review        *string    `gorm:"column:review;type:text"`
	Notes         *string    `gorm:"column:notes;type:text"`
	IsFavorite    bool       `gorm:"column:is_favorite;not null"`
	AddedDate     time.Time  `gorm:"column:added_date;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (userBookModel) TableName() string { return "user_books" }

func toDomainUserBook(m userBookModel) *domain.UserBook {
	return &domain.UserBook{
		ID:            m.ID,
		UserID:        m.UserID,
		BookID:        m.BookID,
		IsRead:        m.IsRead,
		ReadDate:      m.ReadDate,
		ReadingStatus: domain.ReadingStatus(m.ReadingStatus),
		Rating:        m.Rating,
		Review:        m.Review,
		Notes:         m.Notes,
		IsFavorite:    m.IsFavorite,
		AddedDate:     m.AddedDate,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserBookModel(ub *domain.UserBook) userBookModel {
	status := ub.ReadingStatus
	if status == "" {
		status = domain.StatusUnread
	}
	return userBookModel{
		ID:            ub.ID,
		UserID:        ub.UserID,
		BookID:        ub.BookID,
		IsRead:        ub.IsRead,
		ReadDate:      ub.ReadDate,
		ReadingStatus: string(status),
		Rating:        ub.Rating,
		Review:        ub.Review,
		Notes:         ub.Notes,
		IsFavorite:    ub.IsFavorite,
		AddedDate:     ub.AddedDate,
		UpdatedAt:     ub.UpdatedAt,
	}
}

// UserBookFilter narrows a user's library listing. Nil fields are not applied.
type UserBookFilter struct {
	IsRead     *bool
	IsFavorite *bool
	MinRating  *float64
	Skip       int
	Limit      int
}

type UserBookRepository struct {
	db *gorm.DB
}

func NewUserBookRepository(db *gorm.DB) *UserBookRepository {
	return &UserBookRepository{db: db}
}

func (r *UserBookRepository) Create(ctx context.Context, ub *domain.UserBook) error {
	m := toUserBookModel(ub)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translate(err)
	}
	*ub = *toDomainUserBook(m)
	return nil
}

func (r *UserBookRepository) GetByID(ctx context.Context, id int64) (*domain.UserBook, error) {
	var m userBookModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainUserBook(m), nil
}

func (r *UserBookRepository) GetByUserAndBook(ctx context.Context, userID, bookID int64) (*domain.UserBook, error) {
	var m userBookModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainUserBook(m), nil
}

// GetByIDs returns the entries keyed by id; unknown ids are skipped.
func (r *UserBookRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.UserBook, error) {
	out := make(map[int64]domain.UserBook, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []userBookModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = *toDomainUserBook(m)
	}
	return out, nil
}

// List returns the user's entries, most recently added first.
func (r *UserBookRepository) List(ctx context.Context, userID int64, f UserBookFilter) ([]domain.UserBook, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}
	if f.IsFavorite != nil {
		q = q.Where("is_favorite = ?", *f.IsFavorite)
	}
	if f.MinRating != nil {
		q = q.Where("rating >= ?", *f.MinRating)
	}

	var rows []userBookModel
	err := q.Scopes(paginate(f.Skip, f.Limit)).
		Order("added_date DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]domain.UserBook, 0, len(rows))
	for _, m := range rows {
		entries = append(entries, *toDomainUserBook(m))
	}
	return entries, nil
}

// Update writes every mutable column of the entry, zero values included.
func (r *UserBookRepository) Update(ctx context.Context, ub *domain.UserBook) error {
	m := toUserBookModel(ub)
	res := r.db.WithContext(ctx).Model(&m).
		Select("is_read", "read_date", "reading_status", "rating", "review", "notes", "is_favorite", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	fresh, err := r.GetByID(ctx, ub.ID)
	if err != nil {
		return err
	}
	*ub = *fresh
	return nil
}

func (r *UserBookRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_book_id = ?", id).Delete(&readingListItemModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&userBookModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Stats aggregates the user's library. Year and month windows are taken from now in UTC.
func (r *UserBookRepository) Stats(ctx context.Context, userID int64, now time.Time) (*domain.LibraryStats, error) {
	now = now.UTC()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	db := r.db.WithContext(ctx)
	base := func() *gorm.DB { return db.Model(&userBookModel{}).Where("user_id = ?", userID) }

	var stats domain.LibraryStats
	if err := base().Count(&stats.TotalBooks).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_read = ?", true).Count(&stats.ReadBooks).Error; err != nil {
		return nil, err
	}
	stats.UnreadBooks = stats.TotalBooks - stats.ReadBooks
	if err := base().Where("is_favorite = ?", true).Count(&stats.FavoriteBooks).Error; err != nil {
		return nil, err
	}
	err := base().
		Where("read_date >= ? AND read_date < ?", yearStart, yearStart.AddDate(1, 0, 0)).
		Count(&stats.BooksReadThisYear).Error
	if err != nil {
		return nil, err
	}
	err = base().
		Where("read_date >= ? AND read_date < ?", monthStart, monthStart.AddDate(0, 1, 0)).
		Count(&stats.BooksReadThisMonth).Error
	if err != nil {
		return nil, err
	}
	if err := db.Model(&readingListModel{}).Where("user_id = ?", userID).Count(&stats.TotalReadingLists).Error; err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	if err := base().Select("AVG(rating)").Row().Scan(&avg); err != nil {
		return nil, err
	}
	if avg.Valid {
		v := avg.Float64
		stats.AverageRating = &v
	}
	return &stats, nil
}
