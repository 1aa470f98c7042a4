package repository

import (
	"context"
	"database/sql"
	"time"

	"publicsquare/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type readingListModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	User        userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name        string    `gorm:"column:name;size:255;not null"`
	Description *string   `gorm:"column:description;type:text"`
	IsDefault   bool      `gorm:"column:is_default;not null"`
	CreatedDate time.Time `gorm:"column:created_date;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (readingListModel) TableName() string { return "reading_lists" }

type readingListItemModel struct {
	ID            int64            `gorm:"column:id;primaryKey"`
	ReadingListID int64            `gorm:"column:reading_list_id;not null;uniqueIndex:idx_reading_list_items_list_book,priority:1"`
	ReadingList   readingListModel `gorm:"foreignKey:ReadingListID;constraint:OnDelete:CASCADE"`
	UserBookID    int64            `gorm:"column:user_book_id;not null;uniqueIndex:idx_reading_list_items_list_book,priority:2"`
	UserBook      userBookModel    `gorm:"foreignKey:UserBookID;constraint:OnDelete:CASCADE"`
	OrderIndex    int              `gorm:"column:order_index;not null"`
	AddedDate     time.Time        `gorm:"column:added_date;autoCreateTime"`
}

func (readingListItemModel) TableName() string { return "reading_list_items" }

func toDomainReadingList(m readingListModel) *domain.ReadingList {
	return &domain.ReadingList{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		IsDefault:   m.IsDefault,
		CreatedDate: m.CreatedDate,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainReadingListItem(m readingListItemModel) domain.ReadingListItem {
	return domain.ReadingListItem{
		ID:            m.ID,
		ReadingListID: m.ReadingListID,
		UserBookID:    m.UserBookID,
		OrderIndex:    m.OrderIndex,
		AddedDate:     m.AddedDate,
	}
}

// ItemOrder moves one reading-list item to a new position.
type ItemOrder struct {
	ItemID     int64
	OrderIndex int
}

type ReadingListRepository struct {
	db *gorm.DB
}

func NewReadingListRepository(db *gorm.DB) *ReadingListRepository {
	return &ReadingListRepository{db: db}
}

func (r *ReadingListRepository) Create(ctx context.Context, l *domain.ReadingList) error {
	m := readingListModel{
		UserID:      l.UserID,
		Name:        l.Name,
		Description: l.Description,
		IsDefault:   l.IsDefault,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translate(err)
	}
	*l = *toDomainReadingList(m)
	return nil
}

func (r *ReadingListRepository) GetByID(ctx context.Context, id int64) (*domain.ReadingList, error) {
	var m readingListModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainReadingList(m), nil
}

// ListByUser returns the default list first, then the rest in creation order.
func (r *ReadingListRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ReadingList, error) {
	var rows []readingListModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_date").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	lists := make([]domain.ReadingList, 0, len(rows))
	for _, m := range rows {
		lists = append(lists, *toDomainReadingList(m))
	}
	return lists, nil
}

func (r *ReadingListRepository) Update(ctx context.Context, l *domain.ReadingList) error {
	m := readingListModel{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		IsDefault:   l.IsDefault,
	}
	res := r.db.WithContext(ctx).Model(&m).
		Select("name", "description", "is_default", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	fresh, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *fresh
	return nil
}

func (r *ReadingListRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reading_list_id = ?", id).Delete(&readingListItemModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&readingListModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddItem appends the entry to the list. A nil orderIndex places it after the current last item.
func (r *ReadingListRepository) AddItem(ctx context.Context, listID, userBookID int64, orderIndex *int) (*domain.ReadingListItem, error) {
	m := readingListItemModel{ReadingListID: listID, UserBookID: userBookID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if orderIndex != nil {
			m.OrderIndex = *orderIndex
		} else {
			var last sql.NullInt64
			err := tx.Model(&readingListItemModel{}).
				Where("reading_list_id = ?", listID).
				Select("MAX(order_index)").
				Row().Scan(&last)
			if err != nil {
				return err
			}
			if last.Valid {
				m.OrderIndex = int(last.Int64) + 1
			}
		}
		return tx.Omit(clause.Associations).Create(&m).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	item := toDomainReadingListItem(m)
	return &item, nil
}

func (r *ReadingListRepository) RemoveItem(ctx context.Context, listID, userBookID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("reading_list_id = ? AND user_book_id = ?", listID, userBookID).
		Delete(&readingListItemModel{})
	return res.RowsAffected > 0, res.Error
}

// ListItems returns the items of the list ordered by position.
func (r *ReadingListRepository) ListItems(ctx context.Context, listID int64) ([]domain.ReadingListItem, error) {
	var rows []readingListItemModel
	err := r.db.WithContext(ctx).
		Where("reading_list_id = ?", listID).
		Order("order_index").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]domain.ReadingListItem, 0, len(rows))
	for _, m := range rows {
		items = append(items, toDomainReadingListItem(m))
	}
	return items, nil
}

// Reorder applies the new positions. Items that do not belong to the list are left alone.
func (r *ReadingListRepository) Reorder(ctx context.Context, listID int64, orders []ItemOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			err := tx.Model(&readingListItemModel{}).
				Where("id = ? AND reading_list_id = ?", o.ItemID, listID).
				Update("order_index", o.OrderIndex).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ItemCounts returns the number of items per list id.
func (r *ReadingListRepository) ItemCounts(ctx context.Context, listIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(listIDs))
	if len(listIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ReadingListID int64
		Total         int64
	}
	err := r.db.WithContext(ctx).Model(&readingListItemModel{}).
		Select("reading_list_id, COUNT(*) AS total").
		Where("reading_list_id IN ?", listIDs).
		Group("reading_list_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ReadingListID] = row.Total
	}
	return counts, nil
}
