package repository

import (
	"context"
	"time"

	"publicsquare/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type clubModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;size:255;not null;index"`
	Description *string   `gorm:"column:description;size:1000"`
	Topic       *string   `gorm:"column:topic;size:255;index"`
	CreatedBy   int64     `gorm:"column:created_by;not null"`
	Creator     userModel `gorm:"foreignKey:CreatedBy"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	MaxMembers  *int      `gorm:"column:max_members"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (clubModel) TableName() string { return "clubs" }

type clubMemberModel struct {
	UserID   int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	User     userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ClubID   int64     `gorm:"column:club_id;primaryKey;autoIncrement:false"`
	Club     clubModel `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
	JoinDate time.Time `gorm:"column:join_date;autoCreateTime"`
	Role     string    `gorm:"column:role;size:50;not null"`
}

func (clubMemberModel) TableName() string { return "user_clubs" }

func toDomainClub(m clubModel) *domain.Club {
	return &domain.Club{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Topic:       m.Topic,
		CreatedBy:   m.CreatedBy,
		IsActive:    m.IsActive,
		MaxMembers:  m.MaxMembers,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toClubModel(c *domain.Club) clubModel {
	return clubModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Topic:       c.Topic,
		CreatedBy:   c.CreatedBy,
		IsActive:    c.IsActive,
		MaxMembers:  c.MaxMembers,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toDomainClubMember(m clubMemberModel) domain.ClubMember {
	return domain.ClubMember{
		UserID:   m.UserID,
		ClubID:   m.ClubID,
		JoinDate: m.JoinDate,
		Role:     domain.ClubRole(m.Role),
	}
}

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create stores the club and enrols its creator as owner.
func (r *ClubRepository) Create(ctx context.Context, c *domain.Club) error {
	m := toClubModel(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return err
		}
		owner := clubMemberModel{UserID: m.CreatedBy, ClubID: m.ID, Role: string(domain.ClubRoleOwner)}
		return tx.Omit(clause.Associations).Create(&owner).Error
	})
	if err != nil {
		return translate(err)
	}
	*c = *toDomainClub(m)
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*domain.Club, error) {
	var m clubModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainClub(m), nil
}

func (r *ClubRepository) List(ctx context.Context, skip, limit int) ([]domain.Club, error) {
	var rows []clubModel
	err := r.db.WithContext(ctx).
		Scopes(paginate(skip, limit)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	clubs := make([]domain.Club, 0, len(rows))
	for _, m := range rows {
		clubs = append(clubs, *toDomainClub(m))
	}
	return clubs, nil
}

func (r *ClubRepository) Update(ctx context.Context, c *domain.Club) error {
	m := toClubModel(c)
	res := r.db.WithContext(ctx).Model(&m).
		Select("name", "description", "topic", "is_active", "max_members", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// Delete removes the club and all of its memberships.
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_id = ?", id).Delete(&clubMemberModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&clubModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID int64, role domain.ClubRole) (*domain.ClubMember, error) {
	m := clubMemberModel{UserID: userID, ClubID: clubID, Role: string(role)}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return nil, translate(err)
	}
	member := toDomainClubMember(m)
	return &member, nil
}

func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&clubMemberModel{})
	return res.RowsAffected > 0, res.Error
}

func (r *ClubRepository) GetMember(ctx context.Context, clubID, userID int64) (*domain.ClubMember, error) {
	var m clubMemberModel
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	member := toDomainClubMember(m)
	return &member, nil
}

func (r *ClubRepository) ListMembers(ctx context.Context, clubID int64) ([]domain.ClubMember, error) {
	var rows []clubMemberModel
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("join_date").
		Order("user_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	members := make([]domain.ClubMember, 0, len(rows))
	for _, m := range rows {
		members = append(members, toDomainClubMember(m))
	}
	return members, nil
}

func (r *ClubRepository) CountMembers(ctx context.Context, clubID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&clubMemberModel{}).
		Where("club_id = ?", clubID).
		Count(&count).Error
	return count, err
}

// ClubIDsForUser returns the ids of every club the user belongs to.
func (r *ClubRepository) ClubIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&clubMemberModel{}).
		Where("user_id = ?", userID).
		Pluck("club_id", &ids).Error
	return ids, err
}
