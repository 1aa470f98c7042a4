package repository

import (
	"context"
	"strings"
	"time"

	"publicsquare/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Username  string    `gorm:"column:username;size:255;not null;uniqueIndex"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	FullName  *string   `gorm:"column:full_name;size:255"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type credentialModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	UserID            int64      `gorm:"column:user_id;not null;uniqueIndex"`
	User              userModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Email             string     `gorm:"column:email;size:255;not null;uniqueIndex"`
	Password          string     `gorm:"column:password;size:255;not null"`
	OldPassword       *string    `gorm:"column:old_password;size:255"`
	PasswordChangedAt *time.Time `gorm:"column:password_changed_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (credentialModel) TableName() string { return "user_security" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		FullName:  m.FullName,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:        u.ID,
		Username:  strings.TrimSpace(u.Username),
		Email:     normalizeEmail(u.Email),
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDomainCredential(m credentialModel) *domain.Credential {
	return &domain.Credential{
		ID:                m.ID,
		UserID:            m.UserID,
		Email:             m.Email,
		PasswordHash:      m.Password,
		OldPasswordHash:   m.OldPassword,
		PasswordChangedAt: m.PasswordChangedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores the user together with its credential row in one transaction.
func (r *UserRepository) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	m := toUserModel(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		changedAt := time.Now().UTC()
		cred := credentialModel{
			UserID:            m.ID,
			Email:             m.Email,
			Password:          passwordHash,
			PasswordChangedAt: &changedAt,
		}
		return tx.Omit(clause.Associations).Create(&cred).Error
	})
	if err != nil {
		return translate(err)
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetCredentialByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var m credentialModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainCredential(m), nil
}

// ExistsByUsername reports whether another user (not excludeID) holds the username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("username = ? AND id <> ?", strings.TrimSpace(username), excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether another user (not excludeID) holds the email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("email = ? AND id <> ?", normalizeEmail(email), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Scopes(paginate(skip, limit)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

// Update writes the mutable profile fields and keeps the credential email in sync.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&m).
			Select("username", "email", "full_name", "is_active", "updated_at").
			Updates(&m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&credentialModel{}).
			Where("user_id = ?", m.ID).
			Update("email", m.Email).Error
	})
	if err != nil {
		return translate(err)
	}
	return r.reload(ctx, u)
}

func (r *UserRepository) reload(ctx context.Context, u *domain.User) error {
	fresh, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	*u = *fresh
	return nil
}
