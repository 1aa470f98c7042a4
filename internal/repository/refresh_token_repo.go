package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"publicsquare/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type refreshTokenModel struct {
	ID                int64              `gorm:"column:id;primaryKey"`
	UserID            int64              `gorm:"column:user_id;not null;index"`
	User              userModel          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenHash         string             `gorm:"column:token_hash;size:64;not null;uniqueIndex"`
	ExpiresAt         time.Time          `gorm:"column:expires_at;not null;index"`
	Revoked           bool               `gorm:"column:revoked;not null"`
	ReplacedByTokenID *int64             `gorm:"column:replaced_by_token_id"`
	ReplacedBy        *refreshTokenModel `gorm:"foreignKey:ReplacedByTokenID;constraint:OnDelete:SET NULL"`
	DeviceInfo        *string            `gorm:"column:device_info;size:500"`
	IPAddress         *string            `gorm:"column:ip_address;size:64"`
	CreatedAt         time.Time          `gorm:"column:created_at"`
	UpdatedAt         time.Time          `gorm:"column:updated_at"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

func toDomainRefreshToken(m refreshTokenModel) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:           m.ID,
		UserID:       m.UserID,
		TokenHash:    m.TokenHash,
		ExpiresAt:    m.ExpiresAt,
		Revoked:      m.Revoked,
		ReplacedByID: m.ReplacedByTokenID,
		DeviceInfo:   m.DeviceInfo,
		IPAddress:    m.IPAddress,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// RefreshTokenRepository persists refresh tokens by hash. Raw tokens are
// hashed on the way in and are never written or returned.
type RefreshTokenRepository struct {
	db     *gorm.DB
	pepper string
}

func NewRefreshTokenRepository(db *gorm.DB, pepper string) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db, pepper: pepper}
}

// HashToken returns the hex SHA-256 of the peppered raw token.
func (r *RefreshTokenRepository) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw + r.pepper))
	return hex.EncodeToString(sum[:])
}

func (r *RefreshTokenRepository) Create(ctx context.Context, userID int64, raw string, expiresAt time.Time, deviceInfo, ipAddress *string) (*domain.RefreshToken, error) {
	m := refreshTokenModel{
		UserID:     userID,
		TokenHash:  r.HashToken(raw),
		ExpiresAt:  expiresAt.UTC(),
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainRefreshToken(m), nil
}

// FindByRawToken re-hashes raw and looks the record up through the unique hash index.
func (r *RefreshTokenRepository) FindByRawToken(ctx context.Context, raw string) (*domain.RefreshToken, error) {
	var m refreshTokenModel
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", r.HashToken(raw)).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainRefreshToken(m), nil
}

// Revoke marks the token revoked and optionally records its successor.
// Revoking an already revoked token succeeds; the result is false only when
// no such token exists.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64, replacedByID *int64) (bool, error) {
	updates := map[string]any{"revoked": true}
	if replacedByID != nil {
		updates["replaced_by_token_id"] = *replacedByID
	}
	res := r.db.WithContext(ctx).Model(&refreshTokenModel{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RevokeAllForUser revokes every still-active token of the user and returns
// how many rows changed.
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&refreshTokenModel{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	return res.RowsAffected, res.Error
}

// ListActiveForUser returns unrevoked, unexpired tokens, newest first.
func (r *RefreshTokenRepository) ListActiveForUser(ctx context.Context, userID int64, now time.Time) ([]domain.RefreshToken, error) {
	var rows []refreshTokenModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ? AND expires_at > ?", userID, false, now.UTC()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	tokens := make([]domain.RefreshToken, 0, len(rows))
	for _, m := range rows {
		tokens = append(tokens, *toDomainRefreshToken(m))
	}
	return tokens, nil
}

// CleanupExpired deletes tokens expired for longer than grace and revoked
// tokens untouched for longer than retention.
func (r *RefreshTokenRepository) CleanupExpired(ctx context.Context, now time.Time, grace, retention time.Duration) (int64, error) {
	now = now.UTC()
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now.Add(-grace)).
		Or("revoked = ? AND updated_at < ?", true, now.Add(-retention)).
		Delete(&refreshTokenModel{})
	return res.RowsAffected, res.Error
}
