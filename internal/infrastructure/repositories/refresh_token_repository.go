package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using GORM
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the database model for RefreshToken
type DBRefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;size:512;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	dbToken := &DBRefreshToken{
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.ID = dbToken.ID
	token.CreatedAt = dbToken.CreatedAt
	return nil
}

// FindByToken implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbToken).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, err
	}
	return &domain.RefreshToken{
		ID:        dbToken.ID,
		UserID:    dbToken.UserID,
		Token:     dbToken.Token,
		ExpiresAt: dbToken.ExpiresAt,
		CreatedAt: dbToken.CreatedAt,
	}, nil
}

// DeleteByToken implements domain.RefreshTokenRepository. The affected-row
// count is the rotation guard: when two refreshes race on one token, the
// row delete decides the winner.
func (r *RefreshTokenRepositoryImpl) DeleteByToken(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&DBRefreshToken{})
	return res.RowsAffected, res.Error
}

// DeleteAllForUser implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) DeleteAllForUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBRefreshToken{})
	return res.RowsAffected, res.Error
}
