package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                  uint   `gorm:"primaryKey"`
	Email               string `gorm:"uniqueIndex;size:255"`
	Name                string `gorm:"size:255"`
	PasswordHash        string `gorm:"column:password"`
	Role                string `gorm:"index;size:64"`
	FailedLoginAttempts int    `gorm:"not null;default:0"`
	LockedUntil         *time.Time
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. A unique-index violation on the
// email column is reported as ErrEmailTaken so a duplicate-registration
// race loses cleanly instead of surfacing a raw store error.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// UpdateLockout implements domain.UserRepository. Only the bookkeeping
// columns move so a concurrent login cannot clobber unrelated fields.
func (r *UserRepositoryImpl) UpdateLockout(ctx context.Context, userID uint, failedAttempts int, lockedUntil *time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_login_attempts": failedAttempts,
		"locked_until":          lockedUntil,
	}).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                  user.ID,
		Email:               user.Email,
		Name:                user.Name,
		PasswordHash:        user.PasswordHash,
		Role:                string(user.Role),
		FailedLoginAttempts: user.FailedLoginAttempts,
		LockedUntil:         user.LockedUntil,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                  dbUser.ID,
		Email:               dbUser.Email,
		Name:                dbUser.Name,
		PasswordHash:        dbUser.PasswordHash,
		Role:                domain.Role(dbUser.Role),
		FailedLoginAttempts: dbUser.FailedLoginAttempts,
		LockedUntil:         dbUser.LockedUntil,
		CreatedAt:           dbUser.CreatedAt,
		UpdatedAt:           dbUser.UpdatedAt,
	}
}
