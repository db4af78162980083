package mocks

import (
	"context"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	CreateFunc           func(ctx context.Context, token *domain.RefreshToken) error
	FindByTokenFunc      func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByTokenFunc    func(ctx context.Context, token string) (int64, error)
	DeleteAllForUserFunc func(ctx context.Context, userID uint) (int64, error)
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

// Create persists a refresh token row
func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// FindByToken finds a refresh token row by token string
func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrRefreshTokenInvalid
}

// DeleteByToken removes a refresh token row
func (m *MockRefreshTokenRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	if m.DeleteByTokenFunc != nil {
		return m.DeleteByTokenFunc(ctx, token)
	}
	// Default behavior: one row removed
	return 1, nil
}

// DeleteAllForUser removes all refresh token rows of a user
func (m *MockRefreshTokenRepository) DeleteAllForUser(ctx context.Context, userID uint) (int64, error) {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	// Default behavior: nothing to remove
	return 0, nil
}

// MockPasswordResetRepository implements domain.PasswordResetRepository for testing
type MockPasswordResetRepository struct {
	CreateFunc           func(ctx context.Context, token *domain.PasswordResetToken) error
	FindByTokenFunc      func(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	DeleteByTokenFunc    func(ctx context.Context, token string) error
	DeleteAllForUserFunc func(ctx context.Context, userID uint) error
}

// NewMockPasswordResetRepository creates a new MockPasswordResetRepository with default behaviors
func NewMockPasswordResetRepository() *MockPasswordResetRepository {
	return &MockPasswordResetRepository{}
}

// Create persists a reset token row
func (m *MockPasswordResetRepository) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// FindByToken finds a reset token row by token string
func (m *MockPasswordResetRepository) FindByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrResetTokenInvalid
}

// DeleteByToken removes a reset token row
func (m *MockPasswordResetRepository) DeleteByToken(ctx context.Context, token string) error {
	if m.DeleteByTokenFunc != nil {
		return m.DeleteByTokenFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// DeleteAllForUser removes all reset token rows of a user
func (m *MockPasswordResetRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.RefreshTokenRepository  = (*MockRefreshTokenRepository)(nil)
	_ domain.PasswordResetRepository = (*MockPasswordResetRepository)(nil)
)
