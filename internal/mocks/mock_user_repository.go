package mocks

import (
	"context"
	"time"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc        func(ctx context.Context, user *domain.User) error
	UpdateLockoutFunc func(ctx context.Context, userID uint, failedAttempts int, lockedUntil *time.Time) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// UpdateLockout updates the lockout bookkeeping fields
func (m *MockUserRepository) UpdateLockout(ctx context.Context, userID uint, failedAttempts int, lockedUntil *time.Time) error {
	if m.UpdateLockoutFunc != nil {
		return m.UpdateLockoutFunc(ctx, userID, failedAttempts, lockedUntil)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
