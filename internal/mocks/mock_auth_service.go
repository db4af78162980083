package mocks

import (
	"context"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicUser, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, refreshToken string) error
	LogoutAllFunc      func(ctx context.Context, userID uint) (int64, error)
	GetUserByIDFunc    func(ctx context.Context, userID uint) (*domain.User, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, token, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new account
func (m *MockAuthService) Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicUser, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, name, role)
	}
	// Default behavior: echo the input back
	return &domain.PublicUser{ID: 1, Email: email, Name: name, Role: role}, nil
}

// Login authenticates credentials
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: reject
	return nil, domain.ErrInvalidCredentials
}

// Refresh rotates a refresh token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	// Default behavior: reject
	return nil, domain.ErrRefreshTokenInvalid
}

// Logout revokes a refresh token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	// Default behavior: success
	return nil
}

// LogoutAll revokes every refresh token of a user
func (m *MockAuthService) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	// Default behavior: nothing revoked
	return 0, nil
}

// GetUserByID loads a user
func (m *MockAuthService) GetUserByID(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// ForgotPassword starts the reset flow
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ResetPassword completes the reset flow
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
