package mocks

import (
	"context"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: predictable fake hash
	return "hashed_" + password, nil
}

// Verify compares a hash and a password
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: match against the fake hash scheme
	return hashedPassword == "hashed_"+password
}

// MockPasswordPolicy implements domain.PasswordPolicy for testing
type MockPasswordPolicy struct {
	ValidateFunc func(password string) error
}

// NewMockPasswordPolicy creates a new MockPasswordPolicy with default behaviors
func NewMockPasswordPolicy() *MockPasswordPolicy {
	return &MockPasswordPolicy{}
}

// Validate validates a candidate password
func (m *MockPasswordPolicy) Validate(password string) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(password)
	}
	// Default behavior: accept
	return nil
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(user *domain.User) (string, error)
	GenerateRefreshTokenFunc func(userID uint) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	AccessTTLSecondsFunc     func() int64
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken mints a fake access token
func (m *MockTokenService) GenerateAccessToken(user *domain.User) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user)
	}
	return "access_token", nil
}

// GenerateRefreshToken mints a fake refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID)
	}
	return "refresh_token", nil
}

// ValidateAccessToken validates a fake access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a fake refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// AccessTTLSeconds reports the fake access token lifetime
func (m *MockTokenService) AccessTTLSeconds() int64 {
	if m.AccessTTLSecondsFunc != nil {
		return m.AccessTTLSecondsFunc()
	}
	return 900
}

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendPasswordResetFunc func(userID uint, email, token string) error
	SendLockoutAlertFunc  func(email string) error

	// Recorded calls for assertions
	PasswordResets []string
	LockoutAlerts  []string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendPasswordReset records the reset delivery
func (m *MockNotificationService) SendPasswordReset(userID uint, email, token string) error {
	m.PasswordResets = append(m.PasswordResets, token)
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(userID, email, token)
	}
	return nil
}

// SendLockoutAlert records the lockout alert
func (m *MockNotificationService) SendLockoutAlert(email string) error {
	m.LockoutAlerts = append(m.LockoutAlerts, email)
	if m.SendLockoutAlertFunc != nil {
		return m.SendLockoutAlertFunc(email)
	}
	return nil
}

// MockAuditLogger implements domain.AuditLogger for testing
type MockAuditLogger struct {
	LogEventFunc func(ctx context.Context, event *domain.AuditEvent) error

	// Recorded events for assertions
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger with default behaviors
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	m.Events = append(m.Events, event)
	if m.LogEventFunc != nil {
		return m.LogEventFunc(ctx, event)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.PasswordService     = (*MockPasswordService)(nil)
	_ domain.PasswordPolicy      = (*MockPasswordPolicy)(nil)
	_ domain.TokenService        = (*MockTokenService)(nil)
	_ domain.NotificationService = (*MockNotificationService)(nil)
	_ domain.AuditLogger         = (*MockAuditLogger)(nil)
)
