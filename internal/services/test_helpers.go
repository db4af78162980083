package services

import (
	"testing"
	"time"

	"github.com/LindembergOli/producao-imac-sub000/domain"
	"github.com/LindembergOli/producao-imac-sub000/internal/mocks"
)

// authServiceMocks bundles every collaborator of the auth service so tests
// can override just the behaviors they care about.
type authServiceMocks struct {
	UserRepo     *mocks.MockUserRepository
	RefreshRepo  *mocks.MockRefreshTokenRepository
	ResetRepo    *mocks.MockPasswordResetRepository
	PasswordSvc  *mocks.MockPasswordService
	Policy       *mocks.MockPasswordPolicy
	TokenSvc     *mocks.MockTokenService
	Notification *mocks.MockNotificationService
	Audit        *mocks.MockAuditLogger
}

func newAuthServiceForTest(t *testing.T, cfg AuthConfig) (domain.AuthService, *authServiceMocks) {
	t.Helper()

	m := &authServiceMocks{
		UserRepo:     mocks.NewMockUserRepository(),
		RefreshRepo:  mocks.NewMockRefreshTokenRepository(),
		ResetRepo:    mocks.NewMockPasswordResetRepository(),
		PasswordSvc:  mocks.NewMockPasswordService(),
		Policy:       mocks.NewMockPasswordPolicy(),
		TokenSvc:     mocks.NewMockTokenService(),
		Notification: mocks.NewMockNotificationService(),
		Audit:        mocks.NewMockAuditLogger(),
	}

	svc := NewAuthService(
		m.UserRepo,
		m.RefreshRepo,
		m.ResetRepo,
		m.PasswordSvc,
		m.Policy,
		m.TokenSvc,
		m.Notification,
		m.Audit,
		cfg,
	)
	return svc, m
}

// createValidUser returns a user with no lockout history.
func createValidUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:           1,
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "hashed_Str0ng!Pass",
		Role:         domain.RoleProductionLead,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
	}
}
