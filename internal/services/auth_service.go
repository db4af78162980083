package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// AuthConfig carries the tunables of the session lifecycle.
type AuthConfig struct {
	MaxFailedLogins int
	LockoutDuration time.Duration
	RefreshTTL      time.Duration
	ResetTokenTTL   time.Duration
	ResetTokenBytes int
}

// AuthServiceImpl implements domain.AuthService. It is stateless between
// calls: lockout counters and token rows live only in the stores, and
// every operation re-reads them, so concurrent requests against the same
// account observe durable state rather than a process-local cache.
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	refreshRepo     domain.RefreshTokenRepository
	resetRepo       domain.PasswordResetRepository
	passwordSvc     domain.PasswordService
	passwordPolicy  domain.PasswordPolicy
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	auditLogger     domain.AuditLogger
	cfg             AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	refreshRepo domain.RefreshTokenRepository,
	resetRepo domain.PasswordResetRepository,
	passwordSvc domain.PasswordService,
	passwordPolicy domain.PasswordPolicy,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	auditLogger domain.AuditLogger,
	cfg AuthConfig,
) domain.AuthService {
	if cfg.MaxFailedLogins <= 0 {
		cfg.MaxFailedLogins = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	if cfg.ResetTokenBytes < 32 {
		cfg.ResetTokenBytes = 32
	}
	return &AuthServiceImpl{
		userRepo:        userRepo,
		refreshRepo:     refreshRepo,
		resetRepo:       resetRepo,
		passwordSvc:     passwordSvc,
		passwordPolicy:  passwordPolicy,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		auditLogger:     auditLogger,
		cfg:             cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// audit hands an event to the sink. The sink is informed, not consulted:
// its outcome never reaches the caller.
func (s *AuthServiceImpl) audit(ctx context.Context, event *domain.AuditEvent) {
	if s.auditLogger != nil {
		_ = s.auditLogger.LogEvent(ctx, event)
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicUser, error) {
	if err := s.passwordPolicy.Validate(password); err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		// A store outage must not read as "email free".
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if !role.Valid() {
		role = domain.RoleViewer
	}

	user := &domain.User{
		Email:               email,
		Name:                name,
		PasswordHash:        hashedPassword,
		Role:                role,
		FailedLoginAttempts: 0,
		LockedUntil:         nil,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations of one email: the loser of the
		// insert race gets the same answer as a plain duplicate.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(user.Email).
		WithMetadata("role", string(user.Role)))

	return user.Public(), nil
}

// Login implements domain.AuthService.
//
// The failed-attempt increment is a read-modify-write without a store
// transaction; two concurrent wrong-password attempts may under-count by
// one. Accepted weakening: the lockout still engages on the next failure.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Same failure as a wrong password; account existence is not disclosed.
		s.audit(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
			WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if user.Locked(now) {
		s.audit(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(user.Email).WithError(domain.ErrAccountLocked))
		return nil, domain.ErrAccountLocked
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		attempts := user.FailedLoginAttempts + 1
		if attempts >= s.cfg.MaxFailedLogins {
			until := now.Add(s.cfg.LockoutDuration)
			if err := s.userRepo.UpdateLockout(ctx, user.ID, attempts, &until); err != nil {
				return nil, fmt.Errorf("failed to persist lockout: %w", err)
			}
			s.audit(ctx, domain.NewAuditEvent(domain.AccountLockedEvent, user.ID).
				WithEmail(user.Email).WithError(domain.ErrAccountLocked))
			if s.notificationSvc != nil {
				_ = s.notificationSvc.SendLockoutAlert(user.Email)
			}
			return nil, domain.ErrAccountLocked
		}
		if err := s.userRepo.UpdateLockout(ctx, user.ID, attempts, nil); err != nil {
			return nil, fmt.Errorf("failed to persist failed attempt: %w", err)
		}
		s.audit(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(user.Email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	// Successful login always clears the lockout bookkeeping.
	if err := s.userRepo.UpdateLockout(ctx, user.ID, 0, nil); err != nil {
		return nil, fmt.Errorf("failed to reset lockout: %w", err)
	}
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil

	accessToken, refreshToken, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(user.Email))

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.tokenSvc.AccessTTLSeconds(),
	}, nil
}

// issueTokenPair mints a new access/refresh pair and persists the refresh
// row. The row's expiry is computed here, independently of the JWT's own
// exp claim; both are checked on refresh.
func (s *AuthServiceImpl) issueTokenPair(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	row := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTTL),
	}
	if err := s.refreshRepo.Create(ctx, row); err != nil {
		return "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// Refresh implements domain.AuthService. The presented token is single-use:
// its row is deleted before the new pair is issued, and the delete's
// affected-row count decides the winner of two concurrent refreshes.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	row, err := s.refreshRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if err == domain.ErrRefreshTokenInvalid {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if row.ExpiresAt.Before(time.Now()) {
		_, _ = s.refreshRepo.DeleteByToken(ctx, refreshToken)
		return nil, domain.ErrRefreshTokenExpired
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil || claims.UserID != row.UserID {
		_, _ = s.refreshRepo.DeleteByToken(ctx, refreshToken)
		return nil, domain.ErrRefreshTokenInvalid
	}

	deleted, err := s.refreshRepo.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if deleted == 0 {
		// A concurrent refresh won the rotation.
		return nil, domain.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, row.UserID)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	accessToken, newRefreshToken, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, user.ID).WithEmail(user.Email))

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    s.tokenSvc.AccessTTLSeconds(),
	}, nil
}

// Logout implements domain.AuthService. A missing token is a successful
// no-op: a client without a stored token must still be able to log out
// locally. Deleting an already-deleted token is equally fine.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}

	var userID uint
	if row, err := s.refreshRepo.FindByToken(ctx, refreshToken); err == nil {
		userID = row.UserID
	}

	if _, err := s.refreshRepo.DeleteByToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.audit(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, userID))
	return nil
}

// LogoutAll implements domain.AuthService. The count is returned for
// observability; zero matches is a success.
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	count, err := s.refreshRepo.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	s.audit(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, userID).
		WithMetadata("revoked", count))
	return count, nil
}

// GetUserByID implements domain.AuthService
func (s *AuthServiceImpl) GetUserByID(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ForgotPassword implements domain.AuthService. An unknown email succeeds
// silently with the same response shape as a known one, so the operation
// discloses nothing about account existence.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := generateResetToken(s.cfg.ResetTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := time.Now()
	row := &domain.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
		CreatedAt: now,
	}
	if err := s.resetRepo.Create(ctx, row); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	if s.notificationSvc != nil {
		if err := s.notificationSvc.SendPasswordReset(user.ID, user.Email, token); err != nil {
			// Delivery failure must not change the response shape.
			s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetRequestEvent, user.ID).
				WithEmail(user.Email).WithError(err))
			return nil
		}
	}

	s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetRequestEvent, user.ID).WithEmail(user.Email))
	return nil
}

// ResetPassword implements domain.AuthService. A completed reset clears
// the lockout bookkeeping, consumes the reset token, and revokes every
// refresh token of the user so all existing sessions must re-authenticate.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := s.passwordPolicy.Validate(newPassword); err != nil {
		return err
	}

	row, err := s.resetRepo.FindByToken(ctx, token)
	if err != nil {
		if err == domain.ErrResetTokenInvalid || err == domain.ErrResetTokenExpired {
			return err
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, row.UserID)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.resetRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	if _, err := s.refreshRepo.DeleteAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetCompleteEvent, user.ID).WithEmail(user.Email))
	return nil
}

// generateResetToken returns n bytes of hex-encoded entropy from
// crypto/rand.
func generateResetToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
