package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	// UpdateLockout persists only the lockout bookkeeping fields.
	UpdateLockout(ctx context.Context, userID uint, failedAttempts int, lockedUntil *time.Time) error
}

// RefreshTokenRepository defines refresh token data access operations
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteByToken removes the row for the exact token string and reports
	// how many rows were removed. Rotation relies on this count: of two
	// concurrent refreshes of the same token, only one observes 1.
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteAllForUser(ctx context.Context, userID uint) (int64, error)
}

// PasswordResetRepository defines password reset token data access
// operations. Create replaces any prior token for the same user.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, password, name string, role Role) (*PublicUser, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID uint) (int64, error)
	GetUserByID(ctx context.Context, userID uint) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// PasswordPolicy validates candidate passwords. Validate returns nil for
// an acceptable password and an error wrapping ErrWeakPassword naming the
// first rule that failed otherwise.
type PasswordPolicy interface {
	Validate(password string) error
}

// TokenService defines token signing and verification operations. Access
// and refresh tokens are signed with distinct secrets so that compromise
// of one class cannot forge the other.
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	GenerateRefreshToken(userID uint) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	AccessTTLSeconds() int64
}

// NotificationService defines out-of-band delivery operations. The core
// only generates and persists tokens; delivery is this collaborator's job.
type NotificationService interface {
	SendPasswordReset(userID uint, email, token string) error
	SendLockoutAlert(email string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents verified JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
