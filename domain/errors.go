package domain

import "errors"

// Registration errors
var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrWeakPassword = errors.New("password does not meet policy requirements")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked carries no duration on purpose; the lockout window
	// must not be disclosed to callers.
	ErrAccountLocked = errors.New("account temporarily locked")
)

// Access token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Refresh token errors
var (
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)
