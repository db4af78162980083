package domain

import "time"

// Role is the closed set of roles a user can hold. Any authorization
// boundary consuming a Role must handle all four values.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleSupervisor     Role = "supervisor"
	RoleProductionLead Role = "production_lead"
	RoleViewer         Role = "viewer"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleProductionLead, RoleViewer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole maps a raw string onto the role enumeration. Unknown or empty
// input falls back to viewer, the least privileged role.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return RoleViewer
	}
	return r
}

// User represents an account in the system. FailedLoginAttempts and
// LockedUntil are the lockout bookkeeping fields; both are reset on any
// successful login or password reset.
type User struct {
	ID                  uint
	Email               string
	Name                string
	PasswordHash        string
	Role                Role
	FailedLoginAttempts int
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Locked reports whether the account is inside an active lockout window.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// PublicUser is the projection of a User returned to clients. The password
// hash never leaves the domain layer.
type PublicUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken is a persisted, single-use refresh credential. ExpiresAt is
// computed independently of the JWT's own exp claim; both are checked on
// refresh.
type RefreshToken struct {
	ID        uint
	UserID    uint
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetToken is a persisted, time-boxed reset credential. At most
// one live token exists per user.
type PasswordResetToken struct {
	UserID    uint      `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult represents a successful authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}
