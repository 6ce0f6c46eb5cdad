package domain

import "time"

// UserStatus defines the lifecycle state of a user account.
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a back-office user in the domain.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (e.g., UUID)
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash *string      `json:"-"` // Nil for OAuth-only users
	RoleID       string       `json:"roleID"`
	RoleName     string       `json:"roleName,omitempty"` // Joined from roles for session use
	Status       UserStatus   `json:"status"`
	IsTrashed    bool         `json:"isTrashed"`
	IsProtected  bool         `json:"isProtected"`
	AuthProvider AuthProvider `json:"authProvider"`
	LastSignInAt *time.Time   `json:"lastSignInAt,omitempty"`
	AuditFields

	// Refresh token bookkeeping; only the hash is ever stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
