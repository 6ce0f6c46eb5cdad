package repositories

import (
	"context"
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a non-trashed user by id, with the role name joined in.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a non-trashed user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a page of non-trashed users ordered by creation time.
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates a user's profile fields (name, status, role).
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkUserTrashed soft-deletes a user: is_trashed=true, status INACTIVE.
	// Protected users are never affected.
	MarkUserTrashed(ctx context.Context, userID string, updatedBy string) error

	// UpdateLastSignIn records a successful sign-in.
	UpdateLastSignIn(ctx context.Context, userID string, at time.Time) error

	// UpdateRefreshToken stores the hash and expiry of a newly issued refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error

	// ClearRefreshToken removes any stored refresh token for the user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
