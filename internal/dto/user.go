package dto

import (
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a new user.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   string `json:"roleId" binding:"required"`
	// LocationIDs are the locations the user gets assigned to on creation.
	LocationIDs []string `json:"locationIds"`
	// PrimaryLocationID must be one of LocationIDs when set.
	PrimaryLocationID *string `json:"primaryLocationId"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name   *string            `json:"name"`
	RoleID *string            `json:"roleId"`
	Status *domain.UserStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	// LocationIDs, when non-nil, grows the user's assignment set to cover
	// these locations. Existing assignments are kept as they are.
	LocationIDs *[]string `json:"locationIds"`
	// PrimaryLocationID, when set, becomes the user's only primary location.
	PrimaryLocationID *string `json:"primaryLocationId"`
}

// RegisterUserRequest defines the data for self-registration.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string              `json:"userID"`
	Email         string              `json:"email"`
	Name          string              `json:"name"`
	RoleID        string              `json:"roleId"`
	RoleName      string              `json:"roleName,omitempty"`
	Status        domain.UserStatus   `json:"status"`
	AuthProvider  domain.AuthProvider `json:"authProvider"`
	IsProtected   bool                `json:"isProtected"`
	LastSignInAt  *time.Time          `json:"lastSignInAt,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Email:         user.Email,
		Name:          user.Name,
		RoleID:        user.RoleID,
		RoleName:      user.RoleName,
		Status:        user.Status,
		AuthProvider:  user.AuthProvider,
		IsProtected:   user.IsProtected,
		LastSignInAt:  user.LastSignInAt,
		CreatedAt:     user.CreatedAt,
		LastUpdatedAt: user.LastUpdatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
