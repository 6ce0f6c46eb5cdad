package dto

import (
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// SetCurrentLocationRequest selects the session's current location.
type SetCurrentLocationRequest struct {
	LocationID string `json:"locationId" binding:"required"`
}

// AssignmentResponse defines the data returned for a user-location assignment.
type AssignmentResponse struct {
	UserLocationID string               `json:"userLocationID"`
	LocationID     string               `json:"locationId"`
	RoleID         string               `json:"roleId"`
	IsPrimary      bool                 `json:"isPrimary"`
	IsCurrent      bool                 `json:"isCurrent"`
	CreatedAt      time.Time            `json:"createdAt"`
	Location       *LocationRefResponse `json:"location,omitempty"`
}

// SessionResponse defines the data returned for the authenticated session.
type SessionResponse struct {
	UserID          string               `json:"userID"`
	Email           string               `json:"email"`
	Name            string               `json:"name"`
	RoleID          string               `json:"roleId"`
	RoleName        string               `json:"roleName"`
	IsCorporate     bool                 `json:"isCorporate"`
	Status          domain.UserStatus    `json:"status"`
	Assignments     []AssignmentResponse `json:"assignments"`
	CurrentLocation *LocationRefResponse `json:"currentLocation"`
}

// ToSessionResponse converts a domain.Session to SessionResponse DTO
func ToSessionResponse(sess *domain.Session) SessionResponse {
	assignments := make([]AssignmentResponse, len(sess.Assignments))
	for i, a := range sess.Assignments {
		assignments[i] = AssignmentResponse{
			UserLocationID: a.UserLocationID,
			LocationID:     a.LocationID,
			RoleID:         a.RoleID,
			IsPrimary:      a.IsPrimary,
			IsCurrent:      a.IsCurrent,
			CreatedAt:      a.CreatedAt,
			Location:       ToLocationRefResponse(a.Location),
		}
	}
	return SessionResponse{
		UserID:          sess.UserID,
		Email:           sess.Email,
		Name:            sess.Name,
		RoleID:          sess.RoleID,
		RoleName:        sess.RoleName,
		IsCorporate:     sess.IsCorporate(),
		Status:          sess.Status,
		Assignments:     assignments,
		CurrentLocation: ToLocationRefResponse(sess.CurrentLocation),
	}
}
