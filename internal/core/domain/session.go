package domain

// Session is the server-side snapshot of an authenticated user's identity and
// location scope. It is built once from storage when a session is first seen,
// cached, and invalidated by the session synchronizer after any write that
// changes the user's assignments or current location.
type Session struct {
	UserID          string         `json:"userID"`
	Email           string         `json:"email"`
	Name            string         `json:"name"`
	RoleID          string         `json:"roleID"`
	RoleName        string         `json:"roleName"`
	Status          UserStatus     `json:"status"`
	Assignments     []UserLocation `json:"assignments"`
	CurrentLocation *LocationRef   `json:"currentLocation,omitempty"`
}

// IsCorporate reports whether this session has organization-wide scope.
func (s *Session) IsCorporate() bool {
	return IsCorporateRoleName(s.RoleName)
}
