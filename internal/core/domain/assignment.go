package domain

import "time"

// UserLocation is the assignment join entity linking one user to one location.
// Rows are created lazily on first assignment and never deleted by this logic,
// only flag-flipped. For any user at most one row has IsPrimary set and at
// most one row has IsCurrent set; the assignment repository's clear-before-set
// transaction enforces both.
type UserLocation struct {
	UserLocationID string    `json:"userLocationID"` // Primary Key (e.g., UUID)
	UserID         string    `json:"userID"`
	LocationID     string    `json:"locationID"`
	RoleID         string    `json:"roleID"`
	IsPrimary      bool      `json:"isPrimary"`
	IsCurrent      bool      `json:"isCurrent"`
	CreatedAt      time.Time `json:"createdAt"`

	// Populated when the assignment is read joined with its location.
	Location *LocationRef `json:"location,omitempty" db:"-"`
}

// SelectCurrentLocation picks the active location out of a user's assignments:
// the explicit current one if set, else the primary, else none. Callers compute
// this once per session snapshot and keep the result until an explicit write
// replaces it; it is never re-derived from a background refetch unless still nil.
func SelectCurrentLocation(assignments []UserLocation) *LocationRef {
	for i := range assignments {
		if assignments[i].IsCurrent {
			return assignments[i].Location
		}
	}
	for i := range assignments {
		if assignments[i].IsPrimary {
			return assignments[i].Location
		}
	}
	return nil
}
