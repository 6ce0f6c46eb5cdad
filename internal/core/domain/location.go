package domain

// Location is a hierarchical entity: a restaurant branch with an optional
// parent and any number of children. Locations are only ever soft-deleted
// by flipping IsTrashed.
type Location struct {
	LocationID  string  `json:"locationID"` // Primary Key (e.g., UUID)
	Name        string  `json:"name"`
	ParentID    *string `json:"parentID,omitempty"` // Nil for top-level locations
	IsTrashed   bool    `json:"isTrashed"`
	IsProtected bool    `json:"isProtected"`
	AuditFields

	// Populated on detail reads; not loaded for list queries.
	Parent   *LocationRef  `json:"parent,omitempty" db:"-"`
	Children []LocationRef `json:"children,omitempty" db:"-"`
}

// LocationRef is a lightweight id+name reference used for parent/children
// links and session snapshots.
type LocationRef struct {
	LocationID string `json:"locationID"`
	Name       string `json:"name"`
}
