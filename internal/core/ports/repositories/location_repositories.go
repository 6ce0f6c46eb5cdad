package repositories

import (
	"context"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// LocationFilter describes the combined predicate for listing locations.
// All set fields are ANDed together.
type LocationFilter struct {
	// AssignedUserID, when non-empty, restricts results to locations the user
	// has an assignment for. Empty means no scope restriction (corporate).
	AssignedUserID string

	// Query applies a case-insensitive substring match on the location name.
	Query string

	// SortField is a whitelisted column (default "name"); SortDesc flips the order.
	SortField string
	SortDesc  bool

	IncludeTrashed bool

	Limit  int
	Offset int
}

// LocationReader defines read operations for location data
type LocationReader interface {
	// FindLocationByID retrieves a location with its parent and children refs.
	FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error)

	// ListLocations retrieves a filtered page of locations plus the total count
	// under the same filter.
	ListLocations(ctx context.Context, filter LocationFilter) ([]domain.Location, int, error)
}

// LocationWriter defines write operations for location data
type LocationWriter interface {
	// SaveLocation persists a new location.
	SaveLocation(ctx context.Context, location domain.Location) error

	// UpdateLocation updates a location's name and parent.
	UpdateLocation(ctx context.Context, location domain.Location) error

	// SetLocationTrashed flips the soft-delete flag. Locations are never
	// physically removed by this logic. Protected locations are never affected.
	SetLocationTrashed(ctx context.Context, locationID string, trashed bool, updatedBy string) error
}

// LocationRepositoryFacade combines all location-related repository interfaces
type LocationRepositoryFacade interface {
	LocationReader
	LocationWriter
}
