package services

import (
	"context"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
)

// LocationReaderSvc defines read operations for location data
type LocationReaderSvc interface {
	// GetLocationByID retrieves a specific location by its ID.
	GetLocationByID(ctx context.Context, locationID string) (*domain.Location, error)

	// ListVisibleLocations retrieves the page of locations the session is
	// allowed to see. Corporate sessions see every location; others only the
	// locations they are assigned to. The second return value is the total
	// count under the same scope and search filter.
	ListVisibleLocations(ctx context.Context, sess *domain.Session, params dto.ListLocationsParams) ([]domain.Location, int, error)
}

// LocationWriterSvc defines write operations for location data
type LocationWriterSvc interface {
	// CreateLocation persists a new location.
	CreateLocation(ctx context.Context, req dto.CreateLocationRequest, requestingUserID string) (*domain.Location, error)

	// UpdateLocation updates a location's name and parent. A parent change
	// that would make the location its own ancestor is rejected.
	UpdateLocation(ctx context.Context, locationID string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Location, error)
}

// LocationLifecycleSvc defines operations for managing location lifecycle
type LocationLifecycleSvc interface {
	// DeleteLocation marks a location as trashed (soft delete).
	// Protected locations are refused.
	DeleteLocation(ctx context.Context, locationID string, requestingUserID string) error

	// RestoreLocation clears the trashed flag.
	RestoreLocation(ctx context.Context, locationID string, requestingUserID string) error
}

// LocationSvcFacade combines all location-related service interfaces
type LocationSvcFacade interface {
	LocationReaderSvc
	LocationWriterSvc
	LocationLifecycleSvc
}
