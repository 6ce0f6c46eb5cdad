package repositories

import (
	"context"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// AssignmentReader defines read operations for user-location assignments
type AssignmentReader interface {
	// ListAssignmentsByUserID retrieves all assignments for the user, each
	// carrying a LocationRef for its location, in creation order.
	ListAssignmentsByUserID(ctx context.Context, userID string) ([]domain.UserLocation, error)

	// FindAssignment retrieves the assignment linking a user to a location,
	// or apperrors.ErrNotFound when no such link exists.
	FindAssignment(ctx context.Context, userID string, locationID string) (*domain.UserLocation, error)
}

// AssignmentWriter defines write operations for user-location assignments.
// Assignment rows are only ever added or flag-flipped; none of these
// operations removes a row.
type AssignmentWriter interface {
	// SyncAssignments inserts any of the given assignments the user does not
	// already hold and, when primaryLocationID is set, moves the is_primary
	// flag to that location's row, all inside a single transaction. Rows the
	// user already holds are left untouched, their is_current flag included.
	SyncAssignments(ctx context.Context, userID string, assignments []domain.UserLocation, primaryLocationID *string) error

	// CreateCurrentAssignment inserts a new assignment and marks it the
	// user's current one in the same transaction, clearing is_current on
	// every other row first. A failed switch leaves no row behind.
	CreateCurrentAssignment(ctx context.Context, assignment domain.UserLocation) error

	// SetCurrentAssignment atomically clears is_current on every assignment of
	// the user and marks the given assignment as current. The whole operation
	// runs in one transaction so at most one row is ever current.
	SetCurrentAssignment(ctx context.Context, userID string, userLocationID string) error
}

// AssignmentRepositoryFacade combines all assignment-related repository interfaces
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
