package services

import (
	"context"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// SessionReaderSvc defines read operations for the authenticated session
type SessionReaderSvc interface {
	// GetSession builds the session view for a user: profile, role,
	// location assignments and the resolved current location.
	GetSession(ctx context.Context, userID string) (*domain.Session, error)
}

// SessionWriterSvc defines operations that mutate session-scoped state
type SessionWriterSvc interface {
	// SetCurrentLocation makes the given location the user's current one,
	// creating an assignment when none exists, and returns the refreshed
	// session.
	SetCurrentLocation(ctx context.Context, userID string, locationID string) (*domain.Session, error)

	// InvalidateSession drops any cached session state for the user so the
	// next read rebuilds it from the database.
	InvalidateSession(ctx context.Context, userID string) error
}

// SessionSvcFacade combines all session-related service interfaces
type SessionSvcFacade interface {
	SessionReaderSvc
	SessionWriterSvc
}
