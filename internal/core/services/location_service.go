package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
)

// maxParentChainDepth bounds the ancestor walk during cycle detection.
const maxParentChainDepth = 50

// locationService implements the LocationSvcFacade interface
type locationService struct {
	BaseService
	locationRepo portsrepo.LocationRepositoryFacade
	auditSvc     portssvc.AuditWriterSvc
}

// NewLocationService creates a new location service with the provided dependencies
func NewLocationService(
	locationRepo portsrepo.LocationRepositoryFacade,
	auditSvc portssvc.AuditWriterSvc,
) portssvc.LocationSvcFacade {
	return &locationService{
		locationRepo: locationRepo,
		auditSvc:     auditSvc,
	}
}

// Ensure locationService implements the LocationSvcFacade interface
var _ portssvc.LocationSvcFacade = (*locationService)(nil)

func (s *locationService) GetLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find location by ID", slog.String("location_id", locationID))
		}
		return nil, err
	}
	return location, nil
}

// ListVisibleLocations applies the session's visibility scope before listing.
// Corporate sessions get an unrestricted filter; everyone else only sees
// locations they hold an assignment for.
func (s *locationService) ListVisibleLocations(ctx context.Context, sess *domain.Session, params dto.ListLocationsParams) ([]domain.Location, int, error) {
	if sess == nil {
		return nil, 0, apperrors.NewUnauthorizedError("no session")
	}

	filter := portsrepo.LocationFilter{
		Query:     params.Query,
		SortField: params.Sort,
		SortDesc:  params.Dir == "desc",
		Limit:     params.Limit,
		Offset:    params.Offset(),
	}
	if !sess.IsCorporate() {
		filter.AssignedUserID = sess.UserID
	}

	locations, total, err := s.locationRepo.ListLocations(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list locations", slog.String("user_id", sess.UserID))
		return nil, 0, err
	}
	if locations == nil {
		locations = []domain.Location{}
	}

	s.LogDebug(ctx, "Locations listed successfully",
		slog.Int("count", len(locations)),
		slog.Int("total", total),
		slog.Bool("corporate_scope", sess.IsCorporate()))
	return locations, total, nil
}

func (s *locationService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest, requestingUserID string) (*domain.Location, error) {
	if req.ParentID != nil {
		if _, err := s.locationRepo.FindLocationByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("parent location does not exist")
			}
			return nil, err
		}
	}

	now := time.Now()
	location := domain.Location{
		LocationID: uuid.NewString(),
		Name:       req.Name,
		ParentID:   req.ParentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.locationRepo.SaveLocation(ctx, location); err != nil {
		s.LogError(ctx, err, "Failed to save location", slog.String("location_id", location.LocationID))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEventCreate, requestingUserID, location.LocationID, "location",
		"created location "+location.Name, "")

	return s.locationRepo.FindLocationByID(ctx, location.LocationID)
}

func (s *locationService) UpdateLocation(ctx context.Context, locationID string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Location, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.ClearParent {
		location.ParentID = nil
	} else if req.ParentID != nil {
		if err := s.validateParentChange(ctx, locationID, *req.ParentID); err != nil {
			return nil, err
		}
		location.ParentID = req.ParentID
	}

	location.LastUpdatedAt = time.Now()
	location.LastUpdatedBy = requestingUserID

	if err := s.locationRepo.UpdateLocation(ctx, *location); err != nil {
		s.LogError(ctx, err, "Failed to update location", slog.String("location_id", locationID))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEventUpdate, requestingUserID, locationID, "location",
		"updated location "+location.Name, "")

	return s.locationRepo.FindLocationByID(ctx, locationID)
}

// validateParentChange rejects a parent that is the location itself or any
// of its descendants, which would cut a cycle into the hierarchy.
func (s *locationService) validateParentChange(ctx context.Context, locationID, newParentID string) error {
	if newParentID == locationID {
		return apperrors.NewValidationFailedError("location cannot be its own parent")
	}

	ancestorID := newParentID
	for depth := 0; depth < maxParentChainDepth; depth++ {
		ancestor, err := s.locationRepo.FindLocationByID(ctx, ancestorID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("parent location does not exist")
			}
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		if *ancestor.ParentID == locationID {
			return apperrors.NewValidationFailedError("parent change would create a cycle in the location hierarchy")
		}
		ancestorID = *ancestor.ParentID
	}
	return apperrors.NewValidationFailedError("location hierarchy too deep")
}

func (s *locationService) DeleteLocation(ctx context.Context, locationID string, requestingUserID string) error {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return err
	}
	if location.IsProtected {
		return apperrors.NewForbiddenError("protected locations cannot be deleted")
	}

	if err := s.locationRepo.SetLocationTrashed(ctx, locationID, true, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to trash location", slog.String("location_id", locationID))
		return err
	}

	s.auditSvc.Record(ctx, domain.AuditEventTrash, requestingUserID, locationID, "location",
		"trashed location "+location.Name, "")
	return nil
}

func (s *locationService) RestoreLocation(ctx context.Context, locationID string, requestingUserID string) error {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return err
	}
	if !location.IsTrashed {
		return apperrors.NewValidationFailedError("location is not trashed")
	}

	if err := s.locationRepo.SetLocationTrashed(ctx, locationID, false, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to restore location", slog.String("location_id", locationID))
		return err
	}

	s.auditSvc.Record(ctx, domain.AuditEventRestore, requestingUserID, locationID, "location",
		"restored location "+location.Name, "")
	return nil
}
