package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
)

const sessionCacheKeyPrefix = "session:"

// sessionService implements the SessionSvcFacade interface.
// It builds the session snapshot (profile, assignments, resolved current
// location) and keeps a short-lived copy in Redis. Every write that can
// change the snapshot invalidates the cached copy before returning.
type sessionService struct {
	BaseService
	userRepo       portsrepo.UserReader
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	locationRepo   portsrepo.LocationReader
	auditSvc       portssvc.AuditWriterSvc
	cache          *redis.Client
	cacheTTL       time.Duration
}

// NewSessionService creates a new session service. The cache client may be
// nil, in which case every read goes to the database.
func NewSessionService(
	userRepo portsrepo.UserReader,
	assignmentRepo portsrepo.AssignmentRepositoryFacade,
	locationRepo portsrepo.LocationReader,
	auditSvc portssvc.AuditWriterSvc,
	cache *redis.Client,
	cacheTTL time.Duration,
) portssvc.SessionSvcFacade {
	return &sessionService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		locationRepo:   locationRepo,
		auditSvc:       auditSvc,
		cache:          cache,
		cacheTTL:       cacheTTL,
	}
}

// Ensure sessionService implements the SessionSvcFacade interface
var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) GetSession(ctx context.Context, userID string) (*domain.Session, error) {
	if cached := s.readCachedSession(ctx, userID); cached != nil {
		return cached, nil
	}

	sess, err := s.buildSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.writeCachedSession(ctx, sess)
	return sess, nil
}

// buildSession assembles the snapshot from the database. The current
// location is resolved exactly once here; readers reuse the stored result
// instead of re-deriving it on every request.
func (s *sessionService) buildSession(ctx context.Context, userID string) (*domain.Session, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load user for session", slog.String("user_id", userID))
		}
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListAssignmentsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load assignments for session", slog.String("user_id", userID))
		return nil, err
	}

	sess := &domain.Session{
		UserID:          user.UserID,
		Email:           user.Email,
		Name:            user.Name,
		RoleID:          user.RoleID,
		RoleName:        user.RoleName,
		Status:          user.Status,
		Assignments:     assignments,
		CurrentLocation: domain.SelectCurrentLocation(assignments),
	}
	return sess, nil
}

// SetCurrentLocation switches the user's working location. When the user has
// no assignment for the target location one is created on the fly, carrying
// the user's role. The clear-then-set runs in one repository transaction so
// at most one assignment is ever current.
func (s *sessionService) SetCurrentLocation(ctx context.Context, userID string, locationID string) (*domain.Session, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location.IsTrashed {
		return nil, apperrors.NewValidationFailedError("cannot select a trashed location")
	}

	assignment, err := s.assignmentRepo.FindAssignment(ctx, userID, locationID)
	switch {
	case err == nil:
		err = s.assignmentRepo.SetCurrentAssignment(ctx, userID, assignment.UserLocationID)
	case errors.Is(err, apperrors.ErrNotFound):
		err = s.assignAsCurrent(ctx, userID, locationID)
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrMissingRole) {
			s.LogError(ctx, err, "Failed to set current assignment",
				slog.String("user_id", userID),
				slog.String("location_id", locationID))
		}
		return nil, err
	}

	if err := s.InvalidateSession(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate session cache", slog.String("user_id", userID))
	}

	s.auditSvc.Record(ctx, domain.AuditEventUpdate, userID, locationID, "user_location",
		"switched current location to "+location.Name, "")

	return s.GetSession(ctx, userID)
}

// assignAsCurrent creates the missing assignment used by a current location
// switch and marks it current in one repository transaction, so a failed
// switch leaves no stray row behind. The user's role is required; without
// one the switch is refused rather than creating a roleless assignment.
func (s *sessionService) assignAsCurrent(ctx context.Context, userID string, locationID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.RoleID == "" {
		return apperrors.NewAppError(400, "missing role for assignment", apperrors.ErrMissingRole)
	}

	assignment := domain.UserLocation{
		UserLocationID: uuid.NewString(),
		UserID:         userID,
		LocationID:     locationID,
		RoleID:         user.RoleID,
		IsPrimary:      false,
		IsCurrent:      false, // flipped by the exclusive set inside the transaction
		CreatedAt:      time.Now(),
	}
	return s.assignmentRepo.CreateCurrentAssignment(ctx, assignment)
}

func (s *sessionService) InvalidateSession(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, sessionCacheKeyPrefix+userID).Err()
}

func (s *sessionService) readCachedSession(ctx context.Context, userID string) *domain.Session {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, sessionCacheKeyPrefix+userID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.LogDebug(ctx, "Session cache read failed", slog.String("error", err.Error()))
		}
		return nil
	}
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		// Corrupt entry, drop it so the next read repopulates.
		_ = s.cache.Del(ctx, sessionCacheKeyPrefix+userID).Err()
		return nil
	}
	return &sess
}

func (s *sessionService) writeCachedSession(ctx context.Context, sess *domain.Session) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, sessionCacheKeyPrefix+sess.UserID, payload, s.cacheTTL).Err(); err != nil {
		s.LogDebug(ctx, "Session cache write failed", slog.String("error", err.Error()))
	}
}
