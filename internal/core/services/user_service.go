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
	"github.com/tablekit/resto_backoffice_app/internal/utils"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo       portsrepo.UserRepositoryFacade
	roleRepo       portsrepo.RoleReader
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	sessionSvc     portssvc.SessionWriterSvc
	auditSvc       portssvc.AuditWriterSvc
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	roleRepo portsrepo.RoleReader,
	assignmentRepo portsrepo.AssignmentRepositoryFacade,
	sessionSvc portssvc.SessionWriterSvc,
	auditSvc portssvc.AuditWriterSvc,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		sessionSvc:     sessionSvc,
		auditSvc:       auditSvc,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requestingUserID string) (*domain.User, error) {
	if _, err := s.roleRepo.FindRoleByID(ctx, req.RoleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("role does not exist")
		}
		return nil, err
	}
	if req.PrimaryLocationID != nil && !containsString(req.LocationIDs, *req.PrimaryLocationID) {
		return nil, apperrors.NewValidationFailedError("primary location must be one of the assigned locations")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewInternalServerError("failed to hash password")
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hashedPassword,
		RoleID:       req.RoleID,
		Status:       domain.StatusActive,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	if err := s.syncAssignments(ctx, user.UserID, user.RoleID, req.LocationIDs, req.PrimaryLocationID); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEventCreate, requestingUserID, user.UserID, "user",
		"created user "+user.Email, "")

	return s.userRepo.FindUserByID(ctx, user.UserID)
}

// CreateOAuthUser provisions a user on first Google sign-in. The account gets
// the default role and no location assignments.
func (s *userService) CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	defaultRole, err := s.roleRepo.FindDefaultRole(ctx)
	if err != nil {
		s.LogError(ctx, err, "No default role configured for OAuth signup")
		return nil, apperrors.NewInternalServerError("no default role configured")
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        info.Email,
		Name:         info.Name,
		RoleID:       defaultRole.RoleID,
		Status:       domain.StatusActive,
		AuthProvider: domain.ProviderGoogle,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "oauth:google",
			LastUpdatedAt: now,
			LastUpdatedBy: "oauth:google",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save OAuth user")
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEventCreate, user.UserID, user.UserID, "user",
		"created user "+user.Email+" via google oauth", "")

	return s.userRepo.FindUserByID(ctx, user.UserID)
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	defaultRole, err := s.roleRepo.FindDefaultRole(ctx)
	if err != nil {
		s.LogError(ctx, err, "No default role configured for self-registration")
		return nil, apperrors.NewInternalServerError("no default role configured")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to hash password")
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hashed,
		RoleID:       defaultRole.RoleID,
		Status:       domain.StatusActive,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save self-registered user")
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEventCreate, user.UserID, user.UserID, "user",
		"registered user "+user.Email, "")

	return s.userRepo.FindUserByID(ctx, user.UserID)
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.RoleID != nil {
		if _, err := s.roleRepo.FindRoleByID(ctx, *req.RoleID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("role does not exist")
			}
			return nil, err
		}
		user.RoleID = *req.RoleID
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	if req.LocationIDs != nil {
		if err := s.syncAssignments(ctx, userID, user.RoleID, *req.LocationIDs, req.PrimaryLocationID); err != nil {
			return nil, err
		}
	} else if req.PrimaryLocationID != nil {
		if err := s.setPrimaryLocation(ctx, userID, user.RoleID, *req.PrimaryLocationID); err != nil {
			return nil, err
		}
	}

	// Role, status or assignment changes all invalidate the cached snapshot.
	if err := s.sessionSvc.InvalidateSession(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate session cache", slog.String("user_id", userID))
	}

	s.auditSvc.Record(ctx, domain.AuditEventUpdate, requestingUserID, userID, "user",
		"updated user "+user.Email, "")

	return s.userRepo.FindUserByID(ctx, userID)
}

// syncAssignments grows the user's assignment set to cover the given
// locations and moves the primary flag when requested. Rows the user already
// holds are never deleted or rewritten, so the current-location selection
// survives a profile edit. The repository applies the whole set in one
// transaction.
func (s *userService) syncAssignments(ctx context.Context, userID, roleID string, locationIDs []string, primaryLocationID *string) error {
	if primaryLocationID != nil && !containsString(locationIDs, *primaryLocationID) {
		return apperrors.NewValidationFailedError("primary location must be one of the assigned locations")
	}

	now := time.Now()
	assignments := make([]domain.UserLocation, 0, len(locationIDs))
	for _, locationID := range locationIDs {
		assignments = append(assignments, domain.UserLocation{
			UserLocationID: uuid.NewString(),
			UserID:         userID,
			LocationID:     locationID,
			RoleID:         roleID,
			CreatedAt:      now,
		})
	}
	return s.assignmentRepo.SyncAssignments(ctx, userID, assignments, primaryLocationID)
}

// setPrimaryLocation marks one location primary, creating the assignment if
// the user does not hold it yet. The repository clears every other primary
// flag in the same transaction.
func (s *userService) setPrimaryLocation(ctx context.Context, userID, roleID, locationID string) error {
	return s.syncAssignments(ctx, userID, roleID, []string{locationID}, &locationID)
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *userService) MarkLastSignIn(ctx context.Context, userID string) error {
	return s.userRepo.UpdateLastSignIn(ctx, userID, time.Now())
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsProtected {
		return apperrors.NewForbiddenError("protected users cannot be deleted")
	}

	if err := s.userRepo.MarkUserTrashed(ctx, userID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to trash user", slog.String("user_id", userID))
		return err
	}

	if err := s.sessionSvc.InvalidateSession(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate session cache", slog.String("user_id", userID))
	}

	s.auditSvc.Record(ctx, domain.AuditEventTrash, requestingUserID, userID, "user",
		"trashed user "+user.Email, "")
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}
	if user.Status != domain.StatusActive {
		return nil, apperrors.NewUnauthorizedError("account is inactive")
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	if err := s.MarkLastSignIn(ctx, user.UserID); err != nil {
		s.LogError(ctx, err, "Failed to record last sign in", slog.String("user_id", user.UserID))
	}
	return user, nil
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
