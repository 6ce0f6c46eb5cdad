package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserTrashed(ctx context.Context, userID string, updatedBy string) error {
	args := m.Called(ctx, userID, updatedBy)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastSignIn(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock RoleRepository ---

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) FindDefaultRole(ctx context.Context) (*domain.Role, error) {
	args := m.Called(ctx)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) FindRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	var roles []domain.Role
	if args.Get(0) != nil {
		roles = args.Get(0).([]domain.Role)
	}
	return roles, args.Error(1)
}

// --- Mock LocationRepository ---

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	var location *domain.Location
	if args.Get(0) != nil {
		location = args.Get(0).(*domain.Location)
	}
	return location, args.Error(1)
}

func (m *MockLocationRepository) ListLocations(ctx context.Context, filter portsrepo.LocationFilter) ([]domain.Location, int, error) {
	args := m.Called(ctx, filter)
	var locations []domain.Location
	if args.Get(0) != nil {
		locations = args.Get(0).([]domain.Location)
	}
	return locations, args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) SetLocationTrashed(ctx context.Context, locationID string, trashed bool, updatedBy string) error {
	args := m.Called(ctx, locationID, trashed, updatedBy)
	return args.Error(0)
}

// --- Mock AssignmentRepository ---

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) ListAssignmentsByUserID(ctx context.Context, userID string) ([]domain.UserLocation, error) {
	args := m.Called(ctx, userID)
	var assignments []domain.UserLocation
	if args.Get(0) != nil {
		assignments = args.Get(0).([]domain.UserLocation)
	}
	return assignments, args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignment(ctx context.Context, userID string, locationID string) (*domain.UserLocation, error) {
	args := m.Called(ctx, userID, locationID)
	var assignment *domain.UserLocation
	if args.Get(0) != nil {
		assignment = args.Get(0).(*domain.UserLocation)
	}
	return assignment, args.Error(1)
}

func (m *MockAssignmentRepository) SyncAssignments(ctx context.Context, userID string, assignments []domain.UserLocation, primaryLocationID *string) error {
	args := m.Called(ctx, userID, assignments, primaryLocationID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) CreateCurrentAssignment(ctx context.Context, assignment domain.UserLocation) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) SetCurrentAssignment(ctx context.Context, userID string, userLocationID string) error {
	args := m.Called(ctx, userID, userLocationID)
	return args.Error(0)
}

// --- Mock AuditLogRepository ---

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListAuditLogs(ctx context.Context, before time.Time, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, before, limit)
	var logs []domain.AuditLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.AuditLog)
	}
	return logs, args.Error(1)
}

// --- Mock Audit writer service ---

type MockAuditWriter struct {
	mock.Mock
}

func (m *MockAuditWriter) Record(ctx context.Context, event domain.AuditEvent, userID, entityID, entityType, description, ipAddress string) {
	m.Called(ctx, event, userID, entityID, entityType, description, ipAddress)
}

// --- Mock Session writer service ---

type MockSessionWriter struct {
	mock.Mock
}

func (m *MockSessionWriter) SetCurrentLocation(ctx context.Context, userID string, locationID string) (*domain.Session, error) {
	args := m.Called(ctx, userID, locationID)
	var sess *domain.Session
	if args.Get(0) != nil {
		sess = args.Get(0).(*domain.Session)
	}
	return sess, args.Error(1)
}

func (m *MockSessionWriter) InvalidateSession(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
