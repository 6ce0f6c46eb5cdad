package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/core/services"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockUserRepo       *MockUserRepository
	mockAssignmentRepo *MockAssignmentRepository
	mockLocationRepo   *MockLocationRepository
	mockAudit          *MockAuditWriter
	service            portssvc.SessionSvcFacade
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAssignmentRepo = new(MockAssignmentRepository)
	suite.mockLocationRepo = new(MockLocationRepository)
	suite.mockAudit = new(MockAuditWriter)
	suite.service = services.NewSessionService(
		suite.mockUserRepo,
		suite.mockAssignmentRepo,
		suite.mockLocationRepo,
		suite.mockAudit,
		nil, // no cache in unit tests
		0,
	)
}

func testUser(userID string) *domain.User {
	return &domain.User{
		UserID:   userID,
		Email:    "manager@example.com",
		Name:     "Manager",
		RoleID:   "role-1",
		RoleName: "Shift Manager",
		Status:   domain.StatusActive,
	}
}

func assignment(userID, locationID, name string, primary, current bool) domain.UserLocation {
	return domain.UserLocation{
		UserLocationID: uuid.NewString(),
		UserID:         userID,
		LocationID:     locationID,
		RoleID:         "role-1",
		IsPrimary:      primary,
		IsCurrent:      current,
		Location:       &domain.LocationRef{LocationID: locationID, Name: name},
	}
}

func (suite *SessionServiceTestSuite) TestGetSession_CurrentFlagWins() {
	ctx := context.Background()
	userID := uuid.NewString()
	assignments := []domain.UserLocation{
		assignment(userID, "loc-primary", "Primary Branch", true, false),
		assignment(userID, "loc-current", "Current Branch", false, true),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(testUser(userID), nil).Once()
	suite.mockAssignmentRepo.On("ListAssignmentsByUserID", ctx, userID).Return(assignments, nil).Once()

	sess, err := suite.service.GetSession(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sess.CurrentLocation)
	suite.Equal("loc-current", sess.CurrentLocation.LocationID)
	suite.Len(sess.Assignments, 2)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestGetSession_PrimaryFallback() {
	ctx := context.Background()
	userID := uuid.NewString()
	assignments := []domain.UserLocation{
		assignment(userID, "loc-a", "Branch A", false, false),
		assignment(userID, "loc-primary", "Primary Branch", true, false),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(testUser(userID), nil).Once()
	suite.mockAssignmentRepo.On("ListAssignmentsByUserID", ctx, userID).Return(assignments, nil).Once()

	sess, err := suite.service.GetSession(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sess.CurrentLocation)
	suite.Equal("loc-primary", sess.CurrentLocation.LocationID)
}

func (suite *SessionServiceTestSuite) TestGetSession_NoAssignments() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(testUser(userID), nil).Once()
	suite.mockAssignmentRepo.On("ListAssignmentsByUserID", ctx, userID).Return([]domain.UserLocation{}, nil).Once()

	sess, err := suite.service.GetSession(ctx, userID)

	suite.Require().NoError(err)
	suite.Nil(sess.CurrentLocation)
	suite.Empty(sess.Assignments)
}

func (suite *SessionServiceTestSuite) TestGetSession_UserNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	sess, err := suite.service.GetSession(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(sess)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SessionServiceTestSuite) TestSetCurrentLocation_ExistingAssignment() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := assignment(userID, "loc-b", "Branch B", false, false)
	location := &domain.Location{LocationID: "loc-b", Name: "Branch B"}

	suite.mockLocationRepo.On("FindLocationByID", ctx, "loc-b").Return(location, nil).Once()
	suite.mockAssignmentRepo.On("FindAssignment", ctx, userID, "loc-b").Return(&existing, nil).Once()
	suite.mockAssignmentRepo.On("SetCurrentAssignment", ctx, userID, existing.UserLocationID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.AuditEventUpdate, userID, "loc-b", "user_location", mock.Anything, "").Once()

	// Session rebuild after the switch
	refreshed := existing
	refreshed.IsCurrent = true
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(testUser(userID), nil)
	suite.mockAssignmentRepo.On("ListAssignmentsByUserID", ctx, userID).Return([]domain.UserLocation{refreshed}, nil)

	sess, err := suite.service.SetCurrentLocation(ctx, userID, "loc-b")

	suite.Require().NoError(err)
	suite.Require().NotNil(sess.CurrentLocation)
	suite.Equal("loc-b", sess.CurrentLocation.LocationID)
	suite.mockAssignmentRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestSetCurrentLocation_CreatesMissingAssignment() {
	ctx := context.Background()
	userID := uuid.NewString()
	location := &domain.Location{LocationID: "loc-new", Name: "New Branch"}

	suite.mockLocationRepo.On("FindLocationByID", ctx, "loc-new").Return(location, nil).Once()
	suite.mockAssignmentRepo.On("FindAssignment", ctx, userID, "loc-new").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(testUser(userID), nil)

	// The created assignment carries the user's role and is flipped to
	// current inside the repository transaction.
	suite.mockAssignmentRepo.On("CreateCurrentAssignment", ctx, mock.MatchedBy(func(a domain.UserLocation) bool {
		return a.UserID == userID && a.LocationID == "loc-new" && a.RoleID == "role-1" && !a.IsPrimary && !a.IsCurrent
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.AuditEventUpdate, userID, "loc-new", "user_location", mock.Anything, "").Once()

	created := assignment(userID, "loc-new", "New Branch", false, true)
	suite.mockAssignmentRepo.On("ListAssignmentsByUserID", ctx, userID).Return([]domain.UserLocation{created}, nil)

	sess, err := suite.service.SetCurrentLocation(ctx, userID, "loc-new")

	suite.Require().NoError(err)
	suite.Require().NotNil(sess.CurrentLocation)
	suite.Equal("loc-new", sess.CurrentLocation.LocationID)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "SetCurrentAssignment", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAssignmentRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestSetCurrentLocation_CreateFailurePropagates() {
	ctx := context.Background()
	userID := uuid.NewString()
	location := &domain.Location{LocationID: "loc-new", Name: "New Branch"}

	suite.mockLocationRepo.On("FindLocationByID", ctx, "loc-new").Return(location, nil).Once()
	suite.mockAssignmentRepo.On("FindAssignment", ctx, userID, "loc-new").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(testUser(userID), nil).Once()
	suite.mockAssignmentRepo.On("CreateCurrentAssignment", ctx, mock.AnythingOfType("domain.UserLocation")).
		Return(apperrors.NewInternalServerError("insert failed")).Once()

	sess, err := suite.service.SetCurrentLocation(ctx, userID, "loc-new")

	suite.Require().Error(err)
	suite.Nil(sess)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestSetCurrentLocation_MissingRoleRefused() {
	ctx := context.Background()
	userID := uuid.NewString()
	location := &domain.Location{LocationID: "loc-x", Name: "Branch X"}
	rolelessUser := testUser(userID)
	rolelessUser.RoleID = ""

	suite.mockLocationRepo.On("FindLocationByID", ctx, "loc-x").Return(location, nil).Once()
	suite.mockAssignmentRepo.On("FindAssignment", ctx, userID, "loc-x").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(rolelessUser, nil).Once()

	sess, err := suite.service.SetCurrentLocation(ctx, userID, "loc-x")

	suite.Require().Error(err)
	suite.Nil(sess)
	suite.ErrorIs(err, apperrors.ErrMissingRole)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "CreateCurrentAssignment", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestSetCurrentLocation_TrashedLocationRefused() {
	ctx := context.Background()
	userID := uuid.NewString()
	location := &domain.Location{LocationID: "loc-t", Name: "Closed Branch", IsTrashed: true}

	suite.mockLocationRepo.On("FindLocationByID", ctx, "loc-t").Return(location, nil).Once()

	sess, err := suite.service.SetCurrentLocation(ctx, userID, "loc-t")

	suite.Require().Error(err)
	suite.Nil(sess)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SessionServiceTestSuite) TestSetCurrentLocation_LocationNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockLocationRepo.On("FindLocationByID", ctx, "loc-missing").Return(nil, apperrors.ErrNotFound).Once()

	sess, err := suite.service.SetCurrentLocation(ctx, userID, "loc-missing")

	suite.Require().Error(err)
	suite.Nil(sess)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
