package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
	"github.com/tablekit/resto_backoffice_app/internal/handlers"
	"github.com/tablekit/resto_backoffice_app/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) GetSession(ctx context.Context, userID string) (*domain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionService) SetCurrentLocation(ctx context.Context, userID string, locationID string) (*domain.Session, error) {
	args := m.Called(ctx, userID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionService) InvalidateSession(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock LocationReaderService ---
type MockLocationReaderService struct {
	mock.Mock
}

func (m *MockLocationReaderService) GetLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}
func (m *MockLocationReaderService) ListVisibleLocations(ctx context.Context, sess *domain.Session, params dto.ListLocationsParams) ([]domain.Location, int, error) {
	args := m.Called(ctx, sess, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Location), args.Int(1), args.Error(2)
}

var _ portssvc.LocationReaderSvc = (*MockLocationReaderService)(nil)

// --- Test Suite ---
type SessionHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockSessionService  *MockSessionService
	mockLocationService *MockLocationReaderService
	jwtSecret           string
}

func (suite *SessionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "rbo-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	_ = dto.RegisterCustomValidations()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSessionService = new(MockSessionService)
	suite.mockLocationService = new(MockLocationReaderService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterSessionRoutes(v1, suite.mockSessionService, suite.mockLocationService)
}

func testSession(userID, roleName string) *domain.Session {
	loc := &domain.LocationRef{LocationID: uuid.NewString(), Name: "Downtown"}
	return &domain.Session{
		UserID:   userID,
		Email:    "user@example.com",
		Name:     "Test User",
		RoleID:   uuid.NewString(),
		RoleName: roleName,
		Status:   domain.StatusActive,
		Assignments: []domain.UserLocation{
			{
				UserLocationID: uuid.NewString(),
				UserID:         userID,
				LocationID:     loc.LocationID,
				RoleID:         uuid.NewString(),
				IsPrimary:      true,
				IsCurrent:      true,
				CreatedAt:      time.Now(),
				Location:       loc,
			},
		},
		CurrentLocation: loc,
	}
}

// --- Test Cases ---

func (suite *SessionHandlerTestSuite) TestGetSession_Success() {
	userID := uuid.NewString()
	sess := testSession(userID, "Owner")

	suite.mockSessionService.On("GetSession", mock.Anything, userID).Return(sess, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.SessionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(userID, body.UserID)
	suite.True(body.IsCorporate, "Owner role should classify as corporate")
	suite.NotNil(body.CurrentLocation)
	suite.Equal(sess.CurrentLocation.LocationID, body.CurrentLocation.LocationID)

	suite.mockSessionService.AssertExpectations(suite.T())
}

func (suite *SessionHandlerTestSuite) TestGetSession_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/session", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSessionService.AssertNotCalled(suite.T(), "GetSession")
}

func (suite *SessionHandlerTestSuite) TestSetCurrentLocation_Success() {
	userID := uuid.NewString()
	sess := testSession(userID, "Staff")
	locationID := sess.CurrentLocation.LocationID

	suite.mockSessionService.On("SetCurrentLocation", mock.Anything, userID, locationID).Return(sess, nil).Once()

	payload, _ := json.Marshal(dto.SetCurrentLocationRequest{LocationID: locationID})
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/session/current-location", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.SessionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.IsCorporate)
	suite.Equal(locationID, body.CurrentLocation.LocationID)

	suite.mockSessionService.AssertExpectations(suite.T())
}

func (suite *SessionHandlerTestSuite) TestSetCurrentLocation_MissingLocationID() {
	userID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/session/current-location", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSessionService.AssertNotCalled(suite.T(), "SetCurrentLocation")
}

func (suite *SessionHandlerTestSuite) TestSetCurrentLocation_MissingRole() {
	userID := uuid.NewString()
	locationID := uuid.NewString()

	suite.mockSessionService.On("SetCurrentLocation", mock.Anything, userID, locationID).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "missing role for assignment", apperrors.ErrMissingRole)).Once()

	payload, _ := json.Marshal(dto.SetCurrentLocationRequest{LocationID: locationID})
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/session/current-location", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSessionService.AssertExpectations(suite.T())
}

func (suite *SessionHandlerTestSuite) TestSetCurrentLocation_LocationNotFound() {
	userID := uuid.NewString()
	locationID := uuid.NewString()

	suite.mockSessionService.On("SetCurrentLocation", mock.Anything, userID, locationID).
		Return(nil, apperrors.NewNotFoundError("location not found")).Once()

	payload, _ := json.Marshal(dto.SetCurrentLocationRequest{LocationID: locationID})
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/session/current-location", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSessionService.AssertExpectations(suite.T())
}

func (suite *SessionHandlerTestSuite) TestListSessionLocations_Success() {
	userID := uuid.NewString()
	sess := testSession(userID, "Staff")

	locations := []domain.Location{
		{LocationID: uuid.NewString(), Name: "Downtown"},
		{LocationID: uuid.NewString(), Name: "Uptown"},
	}

	suite.mockSessionService.On("GetSession", mock.Anything, userID).Return(sess, nil).Once()
	suite.mockLocationService.On("ListVisibleLocations",
		mock.Anything,
		sess,
		mock.MatchedBy(func(p dto.ListLocationsParams) bool {
			return p.Page == 2 && p.Limit == 10 && p.Query == "town" && p.Sort == "createdAt" && p.Dir == "desc"
		}),
	).Return(locations, 12, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/session/locations?page=2&limit=10&query=town&sort=createdAt&dir=desc", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListLocationsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Locations, 2)
	suite.Equal(12, body.Total)
	suite.Equal(2, body.Page)
	suite.Equal(10, body.Limit)

	suite.mockSessionService.AssertExpectations(suite.T())
	suite.mockLocationService.AssertExpectations(suite.T())
}

func (suite *SessionHandlerTestSuite) TestListSessionLocations_RejectsUnknownSortField() {
	userID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/session/locations?sort=password_hash", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLocationService.AssertNotCalled(suite.T(), "ListVisibleLocations")
}

func TestSessionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}
