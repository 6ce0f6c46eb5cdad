package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
	"github.com/tablekit/resto_backoffice_app/internal/handlers"
	"github.com/tablekit/resto_backoffice_app/internal/platform/config"
	"github.com/tablekit/resto_backoffice_app/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) MarkLastSignIn(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
	cfg              *config.Config
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "rbo-test",
		RefreshTokenExpiryDuration: 168 * time.Hour,
		RefreshTokenCookieName:     "rtid",
		RefreshTokenCookiePath:     "/api/v1/auth",
	}

	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)

	services := &portssvc.ServiceContainer{
		User:         suite.mockUserService,
		TokenService: suite.mockTokenService,
	}
	handlers.RegisterAuthRoutes(suite.router, suite.cfg, services)
}

func activeUser(userID string) *domain.User {
	return &domain.User{
		UserID:       userID,
		Email:        "user@example.com",
		Name:         "Test User",
		RoleID:       uuid.NewString(),
		Status:       domain.StatusActive,
		AuthProvider: domain.ProviderLocal,
	}
}

// expectTokenIssuance wires the mocks that back a successful token issue for
// the given user: lookup, both token generations and the hash persistence.
func (suite *AuthHandlerTestSuite) expectTokenIssuance(user *domain.User, rawRefreshToken string) {
	refreshExpiry := time.Now().Add(suite.cfg.RefreshTokenExpiryDuration)
	suite.mockUserService.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).Return("access-token", time.Now().Add(time.Hour), nil).Once()
	suite.mockTokenService.On("GenerateRefreshToken", mock.Anything, user).Return(rawRefreshToken, refreshExpiry, nil).Once()
	suite.mockUserService.On("UpdateRefreshToken", mock.Anything, user.UserID, utils.HashRefreshToken(rawRefreshToken), refreshExpiry).Return(nil).Once()
}

// refreshCookie digs the rtid cookie out of a recorded response.
func (suite *AuthHandlerTestSuite) refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	res := w.Result()
	defer res.Body.Close()
	for _, ck := range res.Cookies() {
		if ck.Name == suite.cfg.RefreshTokenCookieName {
			return ck
		}
	}
	return nil
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := activeUser(uuid.NewString())

	suite.mockUserService.On("AuthenticateUser", mock.Anything, user.Email, "correct-password").Return(user, nil).Once()
	suite.expectTokenIssuance(user, "raw-refresh-token")

	payload, _ := json.Marshal(dto.LoginRequest{Email: user.Email, Password: "correct-password"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.LoginResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("access-token", body.Token)

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie, "refresh token cookie should be set")
	suite.True(cookie.HttpOnly)
	suite.Equal(suite.cfg.RefreshTokenCookiePath, cookie.Path)
	suite.True(strings.HasPrefix(cookie.Value, user.UserID+"."), "cookie should carry the user id")

	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "user@example.com", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("invalid credentials")).Once()

	payload, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Nil(suite.refreshCookie(w))
	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken")
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	user := activeUser(uuid.NewString())

	suite.mockUserService.On("RegisterUser", mock.Anything, mock.MatchedBy(func(req dto.RegisterUserRequest) bool {
		return req.Email == "new@example.com" && req.Name == "New User"
	})).Return(user, nil).Once()

	payload, _ := json.Marshal(dto.RegisterUserRequest{Email: "new@example.com", Name: "New User", Password: "long-enough-pw"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockUserService.On("RegisterUser", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("user with email dup@example.com already exists")).Once()

	payload, _ := json.Marshal(dto.RegisterUserRequest{Email: "dup@example.com", Name: "Dup", Password: "long-enough-pw"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_Success() {
	user := activeUser(uuid.NewString())

	suite.mockTokenService.On("ValidateAndParseRefreshToken", mock.Anything, user.UserID, "old-refresh-token").Return(user, nil).Once()
	suite.expectTokenIssuance(user, "new-refresh-token")

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: suite.cfg.RefreshTokenCookieName, Value: user.UserID + ".old-refresh-token"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.RefreshTokenResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("access-token", body.Token)

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.True(strings.HasSuffix(cookie.Value, ".new-refresh-token"), "refresh token should be rotated")

	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_MissingCookie() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "ValidateAndParseRefreshToken")
}

func (suite *AuthHandlerTestSuite) TestRefresh_ExpiredToken() {
	userID := uuid.NewString()

	suite.mockTokenService.On("ValidateAndParseRefreshToken", mock.Anything, userID, "stale-token").
		Return(nil, apperrors.ErrRefreshTokenExpired).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: suite.cfg.RefreshTokenCookieName, Value: userID + ".stale-token"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie, "expired cookie should be cleared")
	suite.Empty(cookie.Value)
}

func (suite *AuthHandlerTestSuite) TestLogout_ClearsStoredToken() {
	userID := uuid.NewString()

	suite.mockUserService.On("ClearRefreshToken", mock.Anything, userID).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: suite.cfg.RefreshTokenCookieName, Value: userID + ".whatever"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)

	suite.mockUserService.AssertExpectations(suite.T())
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
