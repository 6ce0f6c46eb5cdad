package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
	"github.com/tablekit/resto_backoffice_app/internal/middleware"
	"github.com/tablekit/resto_backoffice_app/internal/platform/config"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles Google OAuth related requests. It supports the
// redirect flow (login + callback) and a verify-id-token flow for SPAs that
// obtain the ID token client-side.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService, cfg)

	googleRoutes := rg.Group("/api/v1/auth/google")
	{
		googleRoutes.GET("/login", h.LoginGoogle)
		googleRoutes.GET("/callback", h.CallbackGoogle)
		googleRoutes.POST("/verify-id-token", h.VerifyIDToken)
	}
}

// LoginGoogle godoc
// @Summary Start Google OAuth login
// @Description Redirects the browser to Google's consent screen. A CSRF state cookie is set for the callback to verify.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	// State cookie lives just long enough to complete the round trip.
	c.SetCookie(oauthStateCookieName, state, 600, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Verifies the state cookie, exchanges the authorization code, creates or retrieves the user and redirects to the frontend with an access token. The refresh token is set as an HTTPOnly cookie.
// @Tags oauth
// @Success 307
// @Failure 400 {object} ErrorResponse "State mismatch or invalid code"
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(c.Request.Context(), idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	accessToken, err := h.signInFromIDTokenPayload(c, payload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	redirectURL := h.cfg.FrontendBaseURL + "/auth/callback#token=" + url.QueryEscape(accessToken)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// VerifyIDToken godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google ID token obtained client-side, creates or retrieves the user and returns an application JWT. The refresh token is set as an HTTPOnly cookie.
// @Tags oauth
// @Accept json
// @Produce json
// @Param body body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Router /auth/google/verify-id-token [post]
func (h *GoogleOAuthHandler) VerifyIDToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "idToken is required"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	accessToken, err := h.signInFromIDTokenPayload(c, payload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken})
}

// signInFromIDTokenPayload resolves the user behind a validated Google ID
// token, creating one with the default role on first sign-in, and issues the
// application tokens.
func (h *GoogleOAuthHandler) signInFromIDTokenPayload(c *gin.Context, payload *idtoken.Payload) (string, error) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		return "", apperrors.NewUnauthorizedError("essential claims missing from Google token")
	}
	if !emailVerified {
		return "", apperrors.NewUnauthorizedError("Google account email is not verified")
	}

	user, err := h.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		user, err = h.userService.CreateOAuthUser(ctx, domain.GoogleUserInfo{
			ID:            payload.Subject,
			Email:         email,
			VerifiedEmail: emailVerified,
			Name:          name,
		})
		if err != nil {
			return "", err
		}
		logger.Info("Created user via Google OAuth", slog.String("user_id", user.UserID))
	}

	if user.Status != domain.StatusActive {
		return "", apperrors.NewUnauthorizedError("account is inactive")
	}

	if err := h.userService.MarkLastSignIn(ctx, user.UserID); err != nil {
		logger.Warn("Failed to record last sign-in", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
	}

	return issueSessionTokens(c, h.cfg, h.userService, h.tokenService, user.UserID)
}
