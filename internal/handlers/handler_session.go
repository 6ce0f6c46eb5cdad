package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
	"github.com/tablekit/resto_backoffice_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// sessionHandler handles HTTP requests for the authenticated session.
type sessionHandler struct {
	sessionService  portssvc.SessionSvcFacade
	locationService portssvc.LocationReaderSvc
}

func newSessionHandler(ss portssvc.SessionSvcFacade, ls portssvc.LocationReaderSvc) *sessionHandler {
	return &sessionHandler{
		sessionService:  ss,
		locationService: ls,
	}
}

// RegisterSessionRoutes registers all session-related routes.
func RegisterSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade, locationService portssvc.LocationReaderSvc) {
	h := newSessionHandler(sessionService, locationService)

	session := rg.Group("/session")
	{
		session.GET("", h.getSession)
		session.GET("/locations", h.listSessionLocations)
		session.PATCH("/current-location", h.setCurrentLocation)
	}
}

// getSession godoc
// @Summary Get the current session
// @Description Returns the authenticated user's profile, role, location assignments and resolved current location.
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User no longer exists"
// @Security BearerAuth
// @Router /session [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sess, err := h.sessionService.GetSession(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build session", slog.String("error", err.Error()), slog.String("user_id", userID))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(sess))
}

// listSessionLocations godoc
// @Summary List locations visible to the session
// @Description Returns the page of locations the session may see. Corporate roles see all locations; other roles only the locations they are assigned to.
// @Tags session
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(20)
// @Param query query string false "Case-insensitive name search"
// @Param sort query string false "Sort field (name, createdAt, updatedAt)" default(name)
// @Param dir query string false "Sort direction (asc, desc)" default(asc)
// @Success 200 {object} dto.ListLocationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /session/locations [get]
func (h *sessionHandler) listSessionLocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListLocationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	sess, err := h.sessionService.GetSession(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build session for location listing", slog.String("error", err.Error()), slog.String("user_id", userID))
		respondWithError(c, err)
		return
	}

	locations, total, err := h.locationService.ListVisibleLocations(c.Request.Context(), sess, params)
	if err != nil {
		logger.Error("Failed to list visible locations", slog.String("error", err.Error()), slog.String("user_id", userID))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListLocationsResponse(locations, total, params.Page, params.Limit))
}

// setCurrentLocation godoc
// @Summary Switch the session's current location
// @Description Makes the given location the user's current one, creating an assignment when none exists, and returns the refreshed session.
// @Tags session
// @Accept json
// @Produce json
// @Param body body dto.SetCurrentLocationRequest true "Target location"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse "Missing location ID or user has no role"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Location not found"
// @Security BearerAuth
// @Router /session/current-location [patch]
func (h *sessionHandler) setCurrentLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SetCurrentLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "locationId is required"})
		return
	}

	sess, err := h.sessionService.SetCurrentLocation(c.Request.Context(), userID, req.LocationID)
	if err != nil {
		logger.Error("Failed to set current location",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.String("location_id", req.LocationID))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(sess))
}
