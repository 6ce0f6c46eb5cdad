package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
	"github.com/tablekit/resto_backoffice_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// locationHandler handles HTTP requests related to locations.
type locationHandler struct {
	locationService portssvc.LocationSvcFacade
}

func newLocationHandler(ls portssvc.LocationSvcFacade) *locationHandler {
	return &locationHandler{
		locationService: ls,
	}
}

// registerLocationRoutes registers all location management routes.
// Listing lives under /session/locations because it is scoped to the caller.
func registerLocationRoutes(rg *gin.RouterGroup, locationService portssvc.LocationSvcFacade) {
	h := newLocationHandler(locationService)

	locations := rg.Group("/locations")
	{
		locations.POST("", h.createLocation)
		locations.GET("/:id", h.getLocation)
		locations.PUT("/:id", h.updateLocation)
		locations.DELETE("/:id", h.deleteLocation)
		locations.POST("/:id/restore", h.restoreLocation)
	}
}

// createLocation godoc
// @Summary Create a new location
// @Description Creates a new location, optionally under a parent.
// @Tags locations
// @Accept json
// @Produce json
// @Param location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unknown parent"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations [post]
func (h *locationHandler) createLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.locationService.CreateLocation(c.Request.Context(), req, userID)
	if err != nil {
		logger.Error("Failed to create location", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLocationResponse(created))
}

// getLocation godoc
// @Summary Get a location by ID
// @Description Returns the location with its parent and children references.
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [get]
func (h *locationHandler) getLocation(c *gin.Context) {
	locationID := c.Param("id")

	location, err := h.locationService.GetLocationByID(c.Request.Context(), locationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// updateLocation godoc
// @Summary Update a location
// @Description Updates a location's name or parent. Moving a location under one of its own descendants is rejected.
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param location body dto.UpdateLocationRequest true "Fields to update"
// @Success 200 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse "Invalid input or cyclic parent change"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [put]
func (h *locationHandler) updateLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	locationID := c.Param("id")
	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.locationService.UpdateLocation(c.Request.Context(), locationID, req, userID)
	if err != nil {
		logger.Error("Failed to update location", slog.String("error", err.Error()), slog.String("location_id", locationID))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(updated))
}

// deleteLocation godoc
// @Summary Delete a location
// @Description Marks a location as trashed. Protected locations are refused.
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Location is protected"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [delete]
func (h *locationHandler) deleteLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	locationID := c.Param("id")
	if err := h.locationService.DeleteLocation(c.Request.Context(), locationID, userID); err != nil {
		logger.Error("Failed to delete location", slog.String("error", err.Error()), slog.String("location_id", locationID))
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// restoreLocation godoc
// @Summary Restore a trashed location
// @Description Clears the trashed flag on a location.
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse "Location is not trashed"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id}/restore [post]
func (h *locationHandler) restoreLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	locationID := c.Param("id")
	if err := h.locationService.RestoreLocation(c.Request.Context(), locationID, userID); err != nil {
		logger.Error("Failed to restore location", slog.String("error", err.Error()), slog.String("location_id", locationID))
		respondWithError(c, err)
		return
	}

	restored, err := h.locationService.GetLocationByID(c.Request.Context(), locationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(restored))
}
