package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/dto"
	"github.com/tablekit/resto_backoffice_app/internal/utils/pagination"

	"github.com/gin-gonic/gin"
)

// auditHandler handles HTTP requests for the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers the audit log routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List audit logs
// @Description Returns audit log entries newest first. Pass the nextToken from a previous response to fetch the following page.
// @Tags audit
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Opaque cursor from a previous response"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} ErrorResponse "Invalid cursor"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	before := time.Now()
	if params.NextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(params.NextToken)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid nextToken"})
			return
		}
		before = cursor
	}

	logs, nextToken, err := h.auditService.ListAuditLogs(c.Request.Context(), before, params.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditLogsResponse(logs, nextToken))
}
