package dto

import (
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for listing audit logs.
// NextToken is an opaque cursor from a previous response.
type ListAuditLogsParams struct {
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// AuditLogResponse defines the data returned for an audit log entry.
type AuditLogResponse struct {
	AuditLogID  string            `json:"auditLogID"`
	Event       domain.AuditEvent `json:"event"`
	UserID      string            `json:"userID"`
	EntityID    string            `json:"entityID"`
	EntityType  string            `json:"entityType"`
	Description string            `json:"description"`
	IPAddress   string            `json:"ipAddress,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ToAuditLogResponse converts a domain.AuditLog to DTO.
func ToAuditLogResponse(log *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID:  log.AuditLogID,
		Event:       log.Event,
		UserID:      log.UserID,
		EntityID:    log.EntityID,
		EntityType:  log.EntityType,
		Description: log.Description,
		IPAddress:   log.IPAddress,
		CreatedAt:   log.CreatedAt,
	}
}

// ListAuditLogsResponse wraps a page of audit logs with the next cursor.
type ListAuditLogsResponse struct {
	Logs      []AuditLogResponse `json:"logs"`
	NextToken string             `json:"nextToken,omitempty"`
}

// ToListAuditLogsResponse converts a slice of domain.AuditLog plus cursor to DTO.
func ToListAuditLogsResponse(logs []domain.AuditLog, nextToken string) ListAuditLogsResponse {
	list := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		list[i] = ToAuditLogResponse(&l)
	}
	return ListAuditLogsResponse{Logs: list, NextToken: nextToken}
}
