package domain

import "time"

// AuditEvent classifies system log entries.
type AuditEvent string

const (
	AuditEventCreate  AuditEvent = "create"
	AuditEventUpdate  AuditEvent = "update"
	AuditEventTrash   AuditEvent = "trash"
	AuditEventRestore AuditEvent = "restore"
)

// AuditLog records a back-office action against an entity, with the acting
// user and the client IP the request came from.
type AuditLog struct {
	AuditLogID  string     `json:"auditLogID"`
	Event       AuditEvent `json:"event"`
	UserID      string     `json:"userID"`
	EntityID    string     `json:"entityID"`
	EntityType  string     `json:"entityType"` // e.g. "user", "location.profile"
	Description string     `json:"description"`
	IPAddress   string     `json:"ipAddress"`
	CreatedAt   time.Time  `json:"createdAt"`
}
