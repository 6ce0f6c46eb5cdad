package repositories

import (
	"context"
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// AuditLogWriter defines write operations for audit logs
type AuditLogWriter interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
}

// AuditLogReader defines read operations for audit logs
type AuditLogReader interface {
	// ListAuditLogs retrieves logs created strictly before the cursor time,
	// newest first, up to limit rows.
	ListAuditLogs(ctx context.Context, before time.Time, limit int) ([]domain.AuditLog, error)
}

// AuditLogRepositoryFacade combines all audit-log repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
