package services

import (
	"context"
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// AuditWriterSvc defines write operations for audit logs
type AuditWriterSvc interface {
	// Record persists an audit log entry. Failures are logged but must not
	// fail the operation being audited, so implementations return no error.
	Record(ctx context.Context, event domain.AuditEvent, userID, entityID, entityType, description, ipAddress string)
}

// AuditReaderSvc defines read operations for audit logs
type AuditReaderSvc interface {
	// ListAuditLogs retrieves logs older than the cursor, newest first.
	// The returned string is the opaque token for the next page, empty when
	// there are no more rows.
	ListAuditLogs(ctx context.Context, before time.Time, limit int) ([]domain.AuditLog, string, error)
}

// AuditSvcFacade combines all audit-related service interfaces
type AuditSvcFacade interface {
	AuditReaderSvc
	AuditWriterSvc
}
