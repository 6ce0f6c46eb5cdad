package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/middleware"
	"github.com/tablekit/resto_backoffice_app/internal/utils/pagination"
)

// auditService implements the AuditSvcFacade interface
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewAuditService creates a new audit service with the provided dependencies
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo: auditRepo,
	}
}

// Ensure auditService implements the AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record writes an audit entry. Audit failures never propagate to the
// audited operation, they are only logged.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent, userID, entityID, entityType, description, ipAddress string) {
	if ipAddress == "" {
		ipAddress = middleware.GetClientIPFromCtx(ctx)
	}
	log := domain.AuditLog{
		AuditLogID:  uuid.NewString(),
		Event:       event,
		UserID:      userID,
		EntityID:    entityID,
		EntityType:  entityType,
		Description: description,
		IPAddress:   ipAddress,
		CreatedAt:   time.Now(),
	}
	if err := s.auditRepo.SaveAuditLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to record audit log",
			slog.String("event", string(event)),
			slog.String("entity_id", entityID))
	}
}

func (s *auditService) ListAuditLogs(ctx context.Context, before time.Time, limit int) ([]domain.AuditLog, string, error) {
	if limit <= 0 {
		limit = 50
	}
	logs, err := s.auditRepo.ListAuditLogs(ctx, before, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, "", err
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}

	nextToken := ""
	if len(logs) == limit {
		nextToken = pagination.EncodeDateBasedToken(logs[len(logs)-1].CreatedAt)
	}
	return logs, nextToken, nil
}
