package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	roleRepo := newPgxRoleRepository(dbPool)
	locationRepo := newPgxLocationRepository(dbPool)
	assignmentRepo := newPgxAssignmentRepository(dbPool)
	auditRepo := newPgxAuditLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		RoleRepo:       roleRepo,
		LocationRepo:   locationRepo,
		AssignmentRepo: assignmentRepo,
		AuditRepo:      auditRepo,
	}
}
