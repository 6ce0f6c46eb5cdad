package repositories

import (
	"context"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// RoleReader defines read operations for role data. Roles are seeded by
// migrations and edited out of band, so there is no writer interface here.
type RoleReader interface {
	// FindRoleByID retrieves a role by its id.
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)

	// FindDefaultRole retrieves the role flagged is_default, used when
	// provisioning OAuth users.
	FindDefaultRole(ctx context.Context) (*domain.Role, error)

	// FindRoles retrieves all roles ordered by name.
	FindRoles(ctx context.Context) ([]domain.Role, error)
}

// RoleRepositoryFacade is the full role repository surface.
type RoleRepositoryFacade interface {
	RoleReader
}
