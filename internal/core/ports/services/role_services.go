package services

import (
	"context"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// RoleReaderSvc defines read operations for role data
type RoleReaderSvc interface {
	// GetRoleByID retrieves a role by ID.
	GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error)

	// GetDefaultRole retrieves the role assigned to self-registered users.
	GetDefaultRole(ctx context.Context) (*domain.Role, error)

	// ListRoles retrieves all roles.
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

// RoleSvcFacade combines all role-related service interfaces.
// Roles are seeded by migrations, so there is no writer side.
type RoleSvcFacade interface {
	RoleReaderSvc
}
