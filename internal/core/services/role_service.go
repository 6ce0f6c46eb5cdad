package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
)

// roleService implements the RoleSvcFacade interface
type roleService struct {
	BaseService
	roleRepo portsrepo.RoleRepositoryFacade
}

// NewRoleService creates a new role service with the provided dependencies
func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade) portssvc.RoleSvcFacade {
	return &roleService{
		roleRepo: roleRepo,
	}
}

// Ensure roleService implements the RoleSvcFacade interface
var _ portssvc.RoleSvcFacade = (*roleService)(nil)

func (s *roleService) GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find role by ID", slog.String("role_id", roleID))
		}
		return nil, err
	}
	return role, nil
}

func (s *roleService) GetDefaultRole(ctx context.Context) (*domain.Role, error) {
	role, err := s.roleRepo.FindDefaultRole(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to find default role")
		return nil, err
	}
	return role, nil
}

func (s *roleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleRepo.FindRoles(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list roles")
		return nil, err
	}
	if roles == nil {
		return []domain.Role{}, nil
	}
	return roles, nil
}
