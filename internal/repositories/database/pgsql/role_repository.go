package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
)

type PgxRoleRepository struct {
	BaseRepository
}

// newPgxRoleRepository creates a new repository for role data.
func newPgxRoleRepository(pool *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRoleRepository implements portsrepo.RoleRepositoryFacade
var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

var FULL_ROLE_SELECT_QUERY = `
SELECT
	r.role_id, r.name, r.is_default, r.is_protected,
	r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
FROM roles r
`

func (r *PgxRoleRepository) getRoles(ctx context.Context, filterQuery string, args ...any) ([]domain.Role, error) {
	query := FULL_ROLE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles", err)
	}
	defer rows.Close()
	domainRoles, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Role])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Role{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect role rows", err)
	}

	return domainRoles, nil
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	query := `WHERE r.role_id = $1`
	roles, err := r.getRoles(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &roles[0], nil
}

func (r *PgxRoleRepository) FindDefaultRole(ctx context.Context) (*domain.Role, error) {
	query := `WHERE r.is_default = TRUE LIMIT 1`
	roles, err := r.getRoles(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &roles[0], nil
}

func (r *PgxRoleRepository) FindRoles(ctx context.Context) ([]domain.Role, error) {
	query := `ORDER BY r.name ASC`
	return r.getRoles(ctx, query)
}
