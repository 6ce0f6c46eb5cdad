package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
)

type PgxLocationRepository struct {
	BaseRepository
}

// newPgxLocationRepository creates a new repository for location data.
func newPgxLocationRepository(pool *pgxpool.Pool) portsrepo.LocationRepositoryFacade {
	return &PgxLocationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLocationRepository implements portsrepo.LocationRepositoryFacade
var _ portsrepo.LocationRepositoryFacade = (*PgxLocationRepository)(nil)

var FULL_LOCATION_SELECT_QUERY = `
SELECT
	l.location_id, l.name, l.parent_id, l.is_trashed, l.is_protected,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
FROM locations l
`

// sortColumns maps the whitelisted API sort fields onto real columns.
// Anything outside this map falls back to name.
var sortColumns = map[string]string{
	"name":      "l.name",
	"createdAt": "l.created_at",
	"updatedAt": "l.last_updated_at",
}

func (r *PgxLocationRepository) getLocations(ctx context.Context, filterQuery string, args ...any) ([]domain.Location, error) {
	query := FULL_LOCATION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query locations", err)
	}
	defer rows.Close()
	domainLocations, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Location])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Location{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect location rows", err)
	}

	return domainLocations, nil
}

func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	query := `WHERE l.location_id = $1`
	locations, err := r.getLocations(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, apperrors.ErrNotFound
	}
	location := locations[0]

	if err := r.loadRelatives(ctx, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// loadRelatives attaches the parent and children refs to a location.
func (r *PgxLocationRepository) loadRelatives(ctx context.Context, location *domain.Location) error {
	if location.ParentID != nil {
		var ref domain.LocationRef
		err := r.Pool.QueryRow(ctx,
			`SELECT location_id, name FROM locations WHERE location_id = $1`,
			*location.ParentID,
		).Scan(&ref.LocationID, &ref.Name)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(500, "failed to load parent location", err)
		}
		if err == nil {
			location.Parent = &ref
		}
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT location_id, name FROM locations WHERE parent_id = $1 AND is_trashed = FALSE ORDER BY name ASC`,
		location.LocationID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to load child locations", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ref domain.LocationRef
		if err := rows.Scan(&ref.LocationID, &ref.Name); err != nil {
			return apperrors.NewAppError(500, "failed to scan child location row", err)
		}
		location.Children = append(location.Children, ref)
	}
	if rows.Err() != nil {
		return apperrors.NewAppError(500, "error iterating child location rows", rows.Err())
	}
	return nil
}

// buildListFilter renders the WHERE clause shared by the page and count
// queries. It returns the clause and the bound args.
func buildListFilter(filter portsrepo.LocationFilter) (string, []any) {
	conditions := []string{}
	args := []any{}

	if !filter.IncludeTrashed {
		conditions = append(conditions, "l.is_trashed = FALSE")
	}
	if filter.AssignedUserID != "" {
		args = append(args, filter.AssignedUserID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM user_locations ul WHERE ul.location_id = l.location_id AND ul.user_id = $%d)",
			len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("l.name ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PgxLocationRepository) ListLocations(ctx context.Context, filter portsrepo.LocationFilter) ([]domain.Location, int, error) {
	whereClause, args := buildListFilter(filter)

	// The count runs under the same filter so page metadata stays consistent.
	var total int
	countQuery := "SELECT COUNT(*) FROM locations l " + whereClause
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count locations", err)
	}

	sortColumn, ok := sortColumns[filter.SortField]
	if !ok {
		sortColumn = "l.name"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	pageClause := fmt.Sprintf("%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, sortColumn, direction, len(args)-1, len(args))

	locations, err := r.getLocations(ctx, pageClause, args...)
	if err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

func (r *PgxLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	query := `
		INSERT INTO locations (
			location_id, name, parent_id, is_trashed, is_protected,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		location.LocationID,
		location.Name,
		location.ParentID,
		location.IsTrashed,
		location.IsProtected,
		location.CreatedAt,
		location.CreatedBy,
		location.LastUpdatedAt,
		location.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("location ID " + location.LocationID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("parent location does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save location "+location.LocationID, err)
	}
	return nil
}

func (r *PgxLocationRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	query := `
		UPDATE locations
		SET name = $1, parent_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE location_id = $5 AND is_trashed = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		location.Name,
		location.ParentID,
		location.LastUpdatedAt,
		location.LastUpdatedBy,
		location.LocationID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("parent location does not exist")
		}
		return apperrors.NewAppError(500, "failed to update location "+location.LocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLocationRepository) SetLocationTrashed(ctx context.Context, locationID string, trashed bool, updatedBy string) error {
	query := `
		UPDATE locations
		SET is_trashed = $1, last_updated_at = now(), last_updated_by = $2
		WHERE location_id = $3 AND is_trashed = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, trashed, updatedBy, locationID, !trashed)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update location trashed flag", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
