package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablekit/resto_backoffice_app/internal/apperrors"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
)

type PgxAssignmentRepository struct {
	BaseRepository
}

// newPgxAssignmentRepository creates a new repository for user-location assignments.
func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAssignmentRepository implements portsrepo.AssignmentRepositoryFacade
var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

// Assignments are read joined with their location so the ref is available
// for current-location resolution without a second round trip.
var FULL_ASSIGNMENT_SELECT_QUERY = `
SELECT
	ul.user_location_id, ul.user_id, ul.location_id, ul.role_id,
	ul.is_primary, ul.is_current, ul.created_at,
	l.location_id AS ref_location_id, l.name AS ref_location_name
FROM user_locations ul
JOIN locations l ON l.location_id = ul.location_id
`

func (r *PgxAssignmentRepository) getAssignments(ctx context.Context, filterQuery string, args ...any) ([]domain.UserLocation, error) {
	query := FULL_ASSIGNMENT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assignments", err)
	}
	defer rows.Close()

	assignments := []domain.UserLocation{}
	for rows.Next() {
		var a domain.UserLocation
		var ref domain.LocationRef
		err := rows.Scan(
			&a.UserLocationID,
			&a.UserID,
			&a.LocationID,
			&a.RoleID,
			&a.IsPrimary,
			&a.IsCurrent,
			&a.CreatedAt,
			&ref.LocationID,
			&ref.Name,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan assignment row", err)
		}
		a.Location = &ref
		assignments = append(assignments, a)
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating assignment rows", rows.Err())
	}

	return assignments, nil
}

func (r *PgxAssignmentRepository) ListAssignmentsByUserID(ctx context.Context, userID string) ([]domain.UserLocation, error) {
	query := `WHERE ul.user_id = $1 AND l.is_trashed = FALSE ORDER BY ul.created_at ASC`
	return r.getAssignments(ctx, query, userID)
}

func (r *PgxAssignmentRepository) FindAssignment(ctx context.Context, userID string, locationID string) (*domain.UserLocation, error) {
	query := `WHERE ul.user_id = $1 AND ul.location_id = $2`
	assignments, err := r.getAssignments(ctx, query, userID, locationID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &assignments[0], nil
}

// insertAssignmentTx inserts one assignment row inside the given transaction.
// With onConflictIgnore the insert is a no-op when the user already holds the
// location, leaving the existing row's flags as they are.
func insertAssignmentTx(ctx context.Context, tx pgx.Tx, assignment domain.UserLocation, onConflictIgnore bool) error {
	query := `
		INSERT INTO user_locations (
			user_location_id, user_id, location_id, role_id, is_primary, is_current, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if onConflictIgnore {
		query += ` ON CONFLICT (user_id, location_id) DO NOTHING`
	}
	query += `;`

	_, err := tx.Exec(ctx, query,
		assignment.UserLocationID,
		assignment.UserID,
		assignment.LocationID,
		assignment.RoleID,
		assignment.IsPrimary,
		assignment.IsCurrent,
		assignment.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on (user_id, location_id)
				return apperrors.NewConflictError("user is already assigned to this location")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("user, location or role does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save assignment", err)
	}
	return nil
}

// setExclusiveFlagTx clears the given flag on every assignment of the user
// and sets it on exactly one row, within the caller's transaction.
func setExclusiveFlagTx(ctx context.Context, tx pgx.Tx, flagColumn, userID, userLocationID string) error {
	// flagColumn is caller-controlled and always one of the two flag names.
	clearQuery := `UPDATE user_locations SET ` + flagColumn + ` = FALSE WHERE user_id = $1;`
	if _, err := tx.Exec(ctx, clearQuery, userID); err != nil {
		return apperrors.NewAppError(500, "failed to clear "+flagColumn+" flags", err)
	}

	setQuery := `UPDATE user_locations SET ` + flagColumn + ` = TRUE WHERE user_location_id = $1 AND user_id = $2;`
	cmdTag, err := tx.Exec(ctx, setQuery, userLocationID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set "+flagColumn+" flag", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssignmentRepository) SyncAssignments(ctx context.Context, userID string, assignments []domain.UserLocation, primaryLocationID *string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	for _, assignment := range assignments {
		if err := insertAssignmentTx(ctx, tx, assignment, true); err != nil {
			return err
		}
	}

	if primaryLocationID != nil {
		clearQuery := `UPDATE user_locations SET is_primary = FALSE WHERE user_id = $1;`
		if _, err := tx.Exec(ctx, clearQuery, userID); err != nil {
			return apperrors.NewAppError(500, "failed to clear is_primary flags", err)
		}
		setQuery := `UPDATE user_locations SET is_primary = TRUE WHERE user_id = $1 AND location_id = $2;`
		cmdTag, err := tx.Exec(ctx, setQuery, userID, *primaryLocationID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to set is_primary flag", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAssignmentRepository) CreateCurrentAssignment(ctx context.Context, assignment domain.UserLocation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if err := insertAssignmentTx(ctx, tx, assignment, false); err != nil {
		return err
	}
	if err := setExclusiveFlagTx(ctx, tx, "is_current", assignment.UserID, assignment.UserLocationID); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAssignmentRepository) SetCurrentAssignment(ctx context.Context, userID string, userLocationID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if err := setExclusiveFlagTx(ctx, tx, "is_current", userID, userLocationID); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
