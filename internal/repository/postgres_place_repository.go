package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/query"
)

// PlaceSortFields are the fields a place list can be sorted by
var PlaceSortFields = query.Fields{
	"id":         "id",
	"name":       "name",
	"city_id":    "city_id",
	"address":    "address",
	"host_id":    "host_id",
	"created_at": "created_at",
}

const placeColumns = `id, name, city_id, address, host_id, created_at`

// PostgresPlaceRepository implements PlaceRepository using PostgreSQL
type PostgresPlaceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPlaceRepository creates a new PostgresPlaceRepository
func NewPostgresPlaceRepository(pool *pgxpool.Pool) *PostgresPlaceRepository {
	return &PostgresPlaceRepository{pool: pool}
}

func scanPlace(row pgx.Row) (*domain.Place, error) {
	place := &domain.Place{}
	err := row.Scan(
		&place.ID,
		&place.Name,
		&place.CityID,
		&place.Address,
		&place.HostID,
		&place.CreatedAt,
	)
	return place, err
}

// Create creates a new place
func (r *PostgresPlaceRepository) Create(ctx context.Context, place *domain.Place) error {
	query := `
		INSERT INTO place (id, name, city_id, address, host_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := querier(ctx, r.pool).QueryRow(ctx, query,
		place.ID,
		place.Name,
		place.CityID,
		place.Address,
		place.HostID,
	).Scan(&place.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateName
		case isForeignKeyViolation(err):
			return domain.ErrCityNotFound
		}
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

// GetByID retrieves a place by ID
func (r *PostgresPlaceRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM place WHERE id = $1`
	place, err := scanPlace(querier(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}

// Update updates a place
func (r *PostgresPlaceRepository) Update(ctx context.Context, place *domain.Place) error {
	query := `
		UPDATE place
		SET name = $2, city_id = $3, address = $4
		WHERE id = $1
	`
	result, err := querier(ctx, r.pool).Exec(ctx, query,
		place.ID,
		place.Name,
		place.CityID,
		place.Address,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateName
		case isForeignKeyViolation(err):
			return domain.ErrCityNotFound
		}
		return fmt.Errorf("failed to update place: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// Delete deletes a place by ID
func (r *PostgresPlaceRepository) Delete(ctx context.Context, id string) error {
	result, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM place WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// List lists places with filters, sorting and pagination
func (r *PostgresPlaceRepository) List(ctx context.Context, filter PlaceFilter, params query.Params) ([]*domain.Place, int, error) {
	b := &query.Builder{}
	if filter.CityID != "" {
		b.Where("city_id = $%d", filter.CityID)
	}
	if filter.HostID != "" {
		b.Where("host_id = $%d", filter.HostID)
	}
	where := b.WhereClause()
	q := querier(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM place `+where, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count places: %w", err)
	}

	sql := fmt.Sprintf(`SELECT %s FROM place %s %s %s`,
		placeColumns, where, query.OrderBy(params.Sort, "created_at", "id"), b.LimitOffset(params.Page))
	rows, err := q.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	places := make([]*domain.Place, 0)
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}
	return places, total, rows.Err()
}

// NameExists checks if another place already uses name
func (r *PostgresPlaceRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM place WHERE name = $1 AND id::text <> $2)`,
		name, excludeID,
	).Scan(&exists)
	return exists, err
}

// AddressExists checks if another place already uses address
func (r *PostgresPlaceRepository) AddressExists(ctx context.Context, address, excludeID string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM place WHERE address = $1 AND id::text <> $2)`,
		address, excludeID,
	).Scan(&exists)
	return exists, err
}

// HasEvents checks if any event takes place at the place
func (r *PostgresPlaceRepository) HasEvents(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM event WHERE place_id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// ListHostIDs returns the host of every place, optionally within one city
func (r *PostgresPlaceRepository) ListHostIDs(ctx context.Context, cityID string) ([]string, error) {
	b := &query.Builder{}
	if cityID != "" {
		b.Where("city_id = $%d", cityID)
	}
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT DISTINCT host_id::text FROM place `+b.WhereClause(), b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hosts: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
