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

// CitySortFields are the fields a city list can be sorted by
var CitySortFields = query.Fields{
	"id":         "id",
	"name":       "name",
	"timezone":   "timezone",
	"created_at": "created_at",
}

const cityColumns = `id, name, timezone, created_at`

// PostgresCityRepository implements CityRepository using PostgreSQL
type PostgresCityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCityRepository creates a new PostgresCityRepository
func NewPostgresCityRepository(pool *pgxpool.Pool) *PostgresCityRepository {
	return &PostgresCityRepository{pool: pool}
}

// Create creates a new city
func (r *PostgresCityRepository) Create(ctx context.Context, city *domain.City) error {
	query := `
		INSERT INTO city (id, name, timezone)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := querier(ctx, r.pool).QueryRow(ctx, query, city.ID, city.Name, city.Timezone).Scan(&city.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}

// GetByID retrieves a city by ID
func (r *PostgresCityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	query := `SELECT ` + cityColumns + ` FROM city WHERE id = $1`
	city := &domain.City{}
	err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&city.ID,
		&city.Name,
		&city.Timezone,
		&city.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	return city, nil
}

// Update updates a city
func (r *PostgresCityRepository) Update(ctx context.Context, city *domain.City) error {
	query := `UPDATE city SET name = $2, timezone = $3 WHERE id = $1`
	result, err := querier(ctx, r.pool).Exec(ctx, query, city.ID, city.Name, city.Timezone)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("failed to update city: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// Delete deletes a city by ID
func (r *PostgresCityRepository) Delete(ctx context.Context, id string) error {
	result, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM city WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("failed to delete city: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// List lists cities with sorting and pagination
func (r *PostgresCityRepository) List(ctx context.Context, params query.Params) ([]*domain.City, int, error) {
	b := &query.Builder{}
	q := querier(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM city`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cities: %w", err)
	}

	sql := fmt.Sprintf(`SELECT %s FROM city %s %s`,
		cityColumns, query.OrderBy(params.Sort, "created_at", "id"), b.LimitOffset(params.Page))
	rows, err := q.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	cities := make([]*domain.City, 0)
	for rows.Next() {
		city := &domain.City{}
		if err := rows.Scan(&city.ID, &city.Name, &city.Timezone, &city.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	return cities, total, rows.Err()
}

// NameExists checks if another city already uses name
func (r *PostgresCityRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM city WHERE name = $1 AND id::text <> $2)`,
		name, excludeID,
	).Scan(&exists)
	return exists, err
}

// HasPlaces checks if any place references the city
func (r *PostgresCityRepository) HasPlaces(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM place WHERE city_id = $1)`, id,
	).Scan(&exists)
	return exists, err
}
