package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/query"
)

// EventSortFields are the fields an event list can be sorted by
var EventSortFields = query.Fields{
	"id":                "e.id",
	"place_id":          "e.place_id",
	"film_work_id":      "e.film_work_id",
	"event_start":       "e.event_start",
	"event_end":         "e.event_end",
	"max_tickets_count": "e.max_tickets_count",
	"host_id":           "e.host_id",
	"created_at":        "e.created_at",
}

const eventColumns = `
	e.id, e.place_id, e.film_work_id, e.event_start, e.event_end,
	e.max_tickets_count, e.host_id, e.created_at,
	(SELECT COUNT(*) FROM booking b WHERE b.event_id = e.id) AS booked_tickets
`

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.PlaceID,
		&event.FilmWorkID,
		&event.EventStart,
		&event.EventEnd,
		&event.MaxTicketsCount,
		&event.HostID,
		&event.CreatedAt,
		&event.BookedTickets,
	)
	if err != nil {
		return nil, err
	}
	event.EventStart = event.EventStart.UTC()
	event.EventEnd = event.EventEnd.UTC()
	return event, nil
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO event (id, place_id, film_work_id, event_start, event_end, max_tickets_count, host_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := querier(ctx, r.pool).QueryRow(ctx, query,
		event.ID,
		event.PlaceID,
		event.FilmWorkID,
		event.EventStart,
		event.EventEnd,
		event.MaxTicketsCount,
		event.HostID,
	).Scan(&event.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPlaceNotFound
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event with its booked ticket count
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM event e WHERE e.id = $1`, id)
}

// GetByIDForUpdate locks the event row until the surrounding transaction ends
func (r *PostgresEventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM event e WHERE e.id = $1 FOR UPDATE OF e`, id)
}

func (r *PostgresEventRepository) get(ctx context.Context, sql, id string) (*domain.Event, error) {
	event, err := scanEvent(querier(ctx, r.pool).QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// Update updates an event. The place of an event never changes.
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE event
		SET film_work_id = $2, event_start = $3, event_end = $4, max_tickets_count = $5
		WHERE id = $1
	`
	result, err := querier(ctx, r.pool).Exec(ctx, query,
		event.ID,
		event.FilmWorkID,
		event.EventStart,
		event.EventEnd,
		event.MaxTicketsCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// Delete deletes an event by ID
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	result, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM event WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// List lists events with filters, sorting and pagination
func (r *PostgresEventRepository) List(ctx context.Context, filter EventFilter, params query.Params) ([]*domain.Event, int, error) {
	b := &query.Builder{}
	if filter.PlaceID != "" {
		b.Where("e.place_id = $%d", filter.PlaceID)
	}
	if filter.HostID != "" {
		b.Where("e.host_id = $%d", filter.HostID)
	}
	if filter.FilmWorkID != "" {
		b.Where("e.film_work_id = $%d", filter.FilmWorkID)
	}
	if filter.EarlierThan != nil {
		b.Where("e.event_start < $%d", *filter.EarlierThan)
	}
	if filter.LaterThan != nil {
		b.Where("e.event_start > $%d", *filter.LaterThan)
	}
	where := b.WhereClause()
	q := querier(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM event e `+where, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	sql := fmt.Sprintf(`SELECT %s FROM event e %s %s %s`,
		eventColumns, where, query.OrderBy(params.Sort, "e.created_at", "e.id"), b.LimitOffset(params.Page))
	rows, err := q.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, total, rows.Err()
}

// HasOverlap checks if another event at the place intersects [start, end)
func (r *PostgresEventRepository) HasOverlap(ctx context.Context, placeID string, start, end time.Time, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM event
			WHERE place_id = $1
			  AND event_start < $3
			  AND event_end > $2
			  AND id::text <> $4
		)
	`
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx, query, placeID, start, end, excludeID).Scan(&exists)
	return exists, err
}
