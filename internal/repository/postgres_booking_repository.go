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

// BookingSortFields are the fields a booking list can be sorted by
var BookingSortFields = query.Fields{
	"id":         "b.id",
	"event_id":   "b.event_id",
	"user_id":    "b.user_id",
	"created_at": "b.created_at",
}

const bookingColumns = `b.id, b.event_id, b.user_id, b.created_at`

// PostgresBookingRepository implements BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	booking := &domain.Booking{}
	err := row.Scan(&booking.ID, &booking.EventID, &booking.UserID, &booking.CreatedAt)
	return booking, err
}

// Create creates a new booking
func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO booking (id, event_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := querier(ctx, r.pool).QueryRow(ctx, query, booking.ID, booking.EventID, booking.UserID).Scan(&booking.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateBooking
		case isForeignKeyViolation(err):
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := scanBooking(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM booking b WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// Update moves a booking to another event
func (r *PostgresBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	result, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE booking SET event_id = $2 WHERE id = $1`, booking.ID, booking.EventID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateBooking
		case isForeignKeyViolation(err):
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// Delete deletes a booking by ID
func (r *PostgresBookingRepository) Delete(ctx context.Context, id string) error {
	result, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM booking WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// List lists bookings with filters, sorting and pagination
func (r *PostgresBookingRepository) List(ctx context.Context, filter BookingFilter, params query.Params) ([]*domain.Booking, int, error) {
	b := &query.Builder{}
	if filter.EventID != "" {
		b.Where("b.event_id = $%d", filter.EventID)
	}
	if filter.UserID != "" {
		b.Where("b.user_id = $%d", filter.UserID)
	}
	if filter.HostID != "" {
		b.Where("e.host_id = $%d", filter.HostID)
	}
	from := `FROM booking b JOIN event e ON e.id = b.event_id ` + b.WhereClause()
	q := querier(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+from, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	sql := fmt.Sprintf(`SELECT %s %s %s %s`,
		bookingColumns, from, query.OrderBy(params.Sort, "b.created_at", "b.id"), b.LimitOffset(params.Page))
	rows, err := q.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, total, rows.Err()
}

// CountByEvent counts the bookings of an event
func (r *PostgresBookingRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM booking WHERE event_id = $1`, eventID,
	).Scan(&count)
	return count, err
}

// Exists checks if the user already booked the event, ignoring excludeID
func (r *PostgresBookingRepository) Exists(ctx context.Context, userID, eventID, excludeID string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM booking WHERE user_id = $1 AND event_id = $2 AND id::text <> $3)`,
		userID, eventID, excludeID,
	).Scan(&exists)
	return exists, err
}

// ListHostIDsByUser returns the hosts of events the user booked
func (r *PostgresBookingRepository) ListHostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, `
		SELECT DISTINCT e.host_id::text
		FROM booking b JOIN event e ON e.id = b.event_id
		WHERE b.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked hosts: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
