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

// BlacklistSortFields are the fields a block list can be sorted by
var BlacklistSortFields = query.Fields{
	"id":         "id",
	"host_id":    "host_id",
	"user_id":    "user_id",
	"created_at": "created_at",
}

const blockEntryColumns = `id, host_id, user_id, created_at`

// PostgresBlacklistRepository implements BlacklistRepository using PostgreSQL
type PostgresBlacklistRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBlacklistRepository creates a new PostgresBlacklistRepository
func NewPostgresBlacklistRepository(pool *pgxpool.Pool) *PostgresBlacklistRepository {
	return &PostgresBlacklistRepository{pool: pool}
}

func scanBlockEntry(row pgx.Row) (*domain.BlockEntry, error) {
	entry := &domain.BlockEntry{}
	err := row.Scan(&entry.ID, &entry.HostID, &entry.UserID, &entry.CreatedAt)
	return entry, err
}

// Create creates a new block entry
func (r *PostgresBlacklistRepository) Create(ctx context.Context, entry *domain.BlockEntry) error {
	err := querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO black_list (id, host_id, user_id) VALUES ($1, $2, $3) RETURNING created_at`,
		entry.ID, entry.HostID, entry.UserID,
	).Scan(&entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyBlocked
		}
		return fmt.Errorf("failed to create block entry: %w", err)
	}
	return nil
}

// GetByID retrieves a block entry by ID
func (r *PostgresBlacklistRepository) GetByID(ctx context.Context, id string) (*domain.BlockEntry, error) {
	entry, err := scanBlockEntry(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+blockEntryColumns+` FROM black_list WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get block entry: %w", err)
	}
	return entry, nil
}

// Delete deletes a block entry by ID
func (r *PostgresBlacklistRepository) Delete(ctx context.Context, id string) error {
	result, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM black_list WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete block entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}

// List lists block entries with filters, sorting and pagination
func (r *PostgresBlacklistRepository) List(ctx context.Context, filter BlacklistFilter, params query.Params) ([]*domain.BlockEntry, int, error) {
	b := &query.Builder{}
	if filter.HostID != "" {
		b.Where("host_id = $%d", filter.HostID)
	}
	where := b.WhereClause()
	q := querier(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM black_list `+where, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count block entries: %w", err)
	}

	sql := fmt.Sprintf(`SELECT %s FROM black_list %s %s %s`,
		blockEntryColumns, where, query.OrderBy(params.Sort, "created_at", "id"), b.LimitOffset(params.Page))
	rows, err := q.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list block entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.BlockEntry, 0)
	for rows.Next() {
		entry, err := scanBlockEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan block entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

// Exists checks if the host blocked the user
func (r *PostgresBlacklistRepository) Exists(ctx context.Context, hostID, userID string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM black_list WHERE host_id = $1 AND user_id = $2)`,
		hostID, userID,
	).Scan(&exists)
	return exists, err
}
