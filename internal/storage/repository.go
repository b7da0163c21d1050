package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a history entry does not exist.
var ErrNotFound = errors.New("history entry not found")

const (
	// DefaultHistoryLimit is used when a list request gives no limit.
	DefaultHistoryLimit = 20
	// MaxHistoryLimit caps a single list request.
	MaxHistoryLimit = 100
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// HistoryEntry is one past trip search.
type HistoryEntry struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Destination string    `json:"destination"`
	TripType    string    `json:"trip_type"`
	Travelers   int       `json:"travelers"`
	TotalBudget float64   `json:"total_budget"`
	Currency    string    `json:"currency"`
}

// HistoryFilter narrows a history listing.
type HistoryFilter struct {
	// Destination matches case-insensitively anywhere in the stored name.
	Destination string
	Limit       int
}

// Repository provides read-only access to the search history.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// ClampLimit applies the default and maximum page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

// likeEscaper makes a user filter match literally inside ILIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListHistory returns entries newest first. The destination filter is a
// case-insensitive substring match; % and _ have no wildcard meaning.
func (r *Repository) ListHistory(ctx context.Context, f HistoryFilter) ([]HistoryEntry, error) {
	const q = `
		SELECT id::text, created_at, destination, trip_type, travelers, total_budget::float8, currency
		FROM search_history
		WHERE $1 = '' OR destination ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC
		LIMIT $2
	`

	destination := likeEscaper.Replace(strings.TrimSpace(f.Destination))
	rows, err := r.q.Query(ctx, q, destination, ClampLimit(f.Limit))
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.CreatedAt,
			&e.Destination,
			&e.TripType,
			&e.Travelers,
			&e.TotalBudget,
			&e.Currency,
		); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return entries, nil
}

// GetHistory retrieves a single entry. Ids that are not UUIDs cannot exist
// and return ErrNotFound without a query.
func (r *Repository) GetHistory(ctx context.Context, id string) (*HistoryEntry, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}

	const q = `
		SELECT id::text, created_at, destination, trip_type, travelers, total_budget::float8, currency
		FROM search_history
		WHERE id = $1
	`

	var e HistoryEntry
	err = r.q.QueryRow(ctx, q, parsed.String()).Scan(
		&e.ID,
		&e.CreatedAt,
		&e.Destination,
		&e.TripType,
		&e.Travelers,
		&e.TotalBudget,
		&e.Currency,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying history entry %s: %w", id, err)
	}

	return &e, nil
}
