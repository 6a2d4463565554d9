// Package store provides quote persistence adapters: a PostgreSQL store for
// production and an in-memory store for local profiles and tests.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "github.com/lib/pq" // postgres driver

	"insquote/internal/domain"
)

const (
	poolMaxOpenConns    = 25
	poolMaxIdleConns    = 5
	poolConnMaxLifetime = 30 * time.Minute
)

// schema is applied on startup. The quote row is written once and never
// updated, so there are no migrations beyond table creation.
const schema = `
CREATE TABLE IF NOT EXISTS quotes (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	taxpayer_id    TEXT NOT NULL,
	gender         CHAR(1) NOT NULL,
	birth_date     DATE NOT NULL,
	start_date     DATE NOT NULL,
	end_date       DATE NOT NULL,
	capital        NUMERIC(18,2) NOT NULL,
	base_rate      NUMERIC(12,6) NOT NULL,
	adjusted_rate  NUMERIC(12,6) NOT NULL,
	coverage_days  INTEGER NOT NULL,
	coverage_years NUMERIC(10,2) NOT NULL,
	premium        NUMERIC(18,2) NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// OpenPostgres opens a pooled connection to PostgreSQL and verifies it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	db.SetMaxOpenConns(poolMaxOpenConns)
	db.SetMaxIdleConns(poolMaxIdleConns)
	db.SetConnMaxLifetime(poolConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return db, nil
}

// PostgresStore implements ports.QuoteStore on PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed quote store.
// Panics if db is nil. Defaults logger to slog.Default() if nil.
func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	if db == nil {
		panic("PostgresStore: db is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStore{db: db, logger: logger}
}

// EnsureSchema creates the quotes table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensuring quotes schema: %w", err)
	}

	return nil
}

// Insert persists the quote as a single row and fills its store-assigned ID
// and CreatedAt. Implements ports.QuoteStore.
func (s *PostgresStore) Insert(ctx context.Context, quote *domain.Quote) error {
	const query = `
		INSERT INTO quotes (
			name, taxpayer_id, gender, birth_date, start_date, end_date,
			capital, base_rate, adjusted_rate, coverage_days, coverage_years,
			premium, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		quote.Name,
		quote.TaxpayerID,
		string(quote.Gender),
		quote.BirthDate,
		quote.StartDate,
		quote.EndDate,
		quote.Capital,
		quote.BaseRate,
		quote.AdjustedRate,
		quote.CoverageDays,
		quote.CoverageYears,
		quote.Premium,
		quote.Description,
	).Scan(&quote.ID, &quote.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}

	return nil
}

// GetByID retrieves a quote by its identifier. Implements ports.QuoteStore.
func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	const query = selectColumns + ` WHERE id = $1`

	quote, err := scanQuote(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", strconv.FormatInt(id, 10))
		}

		return nil, fmt.Errorf("querying quote %d: %w", id, err)
	}

	return quote, nil
}

// List returns all quotes, newest first. Implements ports.QuoteStore.
func (s *PostgresStore) List(ctx context.Context) ([]*domain.Quote, error) {
	const query = selectColumns + ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	quotes := make([]*domain.Quote, 0)

	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote row: %w", err)
		}

		quotes = append(quotes, quote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quote rows: %w", err)
	}

	return quotes, nil
}

const selectColumns = `
	SELECT id, name, taxpayer_id, gender, birth_date, start_date, end_date,
	       capital, base_rate, adjusted_rate, coverage_days, coverage_years,
	       premium, description, created_at
	FROM quotes`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*domain.Quote, error) {
	var (
		q      domain.Quote
		gender string
	)

	err := row.Scan(
		&q.ID,
		&q.Name,
		&q.TaxpayerID,
		&gender,
		&q.BirthDate,
		&q.StartDate,
		&q.EndDate,
		&q.Capital,
		&q.BaseRate,
		&q.AdjustedRate,
		&q.CoverageDays,
		&q.CoverageYears,
		&q.Premium,
		&q.Description,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.Gender = domain.Gender(gender)

	// DATE columns come back in the session timezone; pin to UTC midnight.
	q.BirthDate = domain.Date(q.BirthDate)
	q.StartDate = domain.Date(q.StartDate)
	q.EndDate = domain.Date(q.EndDate)

	return &q, nil
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (s *PostgresStore) Name() string {
	return "postgres"
}

// Check pings the database. Implements ports.HealthChecker.
func (s *PostgresStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
