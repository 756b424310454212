package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PostgreSQL implementation of Store.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresStore creates a new PostgreSQL-backed URL store. Every operation
// is bounded by the given timeout.
func NewPostgresStore(pool *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		timeout: timeout,
	}
}

// EnsureSchema creates the short_urls table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	query := `
		CREATE TABLE IF NOT EXISTS short_urls (
			short_code TEXT PRIMARY KEY,
			long_url   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

func (p *PostgresStore) Put(ctx context.Context, code, longURL string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	query := `
		INSERT INTO short_urls (short_code, long_url, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (short_code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query, code, longURL, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	// Insert was a no-op, so the code is already present. Read it back to
	// tell an idempotent resubmission apart from a genuine conflict.
	stored, err := p.get(ctx, code)
	if err != nil {
		return err
	}

	if stored != longURL {
		return ErrCodeTaken
	}

	return nil
}

func (p *PostgresStore) Get(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.get(ctx, code)
}

func (p *PostgresStore) get(ctx context.Context, code string) (string, error) {
	var longURL string

	query := `SELECT long_url FROM short_urls WHERE short_code = $1`

	err := p.pool.QueryRow(ctx, query, code).Scan(&longURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return longURL, nil
}

func (p *PostgresStore) Exists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM short_urls WHERE short_code = $1)`

	if err := p.pool.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return exists, nil
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}
