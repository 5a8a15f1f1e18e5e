package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkfold/linkfold/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.Store.
//
// Expected schema:
//
//	CREATE TABLE mappings (
//	    code       TEXT PRIMARY KEY,
//	    long_url   TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    expires_at TIMESTAMPTZ
//	);
//	CREATE SEQUENCE mapping_seq;
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed mapping store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Put(ctx context.Context, mapping *shortener.Mapping) error {
	query := `
		INSERT INTO mappings (code, long_url, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		string(mapping.Code),
		mapping.LongURL,
		mapping.CreatedAt,
		nullableTime(mapping.ExpiresAt),
	)
	if err != nil {
		return unavailable("put", err)
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrDuplicateCode
	}

	return nil
}

func (p *PostgresStore) Get(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	query := `
		SELECT code, long_url, created_at, expires_at
		FROM mappings
		WHERE code = $1
		  AND (expires_at IS NULL OR expires_at > now())
	`

	var (
		mapping   shortener.Mapping
		expiresAt *time.Time
	)

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&mapping.Code,
		&mapping.LongURL,
		&mapping.CreatedAt,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, unavailable("get", err)
	}

	if expiresAt != nil {
		mapping.ExpiresAt = *expiresAt
	}

	return &mapping, nil
}

func (p *PostgresStore) Delete(ctx context.Context, code shortener.Code) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM mappings WHERE code = $1`, string(code))
	if err != nil {
		return unavailable("delete", err)
	}

	return nil
}

func (p *PostgresStore) ReapExpired(ctx context.Context) ([]shortener.Code, error) {
	query := `
		DELETE FROM mappings
		WHERE expires_at IS NOT NULL AND expires_at <= now()
		RETURNING code
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, unavailable("reap", err)
	}
	defer rows.Close()

	var reaped []shortener.Code

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, unavailable("reap scan", err)
		}

		reaped = append(reaped, shortener.Code(code))
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("reap rows", err)
	}

	return reaped, nil
}

func (p *PostgresStore) NextSequence(ctx context.Context) (uint64, error) {
	var seq int64

	err := p.pool.QueryRow(ctx, `SELECT nextval('mapping_seq')`).Scan(&seq)
	if err != nil {
		return 0, unavailable("next sequence", err)
	}

	return uint64(seq), nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", shortener.ErrStoreUnavailable, op, err)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}

// Compile-time check.
var _ shortener.Store = (*PostgresStore)(nil)
