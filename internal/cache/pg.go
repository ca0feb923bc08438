package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores cache entries in the quote_cache table:
//
//	CREATE TABLE quote_cache (
//	    key        text PRIMARY KEY,
//	    value      text NOT NULL,
//	    expires_at timestamptz NOT NULL
//	);
//
// Expired rows are filtered on read; last write wins on concurrent misses.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres { return &Postgres{db: db} }

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(ctx, `
		SELECT value FROM quote_cache
		WHERE key = $1 AND expires_at > now()
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO quote_cache (key, value, expires_at)
		VALUES ($1, $2, now() + make_interval(secs => $3))
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`, key, value, ttl.Seconds())
	return err
}
