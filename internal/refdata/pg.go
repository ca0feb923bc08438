package refdata

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads the reference tables over a pgx pool. It implements both
// AuctionStore and CityStore.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) ListAuctions(ctx context.Context) ([]string, error) {
	return s.listStrings(ctx, `SELECT name FROM auctions ORDER BY name`)
}

func (s *PGStore) ListCities(ctx context.Context) ([]string, error) {
	return s.listStrings(ctx, `SELECT name FROM usa_cities ORDER BY name`)
}

func (s *PGStore) listStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
