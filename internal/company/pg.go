package company

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("company not found")

// Store reads company calculator settings over a pgx pool.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store { return &Store{db: db} }

// GetByID loads the calculator view of a company. A malformed
// calculator_config is logged and surfaced as a nil config so the adapter
// preflight can report the misconfiguration instead of the read path
// failing the whole request.
func (s *Store) GetByID(ctx context.Context, id int64) (Company, error) {
	var (
		co      Company
		rawCfg  []byte
		apiURL  *string
		calType *string
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, name, calculator_type, calculator_api_url, calculator_config
		FROM companies WHERE id = $1
	`, id).Scan(&co.ID, &co.Name, &calType, &apiURL, &rawCfg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, fmt.Errorf("load company %d: %w", id, err)
	}
	if calType != nil {
		co.CalculatorType = *calType
	}
	if apiURL != nil {
		co.CalculatorAPIURL = *apiURL
	}
	if len(rawCfg) > 0 {
		cfg, err := ParseConfig(rawCfg)
		if err != nil {
			log.Printf("[company] company=%d invalid calculator_config: %v", co.ID, err)
		} else {
			co.CalculatorConfig = cfg
		}
	}
	return co, nil
}
