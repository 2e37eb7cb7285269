package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
)

// SymbolRepository implements trade.SymbolStore on the stock_symbols table.
type SymbolRepository struct {
	pool *Pool
}

// NewSymbolRepository creates a new SymbolRepository
func NewSymbolRepository(pool *Pool) *SymbolRepository {
	return &SymbolRepository{pool: pool}
}

// List returns all watched symbols ascending by display order.
func (r *SymbolRepository) List(ctx context.Context) ([]trade.SymbolOrder, error) {
	query := `
		SELECT symbol, display_order
		FROM stock_symbols
		ORDER BY display_order ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", trade.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	symbols := []trade.SymbolOrder{}
	for rows.Next() {
		var s trade.SymbolOrder
		if err := rows.Scan(&s.Symbol, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("%w: %v", trade.ErrDatabaseQuery, err)
		}
		symbols = append(symbols, s)
	}

	return symbols, rows.Err()
}

// UpsertOrder writes display positions keyed by symbol and returns the
// stored rows.
func (r *SymbolRepository) UpsertOrder(ctx context.Context, symbols []trade.SymbolOrder) ([]trade.SymbolOrder, error) {
	if len(symbols) == 0 {
		return []trade.SymbolOrder{}, nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO stock_symbols (symbol, display_order)
		VALUES ($1, $2)
		ON CONFLICT (symbol) DO UPDATE SET
			display_order = EXCLUDED.display_order
		RETURNING symbol, display_order
	`

	for _, s := range symbols {
		batch.Queue(query, s.Symbol, s.DisplayOrder)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	updated := make([]trade.SymbolOrder, 0, len(symbols))
	for range symbols {
		var s trade.SymbolOrder
		if err := br.QueryRow().Scan(&s.Symbol, &s.DisplayOrder); err != nil {
			return updated, fmt.Errorf("%w: %v", trade.ErrDatabaseUpdate, err)
		}
		updated = append(updated, s)
	}

	return updated, nil
}
