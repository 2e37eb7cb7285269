package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
)

// PriceRepository implements trade.PriceStore on the daily_prices table.
// Uniqueness of (symbol, date) is enforced by the table's conflict key.
type PriceRepository struct {
	pool *Pool
}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository(pool *Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetRange returns price points for symbol within [from, to] inclusive,
// ascending by date.
func (r *PriceRepository) GetRange(ctx context.Context, symbol, from, to string) ([]trade.PricePoint, error) {
	query := `
		SELECT symbol, to_char(date, 'YYYY-MM-DD'), price::text, ts
		FROM daily_prices
		WHERE symbol = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", trade.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	points := []trade.PricePoint{}
	for rows.Next() {
		var p trade.PricePoint
		var priceStr string
		if err := rows.Scan(&p.Symbol, &p.Date, &priceStr, &p.TS); err != nil {
			return nil, fmt.Errorf("%w: %v", trade.ErrDatabaseQuery, err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("%w: parse price %q: %v", trade.ErrDatabaseQuery, priceStr, err)
		}
		p.Price = price
		points = append(points, p)
	}

	return points, rows.Err()
}

// UpsertBatch inserts or overwrites price points keyed by (symbol, date).
func (r *PriceRepository) UpsertBatch(ctx context.Context, points []trade.PricePoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO daily_prices (symbol, date, price, ts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol, date) DO UPDATE SET
			price = EXCLUDED.price,
			ts = EXCLUDED.ts
	`

	for _, p := range points {
		batch.Queue(query, p.Symbol, p.Date, p.Price.String(), p.TS)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	count := 0
	for range points {
		if _, err := br.Exec(); err != nil {
			return count, fmt.Errorf("%w: %v", trade.ErrDatabaseInsert, err)
		}
		count++
	}

	return count, nil
}

// DeleteBySymbol removes all price points for a symbol.
func (r *PriceRepository) DeleteBySymbol(ctx context.Context, symbol string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM daily_prices WHERE symbol = $1`, symbol)
	if err != nil {
		return fmt.Errorf("%w: %v", trade.ErrDatabaseDelete, err)
	}
	return nil
}
