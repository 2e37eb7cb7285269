package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
)

// NoteRepository implements trade.NoteStore on the symbol_notes table.
type NoteRepository struct {
	pool *Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(pool *Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Get returns the note for a symbol.
func (r *NoteRepository) Get(ctx context.Context, symbol string) (*trade.SymbolNote, error) {
	query := `
		SELECT symbol, note, updated_at
		FROM symbol_notes
		WHERE symbol = $1
	`

	var n trade.SymbolNote
	err := r.pool.QueryRow(ctx, query, symbol).Scan(&n.Symbol, &n.Note, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, trade.ErrNoteNotFound
		}
		return nil, fmt.Errorf("%w: %v", trade.ErrDatabaseQuery, err)
	}

	return &n, nil
}

// Upsert inserts or replaces the note for a symbol.
func (r *NoteRepository) Upsert(ctx context.Context, symbol, note string) (*trade.SymbolNote, error) {
	query := `
		INSERT INTO symbol_notes (symbol, note, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (symbol) DO UPDATE SET
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING symbol, note, updated_at
	`

	var n trade.SymbolNote
	err := r.pool.QueryRow(ctx, query, symbol, note).Scan(&n.Symbol, &n.Note, &n.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", trade.ErrDatabaseUpdate, err)
	}

	return &n, nil
}

// Delete removes the note for a symbol.
func (r *NoteRepository) Delete(ctx context.Context, symbol string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM symbol_notes WHERE symbol = $1`, symbol)
	if err != nil {
		return fmt.Errorf("%w: %v", trade.ErrDatabaseDelete, err)
	}
	return nil
}
