package trade

import "context"

// PriceStore defines the persisted price store contract. Implementations
// must keep at most one PricePoint per (symbol, date).
type PriceStore interface {
	// GetRange returns points for symbol within [from, to] inclusive,
	// ascending by date. An empty slice, not an error, when none exist.
	GetRange(ctx context.Context, symbol, from, to string) ([]PricePoint, error)

	// UpsertBatch inserts or overwrites points by (symbol, date) and
	// returns the number written. Re-upserting an identical key is not an
	// error.
	UpsertBatch(ctx context.Context, points []PricePoint) (int, error)

	// DeleteBySymbol removes every point for a symbol.
	DeleteBySymbol(ctx context.Context, symbol string) error
}

// NoteStore defines persistence for symbol notes.
type NoteStore interface {
	// Get returns the note for a symbol, ErrNoteNotFound when absent.
	Get(ctx context.Context, symbol string) (*SymbolNote, error)

	Upsert(ctx context.Context, symbol, note string) (*SymbolNote, error)

	Delete(ctx context.Context, symbol string) error
}

// SymbolStore defines persistence for the watched-symbol display order.
type SymbolStore interface {
	// List returns symbols ascending by display order.
	List(ctx context.Context) ([]SymbolOrder, error)

	// UpsertOrder writes display positions, keyed by symbol.
	UpsertOrder(ctx context.Context, symbols []SymbolOrder) ([]SymbolOrder, error)
}
