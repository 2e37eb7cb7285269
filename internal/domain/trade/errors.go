package trade

import (
	"errors"
	"fmt"
	"regexp"
)

// Domain errors
var (
	ErrInvalidSymbol = errors.New("invalid symbol")

	// Note errors
	ErrNoteNotFound = errors.New("symbol note not found")

	// Repository errors
	ErrDatabaseQuery  = errors.New("database query failed")
	ErrDatabaseInsert = errors.New("database insert failed")
	ErrDatabaseUpdate = errors.New("database update failed")
	ErrDatabaseDelete = errors.New("database delete failed")

	// Provider errors
	ErrProviderRequest = errors.New("market data provider request failed")
)

// Tickers as the providers accept them: letters, digits, and the
// class/share separators, e.g. "TSLA", "BRK.B", "RDS-A".
var symbolRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]{0,11}$`)

// ValidateSymbol returns ErrInvalidSymbol for an empty or malformed ticker.
func ValidateSymbol(symbol string) error {
	if !symbolRe.MatchString(symbol) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	return nil
}
