package trade

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// QuoteProvider defines the external market-data provider contract.
type QuoteProvider interface {
	// DailyClose returns the closing price for symbol on day (a canonical
	// day key), covering exactly the half-open interval [day, day+1).
	// ok is false when the market was closed or the symbol did not trade;
	// that is not an error. An error means transport or parse failure.
	DailyClose(ctx context.Context, symbol, day string) (price decimal.Decimal, ok bool, err error)

	// DailyQuote returns the full observation for symbol on day, or nil
	// when there was no trading.
	DailyQuote(ctx context.Context, symbol, day string) (*Quote, error)
}

// TradeSource defines the external trade-list provider contract.
type TradeSource interface {
	// ListTrades returns raw trade records for a symbol. dateFrom and
	// dateTo are optional canonical day keys; empty means unbounded.
	ListTrades(ctx context.Context, symbol, dateFrom, dateTo string) (*TradeList, error)

	// FundOwnership returns the provider's fund-ownership payload as-is.
	FundOwnership(ctx context.Context, symbol string) (json.RawMessage, error)
}
