package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents a single fund transaction on a given date. Identity is
// positional within the list it arrived in; trades are never persisted or
// deduplicated. Close stays nil until a closing price has been resolved.
type Trade struct {
	Date       string           `json:"date"`
	Fund       string           `json:"fund,omitempty"`
	Direction  string           `json:"direction,omitempty"`
	Ticker     string           `json:"ticker,omitempty"`
	Company    string           `json:"company,omitempty"`
	CUSIP      string           `json:"cusip,omitempty"`
	Shares     decimal.Decimal  `json:"shares"`
	ETFPercent decimal.Decimal  `json:"etf_percent,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"` // originating transaction price, not the close
	Close      *decimal.Decimal `json:"close,omitempty"`
}

// TradeList is the trade-list provider's response envelope.
type TradeList struct {
	Symbol   string  `json:"symbol"`
	DateFrom string  `json:"date_from,omitempty"`
	DateTo   string  `json:"date_to,omitempty"`
	Trades   []Trade `json:"trades"`
}

// PricePoint is one persisted daily close, unique per (Symbol, Date).
// Maps to the daily_prices table.
type PricePoint struct {
	Symbol string          `json:"symbol" db:"symbol"`
	Date   string          `json:"date" db:"date"` // canonical day key
	Price  decimal.Decimal `json:"price" db:"price"`
	TS     time.Time       `json:"ts" db:"ts"` // capture instant
}

// Quote is a single trading day's observation as reported by the
// market-data provider.
type Quote struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjclose,omitempty"`
	Volume   int64   `json:"volume"`
}

// SymbolNote is a free-text note attached to a symbol.
// Maps to the symbol_notes table.
type SymbolNote struct {
	Symbol    string    `json:"symbol" db:"symbol"`
	Note      string    `json:"note" db:"note"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SymbolOrder is a watched symbol and its display position.
// Maps to the stock_symbols table.
type SymbolOrder struct {
	Symbol       string `json:"symbol" db:"symbol"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}
