package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yuehongzhang001/ark/internal/api/response"
	"github.com/yuehongzhang001/ark/internal/domain/trade"
	"github.com/yuehongzhang001/ark/internal/pkg/dateutil"
)

// StockHandler serves single-day quotes straight from the provider.
type StockHandler struct {
	provider trade.QuoteProvider
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(provider trade.QuoteProvider) *StockHandler {
	return &StockHandler{provider: provider}
}

// GetDailyQuote returns the full observation for a symbol on a date.
// Data is null when the market was closed.
// GET /api/stock?symbol=TSLA&date=2023-01-04
func (h *StockHandler) GetDailyQuote(c *gin.Context) {
	symbol := c.Query("symbol")
	dateStr := c.Query("date")
	if symbol == "" || dateStr == "" {
		response.BadRequest(c, "Missing symbol or date query parameters")
		return
	}
	if err := trade.ValidateSymbol(symbol); err != nil {
		response.BadRequest(c, "Invalid symbol")
		return
	}

	day, err := dateutil.ToDateKey(dateStr)
	if err != nil {
		response.BadRequest(c, "Invalid date")
		return
	}

	quote, err := h.provider.DailyQuote(c.Request.Context(), symbol, day)
	if err != nil {
		response.ExternalAPIError(c, "Market data", err)
		return
	}

	response.Success(c, quote)
}
