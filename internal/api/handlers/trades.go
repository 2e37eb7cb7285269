package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yuehongzhang001/ark/internal/api/response"
	"github.com/yuehongzhang001/ark/internal/domain/trade"
	"github.com/yuehongzhang001/ark/internal/pkg/dateutil"
)

// ClosePriceResolver resolves closing prices for a trade list.
type ClosePriceResolver interface {
	ResolveClosePrices(ctx context.Context, symbol string, trades []trade.Trade) ([]trade.Trade, error)
}

// TradesHandler handles trade-related HTTP requests
type TradesHandler struct {
	source   trade.TradeSource
	resolver ClosePriceResolver
}

// NewTradesHandler creates a new TradesHandler
func NewTradesHandler(source trade.TradeSource, resolver ClosePriceResolver) *TradesHandler {
	return &TradesHandler{
		source:   source,
		resolver: resolver,
	}
}

// GetTrades returns fund trades for a symbol, enriched with closing prices.
// GET /api/trades?symbol=TSLA&date_from=2023-01-01&date_to=2023-01-31
func (h *TradesHandler) GetTrades(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", "TSLA")
	if err := trade.ValidateSymbol(symbol); err != nil {
		response.BadRequest(c, "Invalid symbol")
		return
	}

	dateFrom := c.Query("date_from")
	if dateFrom != "" {
		key, err := dateutil.ToDateKey(dateFrom)
		if err != nil {
			response.BadRequest(c, "Invalid date_from")
			return
		}
		dateFrom = key
	}
	dateTo := c.Query("date_to")
	if dateTo != "" {
		key, err := dateutil.ToDateKey(dateTo)
		if err != nil {
			response.BadRequest(c, "Invalid date_to")
			return
		}
		dateTo = key
	}

	list, err := h.source.ListTrades(c.Request.Context(), symbol, dateFrom, dateTo)
	if err != nil {
		response.ExternalAPIError(c, "Trade list", err)
		return
	}

	enriched, err := h.resolver.ResolveClosePrices(c.Request.Context(), symbol, list.Trades)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	list.Trades = enriched

	response.Success(c, list)
}

// GetFundOwnership returns the provider's fund-ownership payload as-is.
// GET /api/weight?symbol=TSLA
func (h *TradesHandler) GetFundOwnership(c *gin.Context) {
	symbol := c.Query("symbol")
	if err := trade.ValidateSymbol(symbol); err != nil {
		response.BadRequest(c, "A valid symbol is required")
		return
	}

	data, err := h.source.FundOwnership(c.Request.Context(), symbol)
	if err != nil {
		response.ExternalAPIError(c, "Fund ownership", err)
		return
	}

	response.Success(c, data)
}
