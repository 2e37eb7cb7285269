package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yuehongzhang001/ark/internal/api/response"
	"github.com/yuehongzhang001/ark/internal/domain/trade"
)

// SymbolsHandler handles watched-symbol HTTP requests
type SymbolsHandler struct {
	symbols trade.SymbolStore
}

// NewSymbolsHandler creates a new SymbolsHandler
func NewSymbolsHandler(symbols trade.SymbolStore) *SymbolsHandler {
	return &SymbolsHandler{symbols: symbols}
}

// ListSymbols returns all watched symbols ascending by display order.
// GET /api/symbols
func (h *SymbolsHandler) ListSymbols(c *gin.Context) {
	symbols, err := h.symbols.List(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, err)
		return
	}

	response.SuccessList(c, symbols, len(symbols))
}

// UpdateOrder rewrites display positions.
// PUT /api/symbols  [{"symbol": "TSLA", "display_order": 1}, ...]
func (h *SymbolsHandler) UpdateOrder(c *gin.Context) {
	var req []trade.SymbolOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Expected an array of symbols with display_order")
		return
	}

	for _, item := range req {
		if err := trade.ValidateSymbol(item.Symbol); err != nil {
			response.BadRequest(c, "Each item must have a valid symbol")
			return
		}
	}

	updated, err := h.symbols.UpsertOrder(c.Request.Context(), req)
	if err != nil {
		response.DatabaseError(c, err)
		return
	}

	response.SuccessList(c, updated, len(updated))
}
