package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuehongzhang001/ark/internal/api/response"
	"github.com/yuehongzhang001/ark/internal/domain/trade"
)

// NotesHandler handles symbol-note HTTP requests
type NotesHandler struct {
	notes trade.NoteStore
}

// NewNotesHandler creates a new NotesHandler
func NewNotesHandler(notes trade.NoteStore) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// GetNote returns the note for a symbol. A missing note is an empty note,
// not a 404.
// GET /api/notes?symbol=TSLA
func (h *NotesHandler) GetNote(c *gin.Context) {
	symbol := c.Query("symbol")
	if err := trade.ValidateSymbol(symbol); err != nil {
		response.BadRequest(c, "A valid symbol is required")
		return
	}

	note, err := h.notes.Get(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, trade.ErrNoteNotFound) {
			response.Success(c, gin.H{"symbol": symbol, "note": ""})
			return
		}
		response.DatabaseError(c, err)
		return
	}

	response.Success(c, gin.H{"symbol": note.Symbol, "note": note.Note})
}

// SaveNote inserts or replaces the note for a symbol.
// POST /api/notes  {"symbol": "TSLA", "note": "..."}
func (h *NotesHandler) SaveNote(c *gin.Context) {
	var req struct {
		Symbol string `json:"symbol" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Symbol is required")
		return
	}
	if err := trade.ValidateSymbol(req.Symbol); err != nil {
		response.BadRequest(c, "Invalid symbol")
		return
	}

	note, err := h.notes.Upsert(c.Request.Context(), req.Symbol, req.Note)
	if err != nil {
		response.DatabaseError(c, err)
		return
	}

	response.Success(c, gin.H{"symbol": note.Symbol, "note": note.Note})
}

// DeleteNote removes the note for a symbol.
// DELETE /api/notes?symbol=TSLA
func (h *NotesHandler) DeleteNote(c *gin.Context) {
	symbol := c.Query("symbol")
	if err := trade.ValidateSymbol(symbol); err != nil {
		response.BadRequest(c, "A valid symbol is required")
		return
	}

	if err := h.notes.Delete(c.Request.Context(), symbol); err != nil {
		response.DatabaseError(c, err)
		return
	}

	response.SuccessWithMessage(c, nil, "Note deleted successfully")
}
