package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yuehongzhang001/ark/internal/api/handlers"
	"github.com/yuehongzhang001/ark/internal/pkg/config"
)

func newTestRouter(logging config.LoggingConfig) *gin.Engine {
	return New(&Config{
		Mode:           gin.TestMode,
		Logging:        logging,
		TradesHandler:  &handlers.TradesHandler{},
		StockHandler:   &handlers.StockHandler{},
		NotesHandler:   &handlers.NotesHandler{},
		SymbolsHandler: &handlers.SymbolsHandler{},
	})
}

func TestRouterMiddlewareChain(t *testing.T) {
	r := newTestRouter(config.LoggingConfig{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterAccessLogFile(t *testing.T) {
	dir := t.TempDir()
	r := newTestRouter(config.LoggingConfig{
		FileEnabled:   true,
		FilePath:      dir,
		RotationSize:  10,
		RetentionDays: 7,
	})

	// /health is a skip path; any other request must land in access.log.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	data, err := os.ReadFile(filepath.Join(dir, "access.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"path":"/missing"`)
}
