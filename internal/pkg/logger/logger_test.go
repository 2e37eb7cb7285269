package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestNewAccessLogger(t *testing.T) {
	t.Run("writes to access.log in the given directory", func(t *testing.T) {
		dir := t.TempDir()

		accessLogger := NewAccessLogger(dir, 10, 7)
		accessLogger.Info().
			Str("method", "GET").
			Str("path", "/api/trades").
			Int("status", 200).
			Msg("← Request completed")

		data, err := os.ReadFile(filepath.Join(dir, "access.log"))
		assert.NoError(t, err)

		line := string(data)
		assert.Contains(t, line, `"type":"access"`)
		assert.Contains(t, line, `"path":"/api/trades"`)
	})

	t.Run("empty path falls back to the global logger", func(t *testing.T) {
		accessLogger := NewAccessLogger("", 10, 7)
		assert.Equal(t, log.Logger, accessLogger)
	})

	t.Run("creates nested log directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs", "api")

		accessLogger := NewAccessLogger(dir, 10, 7)
		accessLogger.Info().Msg("nested dir entry")

		data, err := os.ReadFile(filepath.Join(dir, "access.log"))
		assert.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "nested dir entry"))
	})
}
