package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yuehongzhang001/ark/internal/api/handlers"
	"github.com/yuehongzhang001/ark/internal/api/middleware"
	"github.com/yuehongzhang001/ark/internal/pkg/config"
	"github.com/yuehongzhang001/ark/internal/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Mode    string // gin mode: debug, release, test
	Logging config.LoggingConfig

	TradesHandler  *handlers.TradesHandler
	StockHandler   *handlers.StockHandler
	NotesHandler   *handlers.NotesHandler
	SymbolsHandler *handlers.SymbolsHandler
}

// New creates the HTTP router
func New(cfg *Config) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()

	r.Use(middleware.RequestID())

	// Access logs go to their own rotated file when file logging is on;
	// otherwise they share the application logger.
	accessLogPath := ""
	if cfg.Logging.FileEnabled {
		accessLogPath = cfg.Logging.FilePath
	}
	accessLogger := logger.NewAccessLogger(
		accessLogPath,
		cfg.Logging.RotationSize,
		cfg.Logging.RetentionDays,
	)
	r.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health"},
	}))
	r.Use(middleware.Recovery())

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		api.GET("/trades", cfg.TradesHandler.GetTrades)
		api.GET("/weight", cfg.TradesHandler.GetFundOwnership)
		api.GET("/stock", cfg.StockHandler.GetDailyQuote)

		api.GET("/notes", cfg.NotesHandler.GetNote)
		api.POST("/notes", cfg.NotesHandler.SaveNote)
		api.DELETE("/notes", cfg.NotesHandler.DeleteNote)

		api.GET("/symbols", cfg.SymbolsHandler.ListSymbols)
		api.PUT("/symbols", cfg.SymbolsHandler.UpdateOrder)
	}

	return r
}
