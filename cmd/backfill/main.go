package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
	"github.com/yuehongzhang001/ark/internal/infra/database/postgres"
	"github.com/yuehongzhang001/ark/internal/infra/yahoo"
	"github.com/yuehongzhang001/ark/internal/pkg/config"
	"github.com/yuehongzhang001/ark/internal/pkg/dateutil"
	"github.com/yuehongzhang001/ark/internal/pkg/logger"
	"github.com/yuehongzhang001/ark/internal/service/enrich"
)

const (
	serviceName    = "ark-backfill"
	serviceVersion = "1.0.0"
)

var (
	flagFrom string
	flagTo   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backfill",
		Short: "Backfill and maintain the daily close price store",
	}

	pricesCmd := &cobra.Command{
		Use:   "prices <symbol>",
		Short: "Fetch and persist daily closes for a symbol over a date range",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrices,
	}
	pricesCmd.Flags().StringVar(&flagFrom, "from", "", "start date (YYYY-MM-DD), inclusive")
	pricesCmd.Flags().StringVar(&flagTo, "to", "", "end date (YYYY-MM-DD), inclusive")
	pricesCmd.MarkFlagRequired("from")
	pricesCmd.MarkFlagRequired("to")

	purgeCmd := &cobra.Command{
		Use:   "purge <symbol>",
		Short: "Delete all persisted closes for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE:  runPurge,
	}

	rootCmd.AddCommand(pricesCmd, purgeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, initializes logging, and connects to the database.
func setup(ctx context.Context) (*config.Config, *postgres.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return cfg, pool, nil
}

func runPrices(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	from, err := dateutil.ToDateKey(flagFrom)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := dateutil.ToDateKey(flagTo)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	if from > to {
		return fmt.Errorf("--from %s is after --to %s", from, to)
	}

	ctx := cmd.Context()
	cfg, pool, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	priceRepo := postgres.NewPriceRepository(pool)
	provider := yahoo.NewClient(cfg.Yahoo.BaseURL)
	svc := enrich.NewService(priceRepo, provider, &enrich.Config{
		MaxConcurrent: cfg.Enrich.MaxConcurrent,
	})

	// One synthetic trade per calendar day drives the resolver over the
	// whole range. Store hits are skipped, misses are fetched and persisted.
	var trades []trade.Trade
	for day := from; day <= to; {
		trades = append(trades, trade.Trade{Date: day, Ticker: symbol})
		next, err := dateutil.AddDays(day, 1)
		if err != nil {
			return fmt.Errorf("advance date %s: %w", day, err)
		}
		day = next
	}

	log.Info().
		Str("symbol", symbol).
		Str("from", from).
		Str("to", to).
		Int("days", len(trades)).
		Msg("🚀 Starting close price backfill")

	enriched, err := svc.ResolveClosePrices(ctx, symbol, trades)
	if err != nil {
		return fmt.Errorf("backfill %s: %w", symbol, err)
	}

	resolved := 0
	for _, t := range enriched {
		if t.Close != nil {
			resolved++
		}
	}

	log.Info().
		Str("symbol", symbol).
		Int("resolved", resolved).
		Int("unresolved", len(enriched)-resolved).
		Msg("✅ Backfill complete")

	return nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	ctx := cmd.Context()
	_, pool, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	priceRepo := postgres.NewPriceRepository(pool)
	if err := priceRepo.DeleteBySymbol(ctx, symbol); err != nil {
		return fmt.Errorf("purge %s: %w", symbol, err)
	}

	log.Info().Str("symbol", symbol).Msg("✅ Purged persisted closes")
	return nil
}
