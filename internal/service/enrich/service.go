// Package enrich implements the tiered close-price resolution pipeline:
// persisted store first, external provider for the dates the store does not
// know, then write-back so future requests avoid the external call.
package enrich

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
	"github.com/yuehongzhang001/ark/internal/pkg/dateutil"
)

// Config holds resolver settings.
type Config struct {
	// MaxConcurrent bounds the parallel provider fetches per resolution,
	// to respect the provider's rate limits.
	MaxConcurrent int
}

// DefaultConfig returns default settings.
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrent: 4,
	}
}

// Service resolves closing prices for trade lists.
type Service struct {
	store    trade.PriceStore
	provider trade.QuoteProvider
	config   *Config

	// Coalesces concurrent provider calls for the same (symbol, day)
	// across resolutions.
	group singleflight.Group
}

// NewService creates a new resolver service.
func NewService(store trade.PriceStore, provider trade.QuoteProvider, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 1
	}
	return &Service{
		store:    store,
		provider: provider,
		config:   config,
	}
}

// ResolveClosePrices returns the input trades with Close populated where a
// closing price could be resolved. The returned list has the same length
// and order as the input. Store and provider failures degrade to "fewer
// trades priced" and never abort the call; the only fatal error is a trade
// date that cannot be normalized, since the date range would be undefined.
func (s *Service) ResolveClosePrices(ctx context.Context, symbol string, trades []trade.Trade) ([]trade.Trade, error) {
	if len(trades) == 0 {
		return []trade.Trade{}, nil
	}

	// Normalize every trade date once; min/max on the canonical keys is a
	// plain string compare because the format is fixed-width.
	keys := make([]string, len(trades))
	for i, t := range trades {
		key, err := dateutil.ToDateKey(t.Date)
		if err != nil {
			return nil, fmt.Errorf("normalize trade date: %w", err)
		}
		keys[i] = key
	}

	minKey, maxKey := keys[0], keys[0]
	for _, key := range keys[1:] {
		if key < minKey {
			minKey = key
		}
		if key > maxKey {
			maxKey = key
		}
	}

	log.Debug().
		Str("symbol", symbol).
		Str("from", minKey).
		Str("to", maxKey).
		Int("trades", len(trades)).
		Msg("Resolving close prices")

	// Tier 1: one range query against the store. A read failure is a
	// warning, not an abort; the provider tier covers everything.
	priceMap := make(map[string]decimal.Decimal)
	points, err := s.store.GetRange(ctx, symbol, minKey, maxKey)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("Price store read failed, falling back to provider")
	} else {
		for _, p := range points {
			key, err := dateutil.ToDateKey(p.Date)
			if err != nil {
				log.Warn().Str("symbol", symbol).Str("date", p.Date).Msg("Skipping stored point with bad date")
				continue
			}
			priceMap[key] = p.Price
		}
	}

	// First pass: fill from the store.
	enriched := make([]trade.Trade, len(trades))
	copy(enriched, trades)
	for i := range enriched {
		if price, ok := priceMap[keys[i]]; ok {
			p := price
			enriched[i].Close = &p
		}
	}

	// Distinct dates still unpriced. Multiple trades share dates; each
	// missing date goes to the provider at most once.
	seen := make(map[string]struct{})
	var missing []string
	for i := range enriched {
		if enriched[i].Close != nil {
			continue
		}
		if _, dup := seen[keys[i]]; dup {
			continue
		}
		seen[keys[i]] = struct{}{}
		missing = append(missing, keys[i])
	}

	if len(missing) == 0 {
		return enriched, nil
	}

	log.Debug().
		Str("symbol", symbol).
		Int("missing_dates", len(missing)).
		Msg("Fetching missing dates from provider")

	// Tier 2: per-date provider fetches, failures isolated per date.
	fetched := s.fetchMissing(ctx, symbol, missing)
	if len(fetched) == 0 {
		return enriched, nil
	}

	// Write-back. Dedup by (symbol, date) before the upsert; the missing
	// set is already distinct, this is the safety net for the store's
	// uniqueness invariant.
	dedup := make(map[string]struct{}, len(fetched))
	pointsToUpsert := make([]trade.PricePoint, 0, len(fetched))
	now := time.Now()
	for day, price := range fetched {
		if _, dup := dedup[day]; dup {
			continue
		}
		dedup[day] = struct{}{}
		pointsToUpsert = append(pointsToUpsert, trade.PricePoint{
			Symbol: symbol,
			Date:   day,
			Price:  price,
			TS:     now,
		})
	}
	sort.Slice(pointsToUpsert, func(i, j int) bool {
		return pointsToUpsert[i].Date < pointsToUpsert[j].Date
	})

	if _, err := s.store.UpsertBatch(ctx, pointsToUpsert); err != nil {
		// The caller still gets correct prices for this call.
		log.Warn().Err(err).Str("symbol", symbol).Int("points", len(pointsToUpsert)).Msg("Price store write-back failed")
	}

	// Second pass: fill from the provider results. Trades whose date
	// resolved at neither tier keep Close nil; that is a valid terminal
	// state, not an error.
	for i := range enriched {
		if enriched[i].Close != nil {
			continue
		}
		if price, ok := fetched[keys[i]]; ok {
			p := price
			enriched[i].Close = &p
		}
	}

	return enriched, nil
}

// fetchMissing fetches each day's close from the provider with bounded
// concurrency. Per-date failures are logged and skipped.
func (s *Service) fetchMissing(ctx context.Context, symbol string, days []string) map[string]decimal.Decimal {
	var mu sync.Mutex
	fetched := make(map[string]decimal.Decimal, len(days))

	sem := make(chan struct{}, s.config.MaxConcurrent)
	var wg sync.WaitGroup

	for _, day := range days {
		wg.Add(1)
		go func(day string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			price, ok, err := s.dailyClose(ctx, symbol, day)
			if err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Str("date", day).Msg("Provider fetch failed")
				return
			}
			if !ok {
				log.Debug().Str("symbol", symbol).Str("date", day).Msg("No close for date (market closed?)")
				return
			}

			mu.Lock()
			fetched[day] = price
			mu.Unlock()
		}(day)
	}

	wg.Wait()
	return fetched
}

type closeResult struct {
	price decimal.Decimal
	ok    bool
}

// dailyClose coalesces concurrent provider calls for the same symbol and
// day. Two requests resolving the same missing date share one fetch.
func (s *Service) dailyClose(ctx context.Context, symbol, day string) (decimal.Decimal, bool, error) {
	v, err, _ := s.group.Do(symbol+"|"+day, func() (interface{}, error) {
		price, ok, err := s.provider.DailyClose(ctx, symbol, day)
		if err != nil {
			return nil, err
		}
		return closeResult{price: price, ok: ok}, nil
	})
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	r := v.(closeResult)
	return r.price, r.ok, nil
}
