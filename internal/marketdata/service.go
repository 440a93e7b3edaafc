package marketdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"papertrade/types"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
)

const defaultCacheSize = 256

// ServiceConfig tunes caching and upstream pacing.
type ServiceConfig struct {
	CacheTTL    time.Duration // how long a cached quote stays fresh
	CacheSize   int           // max cached symbols
	MinInterval time.Duration // minimum gap between upstream calls
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		CacheTTL:    5 * time.Minute,
		CacheSize:   defaultCacheSize,
		MinInterval: time.Second,
	}
}

// Service resolves quotes through an ordered provider chain with a TTL
// cache in front and a minimum interval between upstream calls. It is an
// explicit object handed to its consumers, so tests can construct one over
// a fake provider with no package-level state involved.
type Service struct {
	providers []Provider
	cache     *expirable.LRU[string, *types.Quote]
	logger    *slog.Logger

	mu       sync.Mutex
	lastCall time.Time
	minGap   time.Duration
}

func NewService(cfg ServiceConfig, logger *slog.Logger, providers ...Provider) (*Service, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	return &Service{
		providers: providers,
		cache:     expirable.NewLRU[string, *types.Quote](cfg.CacheSize, nil, cfg.CacheTTL),
		logger:    logger,
		minGap:    cfg.MinInterval,
	}, nil
}

// GetQuote returns a quote for symbol, serving from cache when fresh and
// walking the provider chain otherwise. The first provider to answer wins;
// failures are logged and the next provider is tried.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	if q, ok := s.cache.Get(symbol); ok {
		return q, nil
	}

	s.throttle()

	var errs []error
	for _, p := range s.providers {
		q, err := p.GetQuote(ctx, symbol)
		if err != nil {
			s.logger.Warn("quote provider failed",
				"provider", p.Name(),
				"symbol", symbol,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		s.cache.Add(symbol, q)
		return q, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrProviderFailed, errors.Join(errs...))
}

// GetQuotes fetches several symbols, skipping the ones no provider can
// resolve. Callers refreshing a portfolio want whatever prices exist, not
// an all-or-nothing failure.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		q, err := s.GetQuote(ctx, sym)
		if err != nil {
			if errors.Is(err, ErrEmptySymbol) {
				return nil, err
			}
			continue
		}
		prices[q.Symbol] = q.Price
	}
	return prices, nil
}

// throttle enforces the minimum gap between upstream calls.
func (s *Service) throttle() {
	if s.minGap <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if wait := s.minGap - time.Since(s.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	s.lastCall = time.Now()
}
