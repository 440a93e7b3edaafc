package marketdata

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"papertrade/types"

	"github.com/shopspring/decimal"
)

// StaticProvider serves quotes from an in-memory table. It backs local
// development and tests, and acts as the last-resort fallback when no
// upstream provider is reachable.
type StaticProvider struct {
	mu     sync.RWMutex
	quotes map[string]types.Quote
}

func NewStaticProvider(quotes []types.Quote) *StaticProvider {
	table := make(map[string]types.Quote, len(quotes))
	for _, q := range quotes {
		table[strings.ToUpper(q.Symbol)] = q
	}
	return &StaticProvider{quotes: table}
}

// DefaultStaticQuotes is the demo symbol table used when no API keys are
// configured.
func DefaultStaticQuotes() []types.Quote {
	mk := func(symbol, name, price string) types.Quote {
		return types.Quote{
			Symbol:    symbol,
			Name:      name,
			Price:     decimal.RequireFromString(price),
			Timestamp: time.Now().UTC(),
		}
	}
	return []types.Quote{
		mk("AAPL", "Apple Inc.", "178.25"),
		mk("GOOGL", "Alphabet Inc.", "142.80"),
		mk("MSFT", "Microsoft Corporation", "415.30"),
		mk("AMZN", "Amazon.com Inc.", "185.60"),
		mk("TSLA", "Tesla Inc.", "248.75"),
		mk("NVDA", "NVIDIA Corporation", "127.40"),
		mk("SPY", "SPDR S&P 500 ETF Trust", "555.10"),
		mk("VOO", "Vanguard S&P 500 ETF", "510.45"),
		mk("QQQ", "Invesco QQQ Trust", "478.90"),
		mk("VTI", "Vanguard Total Stock Market ETF", "272.35"),
	}
}

func (s *StaticProvider) Name() string { return "static" }

func (s *StaticProvider) GetQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	s.mu.RLock()
	q, ok := s.quotes[symbol]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrQuoteNotFound)
	}

	q.Timestamp = time.Now().UTC()
	return &q, nil
}

// SetQuote upserts a quote; used by the seed tool and by tests.
func (s *StaticProvider) SetQuote(q types.Quote) {
	s.mu.Lock()
	s.quotes[strings.ToUpper(q.Symbol)] = q
	s.mu.Unlock()
}
