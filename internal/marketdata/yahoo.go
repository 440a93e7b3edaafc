package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"papertrade/types"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// YahooProvider fetches quotes from Yahoo Finance. No API key required.
type YahooProvider struct{}

func NewYahooProvider() *YahooProvider { return &YahooProvider{} }

func (y *YahooProvider) Name() string { return "yahoo" }

func (y *YahooProvider) GetQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, ErrQuoteNotFound)
	}

	name := q.ShortName
	if name == "" {
		name = symbol
	}

	return &types.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         decimal.NewFromFloat(q.RegularMarketPrice),
		Change:        decimal.NewFromFloat(q.RegularMarketChange),
		ChangePercent: decimal.NewFromFloat(q.RegularMarketChangePercent),
		Volume:        int64(q.RegularMarketVolume),
		Timestamp:     time.Now().UTC(),
	}, nil
}
