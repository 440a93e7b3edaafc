package marketdata

import (
	"context"
	"errors"

	"papertrade/types"
)

var (
	ErrQuoteNotFound  = errors.New("no quote for symbol")
	ErrEmptySymbol    = errors.New("symbol must not be empty")
	ErrNoProviders    = errors.New("no quote providers configured")
	ErrProviderFailed = errors.New("all quote providers failed")
)

// Provider delivers a current price snapshot for one symbol. Implementations
// are expected to be safe for concurrent use.
type Provider interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (*types.Quote, error)
}
