package repository

import (
	"context"
	"errors"
	"fmt"

	"papertrade/types"

	"github.com/jackc/pgx/v5"
)

// UpsertSymbol inserts or refreshes one tradable symbol.
func (db *Database) UpsertSymbol(symbol, name string, quote types.Quote, ctx context.Context) error {
	return db.symbols.UpsertSymbol(ctx, symbolRow{
		Ticker: symbol,
		Name:   name,
		Price:  quote.Price,
	})
}

// GetSymbol looks up one tradable symbol.
func (db *Database) GetSymbol(ticker string, ctx context.Context) (types.Quote, error) {
	row, err := db.symbols.GetSymbol(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Quote{}, fmt.Errorf("symbol %s: %w", ticker, ErrSymbolNotFound)
		}
		return types.Quote{}, err
	}
	return types.Quote{
		Symbol: row.Ticker,
		Name:   row.Name,
		Price:  row.Price,
	}, nil
}

// ListSymbols returns the tradable universe as lightweight quotes.
func (db *Database) ListSymbols(ctx context.Context) ([]types.Quote, error) {
	rows, err := db.symbols.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Quote, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.Quote{
			Symbol: row.Ticker,
			Name:   row.Name,
			Price:  row.Price,
		})
	}
	return out, nil
}
