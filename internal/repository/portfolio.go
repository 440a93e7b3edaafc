package repository

import (
	"context"
	"errors"
	"fmt"

	"papertrade/types"

	"github.com/jackc/pgx/v5"
)

// GetPortfolio retrieves a portfolio with its full position set.
func (db *Database) GetPortfolio(id string, ctx context.Context) (*types.Portfolio, error) {
	row, err := db.portfolios.GetPortfolio(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("portfolio %s: %w", id, ErrPortfolioNotFound)
		}
		return nil, err
	}
	positions, err := db.portfolios.ListPositions(ctx, id)
	if err != nil {
		return nil, err
	}
	return convertPortfolio(row, positions), nil
}

// ListPortfolios returns every portfolio with positions attached; used by
// the leaderboard.
func (db *Database) ListPortfolios(ctx context.Context) ([]*types.Portfolio, error) {
	rows, err := db.portfolios.ListPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Portfolio, 0, len(rows))
	for _, row := range rows {
		positions, err := db.portfolios.ListPositions(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, convertPortfolio(row, positions))
	}
	return out, nil
}

// CreatePortfolio persists a freshly opened portfolio. The cash balance at
// creation time is recorded as the starting cash used for return math.
func (db *Database) CreatePortfolio(p *types.Portfolio, ctx context.Context) error {
	return db.portfolios.InsertPortfolio(ctx, portfolioRow{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		Cash:         p.Cash,
		StartingCash: p.Cash,
		CreatedAt:    p.CreatedAt,
		ModifiedAt:   p.UpdatedAt,
	})
}

// SavePortfolio stores the post-trade portfolio state. The trade may be nil
// for price refreshes.
func (db *Database) SavePortfolio(p *types.Portfolio, trade *types.TradeRecord, ctx context.Context) error {
	row := portfolioRow{
		ID:         p.ID,
		UserID:     p.UserID,
		Name:       p.Name,
		Cash:       p.Cash,
		ModifiedAt: p.UpdatedAt,
	}
	positions := make([]positionRow, 0, len(p.Positions))
	for _, pos := range p.Positions {
		positions = append(positions, positionRow{
			PortfolioID: p.ID,
			Symbol:      pos.Symbol,
			Name:        pos.Name,
			Quantity:    pos.Quantity,
			AvgCost:     pos.AvgCost,
			LastPrice:   pos.LastPrice,
		})
	}

	var tr *tradeRow
	if trade != nil {
		tr = &tradeRow{
			PortfolioID: trade.PortfolioID,
			Symbol:      trade.Symbol,
			Side:        string(trade.Side),
			Quantity:    trade.Quantity,
			Price:       trade.Price,
			ExecutedAt:  trade.ExecutedAt,
		}
	}
	return db.portfolios.SavePortfolio(ctx, row, positions, tr)
}

// ListTrades returns the trade log for one portfolio, oldest first.
func (db *Database) ListTrades(portfolioID string, ctx context.Context) ([]types.TradeRecord, error) {
	rows, err := db.portfolios.ListTrades(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	out := make([]types.TradeRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.TradeRecord{
			ID:          row.ID,
			PortfolioID: row.PortfolioID,
			Symbol:      row.Symbol,
			Side:        types.Side(row.Side),
			Quantity:    row.Quantity,
			Price:       row.Price,
			ExecutedAt:  row.ExecutedAt,
		})
	}
	return out, nil
}

func convertPortfolio(row portfolioRow, positions []positionRow) *types.Portfolio {
	p := &types.Portfolio{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Cash:      row.Cash,
		Positions: make(map[string]*types.Position, len(positions)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.ModifiedAt,
	}
	for _, pos := range positions {
		p.Positions[pos.Symbol] = &types.Position{
			Symbol:    pos.Symbol,
			Name:      pos.Name,
			Quantity:  pos.Quantity,
			AvgCost:   pos.AvgCost,
			LastPrice: pos.LastPrice,
		}
	}
	return p
}
