package ledger

import (
	"sort"
	"time"

	"papertrade/types"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Snapshot derives the read-only view of a portfolio: per-position market
// values and returns plus the aggregate totals. Total return is measured
// against the starting cash balance.
func Snapshot(p *types.Portfolio, startingCash decimal.Decimal, now time.Time) types.PortfolioView {
	view := types.PortfolioView{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Cash:      p.Cash,
		Positions: make(map[string]types.PositionSnapshot, len(p.Positions)),
		Time:      now,
	}

	total := p.Cash
	for sym, pos := range p.Positions {
		marketValue := pos.MarketValue()
		total = total.Add(marketValue)

		snap := types.PositionSnapshot{
			Symbol:      pos.Symbol,
			Name:        pos.Name,
			Quantity:    pos.Quantity,
			AvgCost:     pos.AvgCost,
			LastPrice:   pos.LastPrice,
			MarketValue: marketValue,
			TotalReturn: pos.UnrealizedReturn(),
		}
		if pos.AvgCost.IsPositive() {
			snap.ReturnPercent = pos.LastPrice.Sub(pos.AvgCost).Div(pos.AvgCost).Mul(hundred)
		}
		view.Positions[sym] = snap
	}

	view.TotalValue = total
	view.TotalReturn = total.Sub(startingCash)
	if startingCash.IsPositive() {
		view.ReturnPercent = view.TotalReturn.Div(startingCash).Mul(hundred)
	}
	return view
}

// Value is cash plus the market value of every position.
func Value(p *types.Portfolio) decimal.Decimal {
	value := p.Cash
	for _, pos := range p.Positions {
		value = value.Add(pos.MarketValue())
	}
	return value
}

// LeaderboardEntry ranks one portfolio by total return percent.
type LeaderboardEntry struct {
	Rank          int             `json:"rank"`
	PortfolioID   string          `json:"portfolioId"`
	UserID        string          `json:"userId"`
	Name          string          `json:"name"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	TotalReturn   decimal.Decimal `json:"totalReturn"`
	ReturnPercent decimal.Decimal `json:"returnPercent"`
}

// Leaderboard orders portfolio views by return percent, best first. Ties
// fall back to total value, then to portfolio id so the order is stable.
func Leaderboard(views []types.PortfolioView) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(views))
	for _, v := range views {
		entries = append(entries, LeaderboardEntry{
			PortfolioID:   v.ID,
			UserID:        v.UserID,
			Name:          v.Name,
			TotalValue:    v.TotalValue,
			TotalReturn:   v.TotalReturn,
			ReturnPercent: v.ReturnPercent,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ReturnPercent.Equal(entries[j].ReturnPercent) {
			return entries[i].ReturnPercent.GreaterThan(entries[j].ReturnPercent)
		}
		if !entries[i].TotalValue.Equal(entries[j].TotalValue) {
			return entries[i].TotalValue.GreaterThan(entries[j].TotalValue)
		}
		return entries[i].PortfolioID < entries[j].PortfolioID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
