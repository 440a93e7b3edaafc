package ledger

import (
	"testing"
	"time"

	"papertrade/types"

	"github.com/shopspring/decimal"
)

func TestSnapshot(t *testing.T) {
	starting := decimal.RequireFromString("100000")
	p := types.NewPortfolio("pf-1", "user-1", "Growth", starting)

	var err error
	p, err = Buy(p, "AAPL", "Apple Inc.", decimal.RequireFromString("10"), decimal.RequireFromString("150"))
	if err != nil {
		t.Fatal(err)
	}
	p = RefreshPrices(p, map[string]decimal.Decimal{
		"AAPL": decimal.RequireFromString("165"),
	})

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	view := Snapshot(p, starting, now)

	// cash 98500 + 10*165 = 100150
	if !view.TotalValue.Equal(decimal.RequireFromString("100150")) {
		t.Errorf("total value: got %s, want 100150", view.TotalValue)
	}
	if !view.TotalReturn.Equal(decimal.RequireFromString("150")) {
		t.Errorf("total return: got %s, want 150", view.TotalReturn)
	}
	if !view.ReturnPercent.Equal(decimal.RequireFromString("0.15")) {
		t.Errorf("return percent: got %s, want 0.15", view.ReturnPercent)
	}

	snap := view.Positions["AAPL"]
	if !snap.MarketValue.Equal(decimal.RequireFromString("1650")) {
		t.Errorf("market value: got %s, want 1650", snap.MarketValue)
	}
	if !snap.TotalReturn.Equal(decimal.RequireFromString("150")) {
		t.Errorf("position return: got %s, want 150", snap.TotalReturn)
	}
	if !snap.ReturnPercent.Equal(decimal.RequireFromString("10")) {
		t.Errorf("position return percent: got %s, want 10", snap.ReturnPercent)
	}
	if !view.Time.Equal(now) {
		t.Errorf("time: got %s, want %s", view.Time, now)
	}
}

func TestValue(t *testing.T) {
	p := types.NewPortfolio("pf-1", "user-1", "Test", decimal.RequireFromString("500"))
	p.Positions["VOO"] = &types.Position{
		Symbol:    "VOO",
		Quantity:  decimal.RequireFromString("2"),
		AvgCost:   decimal.RequireFromString("400"),
		LastPrice: decimal.RequireFromString("410"),
	}
	if got := Value(p); !got.Equal(decimal.RequireFromString("1320")) {
		t.Errorf("value: got %s, want 1320", got)
	}
}

func TestLeaderboard(t *testing.T) {
	views := []types.PortfolioView{
		{ID: "pf-b", Name: "B", TotalValue: decimal.RequireFromString("101000"), ReturnPercent: decimal.RequireFromString("1")},
		{ID: "pf-a", Name: "A", TotalValue: decimal.RequireFromString("105000"), ReturnPercent: decimal.RequireFromString("5")},
		{ID: "pf-c", Name: "C", TotalValue: decimal.RequireFromString("101000"), ReturnPercent: decimal.RequireFromString("1")},
	}

	entries := Leaderboard(views)
	wantOrder := []string{"pf-a", "pf-b", "pf-c"}
	for i, want := range wantOrder {
		if entries[i].PortfolioID != want {
			t.Errorf("rank %d: got %s, want %s", i+1, entries[i].PortfolioID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("rank field: got %d, want %d", entries[i].Rank, i+1)
		}
	}
}
