package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a single-symbol holding inside a Portfolio.
type Position struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	AvgCost   decimal.Decimal `json:"avgCost"`
	LastPrice decimal.Decimal `json:"lastPrice"`
}

// MarketValue is quantity * last known price.
func (p Position) MarketValue() decimal.Decimal {
	return p.Quantity.Mul(p.LastPrice)
}

// UnrealizedReturn is quantity * (last price - average cost).
func (p Position) UnrealizedReturn() decimal.Decimal {
	return p.LastPrice.Sub(p.AvgCost).Mul(p.Quantity)
}

// Portfolio is the aggregate of virtual cash and positions for one user.
// It is only ever mutated through the ledger transforms, which return a
// fresh value and leave the input untouched.
type Portfolio struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Name      string               `json:"name"`
	Cash      decimal.Decimal      `json:"cash"`
	Positions map[string]*Position `json:"positions"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func NewPortfolio(id, userID, name string, startingCash decimal.Decimal) *Portfolio {
	now := time.Now().UTC()
	return &Portfolio{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Cash:      startingCash,
		Positions: make(map[string]*Position),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone deep-copies the portfolio so ledger transforms can build the next
// state without sharing position pointers with the previous one.
func (p *Portfolio) Clone() *Portfolio {
	out := *p
	out.Positions = make(map[string]*Position, len(p.Positions))
	for sym, pos := range p.Positions {
		cp := *pos
		out.Positions[sym] = &cp
	}
	return &out
}

// PortfolioView is a read-only snapshot handed to reporting and the API.
type PortfolioView struct {
	ID            string                      `json:"id"`
	UserID        string                      `json:"userId"`
	Name          string                      `json:"name"`
	Cash          decimal.Decimal             `json:"cash"`
	TotalValue    decimal.Decimal             `json:"totalValue"`
	TotalReturn   decimal.Decimal             `json:"totalReturn"`
	ReturnPercent decimal.Decimal             `json:"returnPercent"`
	Positions     map[string]PositionSnapshot `json:"positions"`
	Time          time.Time                   `json:"time"`
}

type PositionSnapshot struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	AvgCost       decimal.Decimal `json:"avgCost"`
	LastPrice     decimal.Decimal `json:"lastPrice"`
	MarketValue   decimal.Decimal `json:"marketValue"`
	TotalReturn   decimal.Decimal `json:"totalReturn"`
	ReturnPercent decimal.Decimal `json:"returnPercent"`
}
