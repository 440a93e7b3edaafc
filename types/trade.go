package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)

// TradeRecord is one executed buy or sell, kept for the activity log.
type TradeRecord struct {
	ID          int             `json:"id"`
	PortfolioID string          `json:"portfolioId"`
	Symbol      string          `json:"symbol"`
	Side        Side            `json:"side"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ExecutedAt  time.Time       `json:"executedAt"`
}

// Notional is quantity * price: the exact cash moved by the trade.
func (t TradeRecord) Notional() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}
