package ledger

import (
	"errors"
	"time"

	"papertrade/types"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidPrice       = errors.New("price must be positive")
	ErrInsufficientFunds  = errors.New("insufficient cash for buy")
	ErrInsufficientShares = errors.New("sell exceeds held quantity")
	ErrPositionNotFound   = errors.New("no position for symbol")
)

// Buy purchases quantity of symbol at price against the portfolio's cash.
// It returns a new portfolio value and never mutates the input, so a failed
// call leaves the caller's state exactly as it was. Scaling into an existing
// position recomputes the average cost as the weighted average of the prior
// basis and the new purchase.
func Buy(p *types.Portfolio, symbol, name string, quantity, price decimal.Decimal) (*types.Portfolio, error) {
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	cost := quantity.Mul(price)
	if cost.GreaterThan(p.Cash) {
		return nil, ErrInsufficientFunds
	}

	out := p.Clone()
	out.Cash = out.Cash.Sub(cost)

	pos := out.Positions[symbol]
	if pos == nil {
		out.Positions[symbol] = &types.Position{
			Symbol:    symbol,
			Name:      name,
			Quantity:  quantity,
			AvgCost:   price,
			LastPrice: price,
		}
	} else {
		pos.AvgCost = weightedAvg(pos.AvgCost, pos.Quantity, price, quantity)
		pos.Quantity = pos.Quantity.Add(quantity)
		pos.LastPrice = price
	}
	out.UpdatedAt = time.Now().UTC()
	return out, nil
}

// Sell disposes of quantity of symbol at price. Selling the full held
// quantity removes the position; a partial sell leaves the average cost
// untouched, per standard average-cost accounting.
func Sell(p *types.Portfolio, symbol string, quantity, price decimal.Decimal) (*types.Portfolio, error) {
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	pos, ok := p.Positions[symbol]
	if !ok {
		return nil, ErrPositionNotFound
	}
	if quantity.GreaterThan(pos.Quantity) {
		return nil, ErrInsufficientShares
	}

	out := p.Clone()
	out.Cash = out.Cash.Add(quantity.Mul(price))

	remaining := pos.Quantity.Sub(quantity)
	if remaining.IsZero() {
		delete(out.Positions, symbol)
	} else {
		sold := out.Positions[symbol]
		sold.Quantity = remaining
		sold.LastPrice = price
	}
	out.UpdatedAt = time.Now().UTC()
	return out, nil
}

// RefreshPrices updates each held position's last price from the supplied
// map. Symbols without an entry are left unchanged. No failure mode.
func RefreshPrices(p *types.Portfolio, prices map[string]decimal.Decimal) *types.Portfolio {
	out := p.Clone()
	for sym, pos := range out.Positions {
		if price, ok := prices[sym]; ok {
			pos.LastPrice = price
		}
	}
	return out
}

func weightedAvg(existingAvgPrice, existingQty, newPrice, newQty decimal.Decimal) decimal.Decimal {
	if existingQty.IsZero() {
		return newPrice
	}
	return existingAvgPrice.Mul(existingQty).
		Add(newPrice.Mul(newQty)).
		Div(existingQty.Add(newQty))
}
