package gamification

import (
	"papertrade/types"

	"github.com/shopspring/decimal"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      Rarity `json:"rarity"`
}

var (
	five       = decimal.NewFromInt(5)
	ten        = decimal.NewFromInt(10)
	twentyFive = decimal.NewFromInt(25)
)

// EvaluateBadges derives the badges a portfolio state has earned. The
// check is pure: callers diff the result against already-awarded badges
// to find new unlocks.
func EvaluateBadges(view types.PortfolioView, tradeCount int) []Badge {
	var earned []Badge

	if tradeCount >= 1 {
		earned = append(earned, Badge{
			ID:          "first-trade",
			Name:        "First Trade",
			Description: "Executed a first virtual trade",
			Icon:        "rocket",
			Rarity:      RarityCommon,
		})
	}
	if len(view.Positions) >= 5 {
		earned = append(earned, Badge{
			ID:          "diversified",
			Name:        "Diversified",
			Description: "Held five or more positions at once",
			Icon:        "pie-chart",
			Rarity:      RarityUncommon,
		})
	}
	if view.ReturnPercent.GreaterThanOrEqual(five) {
		earned = append(earned, Badge{
			ID:          "gain-5",
			Name:        "On the Board",
			Description: "Reached a 5% total return",
			Icon:        "trending-up",
			Rarity:      RarityUncommon,
		})
	}
	if view.ReturnPercent.GreaterThanOrEqual(ten) {
		earned = append(earned, Badge{
			ID:          "gain-10",
			Name:        "Double Digits",
			Description: "Reached a 10% total return",
			Icon:        "award",
			Rarity:      RarityRare,
		})
	}
	if view.ReturnPercent.GreaterThanOrEqual(twentyFive) {
		earned = append(earned, Badge{
			ID:          "gain-25",
			Name:        "Market Beater",
			Description: "Reached a 25% total return",
			Icon:        "crown",
			Rarity:      RarityLegendary,
		})
	}
	return earned
}
