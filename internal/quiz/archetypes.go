package quiz

import "papertrade/types"

// Profiles holds the descriptive metadata for each archetype, keyed by id.
var Profiles = map[types.Archetype]types.ArchetypeProfile{
	types.ArchetypeConservative: {
		ID:          types.ArchetypeConservative,
		Name:        "The Steady Builder",
		Title:       "Conservative Investor",
		Description: "You prefer slow and steady growth with minimal risk. Your approach is methodical and focuses on long-term wealth building.",
		Characteristics: []string{
			"Risk-averse with a focus on capital preservation",
			"Prefers diversified, stable investments",
			"Values consistent, predictable returns",
			"Takes time to research before investing",
		},
		Strengths: []string{
			"Excellent at avoiding major losses",
			"Disciplined approach to investing",
			"Strong focus on fundamentals",
			"Patient with long-term strategies",
		},
		Recommendations: []string{
			"Start with broad market ETFs (S&P 500, Total Stock Market)",
			"Consider bond funds for stability",
			"Dollar-cost average into investments",
			"Focus on companies with strong dividends",
		},
		Icon:  "shield",
		Color: "blue",
	},
	types.ArchetypeBalanced: {
		ID:          types.ArchetypeBalanced,
		Name:        "The Strategic Player",
		Title:       "Balanced Investor",
		Description: "You seek a healthy balance between growth potential and risk management. You're willing to take calculated risks for better returns.",
		Characteristics: []string{
			"Balances growth and income investments",
			"Comfortable with moderate market volatility",
			"Seeks diversification across asset classes",
			"Regularly rebalances portfolio",
		},
		Strengths: []string{
			"Good at managing risk vs. reward",
			"Flexible investment approach",
			"Strong portfolio diversification",
			"Adapts well to market changes",
		},
		Recommendations: []string{
			"Mix of growth and value stocks",
			"Combine individual stocks with ETFs",
			"Include some international exposure",
			"Rebalance quarterly",
		},
		Icon:  "scales",
		Color: "purple",
	},
	types.ArchetypeAggressive: {
		ID:          types.ArchetypeAggressive,
		Name:        "The Growth Hunter",
		Title:       "Aggressive Investor",
		Description: "You seek high-growth opportunities and are willing to accept volatility for potentially higher returns.",
		Characteristics: []string{
			"High risk tolerance",
			"Growth-focused strategy",
			"Comfortable with concentrated positions",
			"Long investment horizon",
		},
		Strengths: []string{
			"Captures strong market upside",
			"Conviction in research-backed picks",
			"Unfazed by short-term swings",
			"Spots emerging trends early",
		},
		Recommendations: []string{
			"Growth stocks in expanding sectors",
			"Small and mid-cap exposure",
			"Keep a cash buffer for dips",
			"Size positions to survive drawdowns",
		},
		Icon:  "trending-up",
		Color: "green",
	},
	types.ArchetypeSpeculative: {
		ID:          types.ArchetypeSpeculative,
		Name:        "The Opportunity Seeker",
		Title:       "Speculative Investor",
		Description: "You chase asymmetric opportunities and thrive on volatility. You accept that big swings cut both ways.",
		Characteristics: []string{
			"Very high risk tolerance",
			"Short holding periods",
			"Momentum and catalyst driven",
			"Always scanning for the next opportunity",
		},
		Strengths: []string{
			"Quick to act on new information",
			"Comfortable with uncertainty",
			"High energy for market research",
			"Learns fast from wins and losses",
		},
		Recommendations: []string{
			"Cap speculative bets at a fixed slice of the portfolio",
			"Use a core of index funds as ballast",
			"Predefine exit points before entering",
			"Track every trade to learn from outcomes",
		},
		Icon:  "zap",
		Color: "red",
	},
}

// ConfidenceLevel bands a confidence percentage into the label shown
// alongside a result.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 80:
		return "Very High"
	case confidence >= 60:
		return "High"
	case confidence >= 40:
		return "Moderate"
	case confidence >= 20:
		return "Low"
	default:
		return "Very Low"
	}
}
