package quiz

import "papertrade/types"

// DefaultQuestions is the built-in five-question survey. Weights skew the
// result toward the risk-tolerance and volatility questions.
var DefaultQuestions = []types.Question{
	{
		ID:     "risk-tolerance",
		Prompt: "If your investment portfolio dropped 20% in a month, what would you do?",
		Type:   types.QuestionTypeSingle,
		Weight: 3,
		Options: []types.Option{
			{ID: "sell-immediately", Text: "Sell immediately to prevent further losses", Value: 1, Archetype: types.ArchetypeConservative},
			{ID: "sell-some", Text: "Sell some positions to reduce risk", Value: 2, Archetype: types.ArchetypeConservative},
			{ID: "hold-steady", Text: "Hold steady and wait for recovery", Value: 3, Archetype: types.ArchetypeBalanced},
			{ID: "buy-more", Text: "Buy more at the lower prices", Value: 4, Archetype: types.ArchetypeAggressive},
			{ID: "double-down", Text: "Double down with all available cash", Value: 5, Archetype: types.ArchetypeSpeculative},
		},
	},
	{
		ID:     "investment-timeline",
		Prompt: "What's your primary investment timeline?",
		Type:   types.QuestionTypeSingle,
		Weight: 2.5,
		Options: []types.Option{
			{ID: "less-than-year", Text: "Less than 1 year", Value: 1, Archetype: types.ArchetypeSpeculative},
			{ID: "one-to-three", Text: "1-3 years", Value: 2, Archetype: types.ArchetypeAggressive},
			{ID: "three-to-seven", Text: "3-7 years", Value: 3, Archetype: types.ArchetypeBalanced},
			{ID: "seven-to-fifteen", Text: "7-15 years", Value: 4, Archetype: types.ArchetypeBalanced},
			{ID: "more-than-fifteen", Text: "More than 15 years", Value: 5, Archetype: types.ArchetypeConservative},
		},
	},
	{
		ID:     "market-volatility",
		Prompt: "How do you feel about market volatility?",
		Type:   types.QuestionTypeSingle,
		Weight: 3,
		Options: []types.Option{
			{ID: "terrifying", Text: "It's terrifying - I prefer stable, predictable investments", Value: 1, Archetype: types.ArchetypeConservative},
			{ID: "concerning", Text: "It's concerning but I can handle some ups and downs", Value: 2, Archetype: types.ArchetypeConservative},
			{ID: "manageable", Text: "It's manageable if it means better long-term returns", Value: 3, Archetype: types.ArchetypeBalanced},
			{ID: "exciting", Text: "It's exciting - volatility creates opportunities", Value: 4, Archetype: types.ArchetypeAggressive},
			{ID: "thrilling", Text: "It's thrilling - I love the adrenaline rush", Value: 5, Archetype: types.ArchetypeSpeculative},
		},
	},
	{
		ID:     "research-approach",
		Prompt: "How much time do you spend researching investments?",
		Type:   types.QuestionTypeSingle,
		Weight: 2,
		Options: []types.Option{
			{ID: "minimal-research", Text: "I prefer simple, low-maintenance investments", Value: 1, Archetype: types.ArchetypeConservative},
			{ID: "basic-research", Text: "I do basic research on fundamentals", Value: 2, Archetype: types.ArchetypeBalanced},
			{ID: "thorough-research", Text: "I thoroughly research every investment", Value: 3, Archetype: types.ArchetypeBalanced},
			{ID: "deep-research", Text: "I spend hours analyzing charts and trends", Value: 4, Archetype: types.ArchetypeAggressive},
			{ID: "obsessive-research", Text: "I'm constantly researching new opportunities", Value: 5, Archetype: types.ArchetypeSpeculative},
		},
	},
	{
		ID:     "investment-goals",
		Prompt: "What's your primary investment goal?",
		Type:   types.QuestionTypeSingle,
		Weight: 2.5,
		Options: []types.Option{
			{ID: "preserve-wealth", Text: "Preserve my wealth and beat inflation", Value: 1, Archetype: types.ArchetypeConservative},
			{ID: "steady-growth", Text: "Achieve steady, consistent growth", Value: 2, Archetype: types.ArchetypeConservative},
			{ID: "balanced-growth", Text: "Balance growth with income generation", Value: 3, Archetype: types.ArchetypeBalanced},
			{ID: "maximize-returns", Text: "Maximize returns for long-term wealth building", Value: 4, Archetype: types.ArchetypeAggressive},
			{ID: "get-rich-quick", Text: "Find the next big winner and get rich quick", Value: 5, Archetype: types.ArchetypeSpeculative},
		},
	},
}

func findQuestion(questions []types.Question, id string) (types.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return types.Question{}, false
}
