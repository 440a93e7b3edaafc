package gamification

import "errors"

var ErrUnknownAction = errors.New("unknown xp action")

// Reward is the XP granted for one user action.
type Reward struct {
	Action      string `json:"action"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// rewards is the fixed XP table for user actions.
var rewards = map[string]Reward{
	"quiz_completed":      {"quiz_completed", 100, "Completed investment archetype quiz"},
	"portfolio_created":   {"portfolio_created", 50, "Created first portfolio"},
	"first_trade":         {"first_trade", 75, "Made first virtual trade"},
	"daily_login":         {"daily_login", 10, "Daily login streak"},
	"position_added":      {"position_added", 25, "Added new position to portfolio"},
	"portfolio_positive":  {"portfolio_positive", 50, "Portfolio reached positive returns"},
	"milestone_5percent":  {"milestone_5percent", 100, "Portfolio gained 5% return"},
	"milestone_10percent": {"milestone_10percent", 200, "Portfolio gained 10% return"},
	"milestone_25percent": {"milestone_25percent", 500, "Portfolio gained 25% return"},
	"diversification_5":   {"diversification_5", 75, "Diversified portfolio with 5+ positions"},
	"week_streak":         {"week_streak", 150, "Maintained 7-day login streak"},
	"month_streak":        {"month_streak", 500, "Maintained 30-day login streak"},
	"retake_quiz":         {"retake_quiz", 50, "Retook archetype quiz"},
	"share_result":        {"share_result", 25, "Shared quiz result on social media"},
}

// RewardFor looks up the XP reward for an action.
func RewardFor(action string) (Reward, error) {
	r, ok := rewards[action]
	if !ok {
		return Reward{}, ErrUnknownAction
	}
	return r, nil
}

// Level describes one rung of the progression ladder.
type Level struct {
	Level    int      `json:"level"`
	Title    string   `json:"title"`
	MinXP    int      `json:"minXp"`
	MaxXP    int      `json:"maxXp"`
	Benefits []string `json:"benefits"`
}

var levels = []Level{
	{1, "Rookie Investor", 0, 999, []string{"Access to basic portfolio features", "Quiz archetype results"}},
	{2, "Apprentice Trader", 1000, 2499, []string{"Unlock advanced charts", "Portfolio performance insights"}},
	{3, "Market Analyst", 2500, 4999, []string{"Sector breakdown views", "Watchlist alerts"}},
	{4, "Portfolio Strategist", 5000, 9999, []string{"Leaderboard spotlight", "Custom badges"}},
	{5, "Market Veteran", 10000, 1<<31 - 1, []string{"All features unlocked"}},
}

// LevelFor maps a total XP amount onto the ladder. XP below zero counts
// as zero.
func LevelFor(totalXP int) Level {
	if totalXP < 0 {
		totalXP = 0
	}
	current := levels[0]
	for _, l := range levels {
		if totalXP >= l.MinXP {
			current = l
		}
	}
	return current
}

// ProgressWithinLevel reports how far (0..1) the XP total has advanced
// through its current level band.
func ProgressWithinLevel(totalXP int) float64 {
	l := LevelFor(totalXP)
	span := l.MaxXP - l.MinXP
	if span <= 0 {
		return 1
	}
	progress := float64(totalXP-l.MinXP) / float64(span)
	if progress > 1 {
		progress = 1
	}
	return progress
}
