package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"papertrade/types"

	"github.com/jackc/pgx/v5"
)

// SaveQuizResult appends a quiz outcome for the user. Earlier results are
// kept so retakes form a history.
func (db *Database) SaveQuizResult(userID string, result types.QuizResult, ctx context.Context) error {
	scores := make(map[string]float64, len(result.Scores))
	for archetype, s := range result.Scores {
		scores[string(archetype)] = s
	}
	return db.quiz.InsertQuizResult(ctx, quizResultRow{
		UserID:     userID,
		Archetype:  string(result.Archetype),
		Confidence: result.Confidence,
		Scores:     scores,
		CreatedAt:  time.Now().UTC(),
	})
}

// LatestQuizResult returns the user's most recent quiz outcome.
func (db *Database) LatestQuizResult(userID string, ctx context.Context) (types.QuizResult, error) {
	row, err := db.quiz.LatestQuizResult(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.QuizResult{}, fmt.Errorf("user %s: %w", userID, ErrQuizResultNotFound)
		}
		return types.QuizResult{}, err
	}
	scores := make(types.ArchetypeScore, len(row.Scores))
	for archetype, s := range row.Scores {
		scores[types.Archetype(archetype)] = s
	}
	return types.QuizResult{
		Archetype:  types.Archetype(row.Archetype),
		Confidence: row.Confidence,
		Scores:     scores,
	}, nil
}
