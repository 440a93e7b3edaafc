package quiz

import (
	"errors"
	"fmt"

	"papertrade/types"
)

var (
	ErrUnknownQuestion = errors.New("unknown question id")
	ErrUnknownOption   = errors.New("option does not belong to question")
	ErrNoOptions       = errors.New("response selects no options")
	ErrNoScores        = errors.New("no scores to classify")
)

// RecordResponse validates a response against the question table and returns
// a new response set with it recorded. Answering the same question again
// replaces the prior response. Unknown question or option ids are rejected
// rather than silently ignored.
func RecordResponse(set types.ResponseSet, questions []types.Question, questionID string, optionIDs []string) (types.ResponseSet, error) {
	q, ok := findQuestion(questions, questionID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", questionID, ErrUnknownQuestion)
	}
	if len(optionIDs) == 0 {
		return nil, fmt.Errorf("%q: %w", questionID, ErrNoOptions)
	}
	for _, id := range optionIDs {
		if _, ok := q.Option(id); !ok {
			return nil, fmt.Errorf("option %q, question %q: %w", id, questionID, ErrUnknownOption)
		}
	}

	out := set.Clone()
	out[questionID] = types.Response{
		QuestionID:      questionID,
		SelectedOptions: append([]string(nil), optionIDs...),
	}
	return out, nil
}

// Score accumulates option.Value * question.Weight into the bucket of the
// option's archetype tag. Unanswered questions contribute nothing. The
// accumulation runs in question table order so repeated scoring of the same
// set is bit-for-bit reproducible.
func Score(set types.ResponseSet, questions []types.Question) types.ArchetypeScore {
	scores := types.ArchetypeScore{
		types.ArchetypeConservative: 0,
		types.ArchetypeBalanced:     0,
		types.ArchetypeAggressive:   0,
		types.ArchetypeSpeculative:  0,
	}

	for _, q := range questions {
		resp, ok := set[q.ID]
		if !ok {
			continue
		}
		for _, optID := range resp.SelectedOptions {
			opt, ok := q.Option(optID)
			if !ok {
				// Validated at record time; a stale id just drops out.
				continue
			}
			scores[opt.Archetype] += float64(opt.Value) * q.Weight
		}
	}
	return scores
}

// Classify picks the archetype with the maximum score. Ties break by the
// fixed priority order, and confidence is the winner's share of the total
// score, clamped to [0,100].
func Classify(scores types.ArchetypeScore) (types.QuizResult, error) {
	var (
		winner types.Archetype
		max    float64
		total  float64
		found  bool
	)
	for _, arch := range types.ArchetypePriority {
		s := scores[arch]
		total += s
		if !found || s > max {
			winner = arch
			max = s
			found = true
		}
	}
	if !found || total <= 0 {
		return types.QuizResult{}, ErrNoScores
	}

	confidence := max / total * 100
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return types.QuizResult{
		Archetype:  winner,
		Confidence: confidence,
		Scores:     scores,
	}, nil
}
