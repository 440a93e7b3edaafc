package quiz

import (
	"errors"

	"papertrade/types"
)

type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateInProgress State = "IN_PROGRESS"
	StateCompleted  State = "COMPLETED"
)

var (
	ErrQuizIncomplete   = errors.New("quiz has unanswered questions")
	ErrQuizCompleted    = errors.New("quiz already completed")
	ErrAnswerBeforeNext = errors.New("current question has no recorded response")
)

// Session drives one user's pass through the quiz: a cursor over the
// question list plus the accumulated response set. Navigation backward is
// always allowed; forward only once the current question is answered.
type Session struct {
	questions []types.Question
	responses types.ResponseSet
	cursor    int
	result    *types.QuizResult
}

func NewSession(questions []types.Question) *Session {
	return &Session{
		questions: questions,
		responses: make(types.ResponseSet),
	}
}

func (s *Session) State() State {
	switch {
	case s.result != nil:
		return StateCompleted
	case len(s.responses) > 0:
		return StateInProgress
	default:
		return StateNotStarted
	}
}

func (s *Session) Questions() []types.Question { return s.questions }
func (s *Session) Responses() types.ResponseSet {
	return s.responses.Clone()
}

// Cursor returns the index of the question currently shown.
func (s *Session) Cursor() int { return s.cursor }

// Current returns the question under the cursor.
func (s *Session) Current() types.Question {
	return s.questions[s.cursor]
}

// Answer records a response for the given question. Re-answering replaces
// the earlier response; a completed session rejects further answers.
func (s *Session) Answer(questionID string, optionIDs []string) error {
	if s.result != nil {
		return ErrQuizCompleted
	}
	updated, err := RecordResponse(s.responses, s.questions, questionID, optionIDs)
	if err != nil {
		return err
	}
	s.responses = updated
	return nil
}

// Next advances the cursor. The current question must be answered first.
func (s *Session) Next() error {
	if _, ok := s.responses[s.Current().ID]; !ok {
		return ErrAnswerBeforeNext
	}
	if s.cursor < len(s.questions)-1 {
		s.cursor++
	}
	return nil
}

// Previous moves the cursor back, unconditionally.
func (s *Session) Previous() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// AnsweredCount reports how many questions have a recorded response.
func (s *Session) AnsweredCount() int { return len(s.responses) }

// Complete scores and classifies the session. Every question must have a
// response; partial completion is a caller error here, not a soft default.
func (s *Session) Complete() (types.QuizResult, error) {
	if s.result != nil {
		return *s.result, nil
	}
	if len(s.responses) < len(s.questions) {
		return types.QuizResult{}, ErrQuizIncomplete
	}
	scores := Score(s.responses, s.questions)
	result, err := Classify(scores)
	if err != nil {
		return types.QuizResult{}, err
	}
	s.result = &result
	return result, nil
}

// Result returns the classification once Complete has run.
func (s *Session) Result() (types.QuizResult, bool) {
	if s.result == nil {
		return types.QuizResult{}, false
	}
	return *s.result, true
}

// Reset discards all responses and returns the session to NotStarted.
func (s *Session) Reset() {
	s.responses = make(types.ResponseSet)
	s.cursor = 0
	s.result = nil
}
