package types

// QuestionType describes how a question's options are selected.
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeScale    QuestionType = "scale"
)

// Question is an immutable, configuration-time quiz question.
type Question struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Type    QuestionType `json:"type"`
	Weight  float64      `json:"weight"`
	Options []Option     `json:"options"`
}

// Option belongs to exactly one Question. Value is a 1-5 scale and the
// archetype tag decides which score bucket the option contributes to.
type Option struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Value     int       `json:"value"`
	Archetype Archetype `json:"archetype"`
}

// Option lookup by id.
func (q Question) Option(optionID string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// Response records the selected options for a single question.
type Response struct {
	QuestionID      string   `json:"questionId"`
	SelectedOptions []string `json:"selectedOptions"`
}

// ResponseSet is keyed by question id: at most one response per question,
// re-answering replaces the prior one.
type ResponseSet map[string]Response

// Clone returns a copy so callers can treat recording as copy-on-write.
func (rs ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(rs))
	for id, r := range rs {
		out[id] = r
	}
	return out
}

// ArchetypeScore maps archetype name to accumulated weighted score.
type ArchetypeScore map[Archetype]float64

// Clone returns a copy so callers can treat recording as copy-on-write.
func (s ArchetypeScore) Clone() ArchetypeScore {
	out := make(ArchetypeScore, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// QuizResult is the final classification for a completed response set.
type QuizResult struct {
	Archetype  Archetype      `json:"archetype"`
	Confidence float64        `json:"confidence"`
	Scores     ArchetypeScore `json:"scores"`
}
