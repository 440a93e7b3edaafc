package quiz

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"papertrade/types"
)

var scoringQuestions = []types.Question{
	{
		ID:     "q1",
		Prompt: "single question",
		Type:   types.QuestionTypeSingle,
		Weight: 3,
		Options: []types.Option{
			{ID: "a", Value: 1, Archetype: types.ArchetypeConservative},
			{ID: "b", Value: 2, Archetype: types.ArchetypeBalanced},
			{ID: "c", Value: 3, Archetype: types.ArchetypeBalanced},
			{ID: "d", Value: 4, Archetype: types.ArchetypeAggressive},
			{ID: "e", Value: 5, Archetype: types.ArchetypeSpeculative},
		},
	},
	{
		ID:     "q2",
		Prompt: "second question",
		Type:   types.QuestionTypeSingle,
		Weight: 2,
		Options: []types.Option{
			{ID: "x", Value: 2, Archetype: types.ArchetypeConservative},
			{ID: "y", Value: 4, Archetype: types.ArchetypeAggressive},
		},
	},
}

func TestRecordResponse(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
		optionIDs  []string
		wantErr    error
	}{
		{"valid response", "q1", []string{"e"}, nil},
		{"unknown question", "nope", []string{"e"}, ErrUnknownQuestion},
		{"option from other question", "q1", []string{"x"}, ErrUnknownOption},
		{"empty selection", "q1", nil, ErrNoOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := RecordResponse(types.ResponseSet{}, scoringQuestions, tt.questionID, tt.optionIDs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := set[tt.questionID]; !ok {
				t.Fatalf("response for %s not recorded", tt.questionID)
			}
		})
	}
}

func TestRecordResponseReplacesPrior(t *testing.T) {
	set, err := RecordResponse(types.ResponseSet{}, scoringQuestions, "q1", []string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	set, err = RecordResponse(set, scoringQuestions, "q1", []string{"e"})
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 1 {
		t.Fatalf("expected one response, got %d", len(set))
	}
	if got := set["q1"].SelectedOptions[0]; got != "e" {
		t.Fatalf("expected replacement with e, got %s", got)
	}
}

func TestRecordResponseDoesNotMutateInput(t *testing.T) {
	orig := types.ResponseSet{}
	if _, err := RecordResponse(orig, scoringQuestions, "q1", []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if len(orig) != 0 {
		t.Fatal("input response set was mutated")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		responses types.ResponseSet
		want      types.ArchetypeScore
	}{
		{
			name:      "empty set scores zero",
			responses: types.ResponseSet{},
			want: types.ArchetypeScore{
				types.ArchetypeConservative: 0,
				types.ArchetypeBalanced:     0,
				types.ArchetypeAggressive:   0,
				types.ArchetypeSpeculative:  0,
			},
		},
		{
			// Weight 3, option valued 5 tagged
			// speculative -> {speculative: 15, others: 0}.
			name: "single weighted answer",
			responses: types.ResponseSet{
				"q1": {QuestionID: "q1", SelectedOptions: []string{"e"}},
			},
			want: types.ArchetypeScore{
				types.ArchetypeConservative: 0,
				types.ArchetypeBalanced:     0,
				types.ArchetypeAggressive:   0,
				types.ArchetypeSpeculative:  15,
			},
		},
		{
			name: "answers accumulate per archetype",
			responses: types.ResponseSet{
				"q1": {QuestionID: "q1", SelectedOptions: []string{"a"}},
				"q2": {QuestionID: "q2", SelectedOptions: []string{"x"}},
			},
			want: types.ArchetypeScore{
				types.ArchetypeConservative: 7, // 1*3 + 2*2
				types.ArchetypeBalanced:     0,
				types.ArchetypeAggressive:   0,
				types.ArchetypeSpeculative:  0,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.responses, scoringQuestions)
			for arch, want := range tt.want {
				if math.Abs(got[arch]-want) > 1e-9 {
					t.Errorf("%s: got %v, want %v", arch, got[arch], want)
				}
			}
		})
	}
}

func TestScoreOrderIndependent(t *testing.T) {
	// Record the full default survey in random orders; the totals must not
	// move because accumulation always walks the question table.
	answers := map[string]string{
		"risk-tolerance":      "buy-more",
		"investment-timeline": "three-to-seven",
		"market-volatility":   "exciting",
		"research-approach":   "deep-research",
		"investment-goals":    "maximize-returns",
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}

	var baseline types.ArchetypeScore
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

		set := types.ResponseSet{}
		var err error
		for _, id := range ids {
			set, err = RecordResponse(set, DefaultQuestions, id, []string{answers[id]})
			if err != nil {
				t.Fatal(err)
			}
		}
		got := Score(set, DefaultQuestions)
		if baseline == nil {
			baseline = got
			continue
		}
		for arch, want := range baseline {
			if got[arch] != want {
				t.Fatalf("trial %d: %s score %v, want %v", trial, arch, got[arch], want)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		scores         types.ArchetypeScore
		wantArchetype  types.Archetype
		wantConfidence float64
		wantErr        error
	}{
		{
			name: "clear winner with full confidence",
			scores: types.ArchetypeScore{
				types.ArchetypeSpeculative: 15,
			},
			wantArchetype:  types.ArchetypeSpeculative,
			wantConfidence: 100,
		},
		{
			name: "confidence is winner share of total",
			scores: types.ArchetypeScore{
				types.ArchetypeConservative: 6,
				types.ArchetypeBalanced:     3,
				types.ArchetypeAggressive:   1,
			},
			wantArchetype:  types.ArchetypeConservative,
			wantConfidence: 60,
		},
		{
			name: "tie breaks by priority order",
			scores: types.ArchetypeScore{
				types.ArchetypeBalanced:    8,
				types.ArchetypeSpeculative: 8,
			},
			wantArchetype:  types.ArchetypeBalanced,
			wantConfidence: 50,
		},
		{
			name:    "all zero is an error",
			scores:  types.ArchetypeScore{},
			wantErr: ErrNoScores,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.scores)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Archetype != tt.wantArchetype {
				t.Errorf("archetype: got %s, want %s", got.Archetype, tt.wantArchetype)
			}
			if math.Abs(got.Confidence-tt.wantConfidence) > 1e-9 {
				t.Errorf("confidence: got %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{95, "Very High"},
		{80, "Very High"},
		{60, "High"},
		{40, "Moderate"},
		{20, "Low"},
		{5, "Very Low"},
	}
	for _, tt := range tests {
		if got := ConfidenceLevel(tt.confidence); got != tt.want {
			t.Errorf("ConfidenceLevel(%v) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestProfilesCoverEveryArchetype(t *testing.T) {
	for _, arch := range types.ArchetypePriority {
		profile, ok := Profiles[arch]
		if !ok {
			t.Fatalf("no profile for %s", arch)
		}
		if profile.ID != arch || profile.Name == "" || len(profile.Recommendations) == 0 {
			t.Errorf("profile for %s is incomplete", arch)
		}
	}
}
