package types

// Archetype is one of the four fixed investor personality categories
// assigned as the quiz outcome.
type Archetype string

const (
	ArchetypeConservative Archetype = "conservative"
	ArchetypeBalanced     Archetype = "balanced"
	ArchetypeAggressive   Archetype = "aggressive"
	ArchetypeSpeculative  Archetype = "speculative"
)

// ArchetypePriority is the fixed tie-break order for classification.
// When two archetypes end up with the same score, the one appearing
// earlier in this list wins. Never rely on map iteration order for this.
var ArchetypePriority = []Archetype{
	ArchetypeConservative,
	ArchetypeBalanced,
	ArchetypeAggressive,
	ArchetypeSpeculative,
}

// ArchetypeProfile is the descriptive metadata shown with a quiz result.
type ArchetypeProfile struct {
	ID              Archetype `json:"id"`
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Characteristics []string  `json:"characteristics"`
	Strengths       []string  `json:"strengths"`
	Recommendations []string  `json:"recommendations"`
	Icon            string    `json:"icon"`
	Color           string    `json:"color"`
}
