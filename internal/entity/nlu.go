package entity

// Entity extractor sources, ordered by trust. Rules and the specialized
// tagger target the domain categories (dates, times, phone numbers, titles)
// the broad-coverage tagger tends to miss or mislabel.
const (
	SourceRule        = "rule"
	SourceSpecialized = "specialized"
	SourceGeneral     = "general"
)

// Entity is a labeled span of the original utterance. Offsets are byte
// positions forming the half-open range [Start, End).
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// LabelScore is one ranked candidate from the zero-shot classifier.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
