package nlp

// TrainingExample is one labeled utterance: the token sequence produced by
// Tokenize plus its intent label.
type TrainingExample struct {
	Tokens []string `json:"tokens"`
	Label  string   `json:"label"`
}

// Prediction is the classifier output for one utterance.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
