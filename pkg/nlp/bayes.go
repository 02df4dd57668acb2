package nlp

import (
	"errors"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidAlpha    = errors.New("smoothing constant alpha must be positive")
	ErrNoTrainingData  = errors.New("no training examples provided")
	ErrEmptyVocabulary = errors.New("vocabulary is empty")
)

// Classifier is a multinomial naive bayes intent classifier. It is immutable
// once trained; retraining replaces the whole parameter set.
type Classifier struct {
	alpha          float64
	classes        []string             // lexicographic order, drives tie-breaking
	logPriors      map[string]float64   // class -> log P(c); -Inf for a class with no documents
	logLikelihoods map[string][]float64 // class -> vocabulary index -> log P(w|c)
	vocabulary     map[string]int
	vocabSize      int
}

func NewClassifier(alpha float64) (*Classifier, error) {
	if alpha <= 0 {
		return nil, ErrInvalidAlpha
	}
	return &Classifier{alpha: alpha}, nil
}

// Train estimates per-class log-priors and alpha-smoothed per-class token
// log-likelihoods. extraLabels may name classes that must exist in the model
// even when no example carries them; such classes get a -Inf prior (logged,
// never an error) and smoothed likelihoods, so they are unselectable but
// still round-trip through save/load.
func (c *Classifier) Train(examples []TrainingExample, vocabulary map[string]int, extraLabels ...string) error {
	if len(examples) == 0 {
		return ErrNoTrainingData
	}
	if len(vocabulary) == 0 {
		return ErrEmptyVocabulary
	}

	classSet := make(map[string]struct{})
	for _, ex := range examples {
		classSet[ex.Label] = struct{}{}
	}
	for _, label := range extraLabels {
		classSet[label] = struct{}{}
	}

	classes := make([]string, 0, len(classSet))
	for label := range classSet {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	vocabSize := len(vocabulary)
	docCounts := make(map[string]int, len(classes))
	tokenTotals := make(map[string]float64, len(classes))
	tokenCounts := make(map[string][]float64, len(classes))
	for _, label := range classes {
		tokenCounts[label] = make([]float64, vocabSize)
	}

	for _, ex := range examples {
		docCounts[ex.Label]++
		counts := tokenCounts[ex.Label]
		for _, token := range ex.Tokens {
			idx, ok := vocabulary[token]
			if !ok {
				continue
			}
			counts[idx]++
			tokenTotals[ex.Label]++
		}
	}

	totalDocs := float64(len(examples))
	logPriors := make(map[string]float64, len(classes))
	logLikelihoods := make(map[string][]float64, len(classes))

	for _, label := range classes {
		docs := docCounts[label]
		if docs == 0 {
			logrus.WithField("class", label).Warn("Class has no training documents, prior set to -Inf")
			logPriors[label] = math.Inf(-1)
		} else {
			logPriors[label] = math.Log(float64(docs)) - math.Log(totalDocs)
		}

		// Alpha smoothing keeps every (class, word) likelihood finite even
		// for words never seen in the class.
		denominator := math.Log(tokenTotals[label] + c.alpha*float64(vocabSize))
		row := make([]float64, vocabSize)
		for idx, count := range tokenCounts[label] {
			row[idx] = math.Log(count+c.alpha) - denominator
		}
		logLikelihoods[label] = row
	}

	c.classes = classes
	c.logPriors = logPriors
	c.logLikelihoods = logLikelihoods
	c.vocabulary = vocabulary
	c.vocabSize = vocabSize

	return nil
}

// Predict scores every class against the token sequence and returns the
// highest scoring label. Tokens absent from the vocabulary are skipped.
// Equal scores resolve to the lexicographically smallest class label.
// ok is false only when the classifier has never been trained.
func (c *Classifier) Predict(tokens []string) (Prediction, bool) {
	if len(c.classes) == 0 {
		return Prediction{}, false
	}

	best := Prediction{Score: math.Inf(-1)}
	for _, label := range c.classes {
		score := c.logPriors[label]
		row := c.logLikelihoods[label]
		for _, token := range tokens {
			if idx, ok := c.vocabulary[token]; ok {
				score += row[idx]
			}
		}
		if best.Label == "" || score > best.Score {
			best = Prediction{Label: label, Score: score}
		}
	}

	return best, true
}

func (c *Classifier) Trained() bool {
	return len(c.classes) > 0
}

func (c *Classifier) Classes() []string {
	out := make([]string, len(c.classes))
	copy(out, c.classes)
	return out
}

func (c *Classifier) VocabularySize() int {
	return c.vocabSize
}
