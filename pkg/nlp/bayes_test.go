package nlp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainGreetFarewell(t *testing.T) *Classifier {
	t.Helper()

	examples := []TrainingExample{
		{Tokens: []string{"hola"}, Label: "INTENT_GREET"},
		{Tokens: []string{"adiós"}, Label: "INTENT_FAREWELL"},
	}
	vocab := BuildVocabulary([][]string{{"hola"}, {"adiós"}})

	c, err := NewClassifier(1.0)
	require.NoError(t, err)
	require.NoError(t, c.Train(examples, vocab))

	return c
}

func TestNewClassifierRejectsNonPositiveAlpha(t *testing.T) {
	_, err := NewClassifier(0)
	assert.ErrorIs(t, err, ErrInvalidAlpha)

	_, err = NewClassifier(-1)
	assert.ErrorIs(t, err, ErrInvalidAlpha)
}

func TestTrainValidatesInput(t *testing.T) {
	c, err := NewClassifier(1.0)
	require.NoError(t, err)

	err = c.Train(nil, map[string]int{"hola": 0})
	assert.ErrorIs(t, err, ErrNoTrainingData)

	err = c.Train([]TrainingExample{{Tokens: []string{"hola"}, Label: "INTENT_GREET"}}, map[string]int{})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestPredictUntrained(t *testing.T) {
	c, err := NewClassifier(1.0)
	require.NoError(t, err)

	_, ok := c.Predict([]string{"hola"})
	assert.False(t, ok)
	assert.False(t, c.Trained())
}

func TestPredictGreetFarewell(t *testing.T) {
	c := trainGreetFarewell(t)

	pred, ok := c.Predict([]string{"hola"})
	require.True(t, ok)
	assert.Equal(t, "INTENT_GREET", pred.Label)

	pred, ok = c.Predict([]string{"adiós"})
	require.True(t, ok)
	assert.Equal(t, "INTENT_FAREWELL", pred.Label)
}

func TestPredictScoresAreFinite(t *testing.T) {
	c := trainGreetFarewell(t)

	pred, ok := c.Predict([]string{"hola", "adiós"})
	require.True(t, ok)
	assert.False(t, math.IsInf(pred.Score, 0))
	assert.False(t, math.IsNaN(pred.Score))
	// Log-probabilities never exceed zero.
	assert.LessOrEqual(t, pred.Score, 0.0)
}

func TestPredictSkipsUnknownTokens(t *testing.T) {
	c := trainGreetFarewell(t)

	withUnknown, ok := c.Predict([]string{"hola", "zzz"})
	require.True(t, ok)
	withoutUnknown, ok := c.Predict([]string{"hola"})
	require.True(t, ok)

	assert.Equal(t, withoutUnknown.Label, withUnknown.Label)
	assert.InDelta(t, withoutUnknown.Score, withUnknown.Score, 1e-12)
}

func TestPredictTieBreaksLexicographically(t *testing.T) {
	examples := []TrainingExample{
		{Tokens: []string{"uno"}, Label: "INTENT_B"},
		{Tokens: []string{"dos"}, Label: "INTENT_A"},
	}
	vocab := BuildVocabulary([][]string{{"uno"}, {"dos"}})

	c, err := NewClassifier(1.0)
	require.NoError(t, err)
	require.NoError(t, c.Train(examples, vocab))

	// Only unknown tokens: every class scores exactly its prior, and the
	// priors are identical. The smallest label must win.
	pred, ok := c.Predict([]string{"zzz"})
	require.True(t, ok)
	assert.Equal(t, "INTENT_A", pred.Label)
}

func TestPredictDeterministic(t *testing.T) {
	c := trainGreetFarewell(t)

	first, ok := c.Predict([]string{"hola"})
	require.True(t, ok)
	for i := 0; i < 100; i++ {
		pred, ok := c.Predict([]string{"hola"})
		require.True(t, ok)
		assert.Equal(t, first, pred)
	}
}

func TestTrainExtraLabelsGetUnselectablePrior(t *testing.T) {
	examples := []TrainingExample{
		{Tokens: []string{"hola"}, Label: "INTENT_GREET"},
	}
	vocab := BuildVocabulary([][]string{{"hola"}})

	c, err := NewClassifier(1.0)
	require.NoError(t, err)
	require.NoError(t, c.Train(examples, vocab, "INTENT_HELP"))

	assert.Equal(t, []string{"INTENT_GREET", "INTENT_HELP"}, c.Classes())

	// The zero-document class may never be predicted.
	for _, tokens := range [][]string{{"hola"}, {"zzz"}, {}} {
		pred, ok := c.Predict(tokens)
		require.True(t, ok)
		assert.Equal(t, "INTENT_GREET", pred.Label)
	}
}

func TestRetrainReplacesParameters(t *testing.T) {
	c := trainGreetFarewell(t)

	examples := []TrainingExample{
		{Tokens: []string{"clima"}, Label: "INTENT_GET_WEATHER"},
	}
	vocab := BuildVocabulary([][]string{{"clima"}})
	require.NoError(t, c.Train(examples, vocab))

	assert.Equal(t, []string{"INTENT_GET_WEATHER"}, c.Classes())
	assert.Equal(t, 1, c.VocabularySize())

	pred, ok := c.Predict([]string{"clima"})
	require.True(t, ok)
	assert.Equal(t, "INTENT_GET_WEATHER", pred.Label)
}
