package nlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	examples := []TrainingExample{
		{Tokens: []string{"hola"}, Label: "INTENT_GREET"},
		{Tokens: []string{"adiós"}, Label: "INTENT_FAREWELL"},
	}
	vocab := BuildVocabulary([][]string{{"hola"}, {"adiós"}})

	original, err := NewClassifier(0.5)
	require.NoError(t, err)
	require.NoError(t, original.Train(examples, vocab, "INTENT_HELP"))

	path := filepath.Join(t.TempDir(), "models", "intent_model_es.json")
	require.NoError(t, original.Save(path))

	loaded, err := LoadClassifier(path)
	require.NoError(t, err)

	assert.Equal(t, original.Classes(), loaded.Classes())
	assert.Equal(t, original.VocabularySize(), loaded.VocabularySize())

	for _, tokens := range [][]string{{"hola"}, {"adiós"}, {"hola", "adiós"}, {"zzz"}} {
		want, ok := original.Predict(tokens)
		require.True(t, ok)
		got, ok := loaded.Predict(tokens)
		require.True(t, ok)

		assert.Equal(t, want.Label, got.Label)
		assert.InDelta(t, want.Score, got.Score, 1e-12)
	}
}

func TestSaveUntrained(t *testing.T) {
	c, err := NewClassifier(1.0)
	require.NoError(t, err)

	err = c.Save(filepath.Join(t.TempDir(), "model.json"))
	assert.Error(t, err)
}

func TestLoadClassifierMissingFile(t *testing.T) {
	_, err := LoadClassifier(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestLoadClassifierCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadClassifier(path)
	assert.ErrorIs(t, err, ErrModelCorrupt)
}

func TestLoadClassifierRejectsInconsistentModel(t *testing.T) {
	// Valid JSON whose vocabulary size does not match the declared size.
	payload := `{"alpha":1,"classes":["A"],"log_priors":{"A":0},` +
		`"log_likelihoods":{"A":[0]},"vocabulary":{"hola":0},"vocab_size":5}`

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	_, err := LoadClassifier(path)
	assert.ErrorIs(t, err, ErrModelCorrupt)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	c := trainGreetFarewell(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, c.Save(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
