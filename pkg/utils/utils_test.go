package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, id, 26)
}

func TestDetectLanguageSpanishMarkers(t *testing.T) {
	u := New()

	assert.Equal(t, "es", u.DetectLanguage("¿Qué hora es?", "en"))
	assert.Equal(t, "es", u.DetectLanguage("pon música por favor", "en"))
	assert.Equal(t, "es", u.DetectLanguage("hola jarvis", "en"))
}

func TestDetectLanguageFallback(t *testing.T) {
	u := New()

	assert.Equal(t, "en", u.DetectLanguage("play some music", "en"))
	assert.Equal(t, "es", u.DetectLanguage("play some music", "es"))
	assert.Equal(t, "en", u.DetectLanguage("play some music", ""))
}
