package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	DetectLanguage(text string, fallback string) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Spanish-only characters plus a few high-frequency function words. Crude,
// but only consulted when the caller supplies no language hint.
var spanishMarkers = []string{"¿", "¡", "ñ", "á", "é", "í", "ó", "ú", " qué ", " cómo ", " hola ", " por favor"}

func (u *utils) DetectLanguage(text string, fallback string) string {
	padded := " " + strings.ToLower(text) + " "
	for _, marker := range spanishMarkers {
		if strings.Contains(padded, marker) {
			return "es"
		}
	}
	if fallback != "" {
		return fallback
	}
	return "en"
}
