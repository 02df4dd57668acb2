package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	LangSpanish = "es"
	LangEnglish = "en"
)

var (
	// English keeps apostrophes so contractions like "don't" stay one token.
	wordsEN = regexp.MustCompile(`[a-z0-9']+`)
	// Spanish adds the accented vowels and ñ to the allowed run.
	wordsES = regexp.MustCompile(`[a-z0-9ñáéíóúü]+`)
	// Fallback for unrecognized language codes.
	wordsAny = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Tokenize splits an utterance into lowercase lexical tokens for the given
// language code. Unknown languages fall back to generic alphanumeric runs.
// Empty input yields an empty slice, never an error.
func Tokenize(text string, lang string) []string {
	if text == "" {
		return []string{}
	}

	text = strings.ToLower(norm.NFC.String(text))

	var re *regexp.Regexp
	switch lang {
	case LangEnglish:
		re = wordsEN
	case LangSpanish:
		// Inverted question/exclamation marks never carry lexical content.
		text = strings.Trim(text, "¿¡")
		re = wordsES
	default:
		re = wordsAny
	}

	matches := re.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		// A run may pick up quoting apostrophes around a word ('rhapsody').
		m = strings.Trim(m, "'")
		if m != "" {
			tokens = append(tokens, m)
		}
	}

	return tokens
}
