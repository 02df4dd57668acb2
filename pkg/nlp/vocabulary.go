package nlp

import "sort"

// BuildVocabulary assigns a stable integer index to every distinct token seen
// across the training corpus. Indices follow lexicographic order so that
// retraining on the same corpus always produces identical indices; map
// iteration order must never leak into index assignment.
func BuildVocabulary(sequences [][]string) map[string]int {
	distinct := make(map[string]struct{})
	for _, tokens := range sequences {
		for _, token := range tokens {
			distinct[token] = struct{}{}
		}
	}

	words := make([]string, 0, len(distinct))
	for word := range distinct {
		words = append(words, word)
	}
	sort.Strings(words)

	vocabulary := make(map[string]int, len(words))
	for i, word := range words {
		vocabulary[word] = i
	}

	return vocabulary
}
