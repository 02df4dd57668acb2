package assistant

import (
	"time"

	"JarvisGolang/internal/entity"
	"JarvisGolang/pkg/conversation"
)

type CommandRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language" validate:"omitempty,oneof=es en"`
}

type CommandResponse struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence,omitempty"`
	Entities   []entity.Entity   `json:"entities"`
	Response   string            `json:"response"`
	PluginUsed string            `json:"plugin_used,omitempty"`
	Sentiment  *entity.Sentiment `json:"sentiment,omitempty"`
	Language   string            `json:"language"`
	// Degraded lists the signals that failed and fell back to a safe
	// default during this turn, e.g. "classifier", "sentiment".
	Degraded []string `json:"degraded,omitempty"`
}

type TrainRequest struct {
	Language string `json:"language" validate:"required,oneof=es en"`
}

type TrainResponse struct {
	Language       string    `json:"language"`
	Samples        int       `json:"samples"`
	Classes        int       `json:"classes"`
	VocabularySize int       `json:"vocabulary_size"`
	TrainedAt      time.Time `json:"trained_at"`
}

type HistoryResponse struct {
	History []conversation.Turn `json:"history"`
}

type SampleRequest struct {
	Utterance string `json:"utterance" validate:"required"`
	Intent    string `json:"intent" validate:"required"`
	Language  string `json:"language" validate:"required,oneof=es en"`
}

type SampleResponse struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	// CorpusSize is the number of stored samples for the language after
	// this insert, zero when the count query fails.
	CorpusSize int `json:"corpus_size"`
}

type CommandLogsResponse struct {
	Logs  []entity.CommandLog `json:"logs"`
	Total int                 `json:"total"`
}
