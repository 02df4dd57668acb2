package entity

import "time"

// TrainingSample is one labeled utterance row from the training corpus table.
type TrainingSample struct {
	ID        string    `db:"id"`
	Utterance string    `db:"utterance"`
	Intent    string    `db:"intent"`
	Language  string    `db:"language"`
	CreatedAt time.Time `db:"created_at"`
}

// CommandLog records one processed utterance together with what the
// pipeline decided about it.
type CommandLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Text       string    `db:"text" json:"text"`
	Language   string    `db:"language" json:"language"`
	Intent     string    `db:"intent" json:"intent"`
	Response   string    `db:"response" json:"response"`
	PluginUsed string    `db:"plugin_used" json:"plugin_used"`
	Degraded   bool      `db:"degraded" json:"degraded"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
