package conversation

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"

	DefaultCapacity = 20
)

// Scratch-map keys maintained by AddUtterance.
const (
	keyLastUser          = "last_user_utterance"
	keyLastAssistant     = "last_assistant_response"
	keyPreviousUser      = "previous_user_utterance"
	keyPreviousAssistant = "previous_assistant_response"
)

// Turn is one utterance by either side plus arbitrary annotations
// (intent, entities, sentiment, plugin used).
type Turn struct {
	ID          string                 `json:"id"`
	Speaker     string                 `json:"speaker"`
	Text        string                 `json:"text"`
	Annotations map[string]interface{} `json:"annotations,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Snapshot is a read-only projection of the store handed to the classifier
// pipeline and plugins. Mutating it never affects the live store.
type Snapshot struct {
	History                   []Turn                 `json:"history"`
	LastUserUtterance         string                 `json:"last_user_utterance"`
	LastAssistantResponse     string                 `json:"last_assistant_response"`
	PreviousUserUtterance     string                 `json:"previous_user_utterance"`
	PreviousAssistantResponse string                 `json:"previous_assistant_response"`
	Data                      map[string]interface{} `json:"data,omitempty"`
}

// Store keeps a bounded turn history plus current-turn scratch data for one
// conversation. Eviction and scratch updates are not atomic as separate
// steps, so every mutation runs under the mutex.
type Store struct {
	mu        sync.Mutex
	capacity  int
	history   []Turn
	scratch   map[string]interface{}
	newTurnID func() string
}

func NewStore(capacity int, newTurnID func() string) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if newTurnID == nil {
		newTurnID = func() string { return "" }
	}
	return &Store{
		capacity:  capacity,
		history:   make([]Turn, 0, capacity),
		scratch:   make(map[string]interface{}),
		newTurnID: newTurnID,
	}
}

// AddUtterance appends a timestamped turn, evicting the oldest once the
// history exceeds capacity. A new user turn starts a fresh processing turn:
// scratch data is cleared except that the immediately preceding user and
// assistant utterances are carried over for continuity.
func (s *Store) AddUtterance(speaker, text string, annotations map[string]interface{}) Turn {
	if speaker != SpeakerUser && speaker != SpeakerAssistant {
		logrus.WithField("speaker", speaker).Warn("Ignoring utterance from invalid speaker")
		return Turn{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turn := Turn{
		ID:          s.newTurnID(),
		Speaker:     speaker,
		Text:        text,
		Annotations: copyAnnotations(annotations),
		CreatedAt:   time.Now(),
	}

	s.history = append(s.history, turn)
	if len(s.history) > s.capacity {
		s.history = s.history[len(s.history)-s.capacity:]
	}

	switch speaker {
	case SpeakerUser:
		previousUser := s.scratch[keyLastUser]
		previousAssistant := s.scratch[keyLastAssistant]

		s.scratch = make(map[string]interface{})
		if previousUser != nil {
			s.scratch[keyPreviousUser] = previousUser
		}
		if previousAssistant != nil {
			s.scratch[keyPreviousAssistant] = previousAssistant
		}
		s.scratch[keyLastUser] = text
	case SpeakerAssistant:
		s.scratch[keyLastAssistant] = text
	}

	return turn
}

// SetTurnData stores a value for the current processing turn.
func (s *Store) SetTurnData(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scratch[key] = value
}

// TurnData returns the value stored for key, or def when unset.
func (s *Store) TurnData(key string, def interface{}) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value, ok := s.scratch[key]; ok {
		return value
	}
	return def
}

// Snapshot returns a copy of the history, the last-turn pointers and the
// remaining scratch keys.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Turn, len(s.history))
	copy(history, s.history)
	for i := range history {
		history[i].Annotations = copyAnnotations(history[i].Annotations)
	}

	snap := Snapshot{History: history}
	data := make(map[string]interface{})
	for key, value := range s.scratch {
		switch key {
		case keyLastUser:
			snap.LastUserUtterance, _ = value.(string)
		case keyLastAssistant:
			snap.LastAssistantResponse, _ = value.(string)
		case keyPreviousUser:
			snap.PreviousUserUtterance, _ = value.(string)
		case keyPreviousAssistant:
			snap.PreviousAssistantResponse, _ = value.(string)
		default:
			data[key] = value
		}
	}
	if len(data) > 0 {
		snap.Data = data
	}

	return snap
}

// ClearAll atomically empties both the history and the scratch map.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = s.history[:0]
	s.scratch = make(map[string]interface{})
	logrus.Info("Conversation history and turn data cleared")
}

// copyAnnotations detaches an annotation map so callers on either side
// of the store boundary cannot mutate stored turns. AddUtterance copies
// on the way in, Snapshot on the way out.
func copyAnnotations(annotations map[string]interface{}) map[string]interface{} {
	if annotations == nil {
		return nil
	}
	out := make(map[string]interface{}, len(annotations))
	for key, value := range annotations {
		out[key] = value
	}
	return out
}

// HistoryLen reports the current number of stored turns.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}
