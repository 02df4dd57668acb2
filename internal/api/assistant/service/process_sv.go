package assistantService

import (
	"context"
	"strings"
	"time"

	"JarvisGolang/internal/api/assistant"
	"JarvisGolang/internal/entity"
	contextPkg "JarvisGolang/pkg/context"
	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/ner"
	"JarvisGolang/pkg/nlp"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// Degraded-signal markers reported back to the caller when a collaborator
// fails and the pipeline continues on partial information.
const (
	degradedClassifier     = "classifier"
	degradedGeneralNER     = "ner"
	degradedSpecializedNER = "specialized_ner"
	degradedSentiment      = "sentiment"
)

func (s *assistantService) ProcessCommand(ctx context.Context, userID string, req assistant.CommandRequest) (*assistant.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, assistant.ErrEmptyCommand
	}

	lang := req.Language
	if lang == "" {
		lang = s.utils.DetectLanguage(text, nlp.LangEnglish)
	}
	if lang != nlp.LangSpanish && lang != nlp.LangEnglish {
		return nil, assistant.ErrUnsupportedLanguage
	}

	store := s.conversations.Get(userID)
	var degraded []string

	// Intent classification. An untrained or missing classifier is a
	// degraded signal, not a hard failure: the turn falls through to
	// general chat.
	intent := ""
	confidence := 0.0
	tokens := nlp.Tokenize(text, lang)

	classifier := s.classifier(lang)
	if classifier == nil || !classifier.Trained() {
		degraded = append(degraded, degradedClassifier)
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"language":   lang,
		}).Warn("No trained classifier for language, skipping intent prediction")
	} else if pred, ok := classifier.Predict(tokens); ok {
		intent = pred.Label
		confidence = pred.Score
	}

	// Entity extraction runs all three tiers. The rule matcher is
	// in-process and cannot fail; each remote tier degrades on its own.
	ruleEntities := s.ruleMatcher.Extract(text)

	generalEntities, err := s.inference.ExtractEntities(ctx, text, lang)
	if err != nil {
		degraded = append(degraded, degradedGeneralNER)
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("General NER unavailable")
	}

	specializedEntities, err := s.inference.ExtractSpecialized(ctx, text)
	if err != nil {
		degraded = append(degraded, degradedSpecializedNER)
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Specialized NER unavailable")
	}

	entities := ner.Merge(ruleEntities, specializedEntities, generalEntities)

	sentiment, err := s.inference.Sentiment(ctx, text, lang)
	if err != nil {
		degraded = append(degraded, degradedSentiment)
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Sentiment analysis unavailable")
	}

	userAnnotations := map[string]interface{}{
		"intent":     intent,
		"confidence": confidence,
		"entities":   entities,
	}
	if sentiment != nil {
		userAnnotations["sentiment"] = sentiment
	}
	store.AddUtterance(conversation.SpeakerUser, text, userAnnotations)

	response, pluginUsed, updates := s.dispatch(ctx, store, dispatchInput{
		UserID:    userID,
		Intent:    intent,
		Text:      text,
		Language:  lang,
		Entities:  entities,
		Sentiment: sentiment,
	})

	response = s.withEmpathy(response, sentiment, lang)

	store.AddUtterance(conversation.SpeakerAssistant, response, map[string]interface{}{
		"plugin_used": pluginUsed,
	})
	for k, v := range updates {
		store.SetTurnData(k, v)
	}

	s.persistTurn(ctx, entity.CommandLog{
		UserID:     userID,
		Text:       text,
		Language:   lang,
		Intent:     intent,
		Response:   response,
		PluginUsed: pluginUsed,
		Degraded:   len(degraded) > 0,
	})

	return &assistant.CommandResponse{
		Intent:     intent,
		Confidence: confidence,
		Entities:   entities,
		Response:   response,
		PluginUsed: pluginUsed,
		Sentiment:  sentiment,
		Language:   lang,
		Degraded:   degraded,
	}, nil
}

// withEmpathy prefixes the reply when the user sounds strongly negative.
func (s *assistantService) withEmpathy(response string, sentiment *entity.Sentiment, lang string) string {
	if sentiment == nil || sentiment.Score < 0.85 {
		return response
	}
	label := strings.ToUpper(sentiment.Label)
	if label != "NEGATIVE" && label != "NEG" {
		return response
	}
	if lang == nlp.LangSpanish {
		return "Lamento que te sientas así. " + response
	}
	return "I am sorry you are feeling that way. " + response
}

// persistTurn writes the command log row and mirrors the turn to the
// redis audit log. Both are best-effort: a storage failure never fails
// the user's command.
func (s *assistantService) persistTurn(ctx context.Context, row entity.CommandLog) {
	requestID := contextPkg.GetRequestID(ctx)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate command log ID")
		return
	}
	row.ID = id
	row.CreatedAt = time.Now()

	repoClient, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to open repository client for command log")
	} else if err := repoClient.CommandLogs.CreateCommandLog(ctx, row); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to persist command log")
	}

	payload, err := jsoniter.MarshalToString(row)
	if err == nil {
		if err := s.redis.AppendTurn(ctx, row.UserID, payload); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to append turn to redis log")
		}
	}
}

func (s *assistantService) History(ctx context.Context, userID string) (*assistant.HistoryResponse, error) {
	snapshot := s.conversations.Get(userID).Snapshot()
	return &assistant.HistoryResponse{History: snapshot.History}, nil
}

func (s *assistantService) ClearContext(ctx context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	s.conversations.Get(userID).ClearAll()

	if err := s.redis.ClearTurns(ctx, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to clear redis turn log")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
	}).Info("Conversation context cleared")

	return nil
}
