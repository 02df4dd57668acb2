package assistantService

import (
	"context"
	"strings"

	"JarvisGolang/internal/entity"
	"JarvisGolang/internal/plugin"
	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// zeroShotThreshold is the minimum score the disambiguator must assign to
// a plugin description before its plugin wins a contested intent.
const zeroShotThreshold = 0.5

// intentRoutes maps intents with exactly one owner straight to a plugin
// name, bypassing the candidate census.
var intentRoutes = map[string]string{
	"INTENT_GET_WEATHER":   "weather",
	"INTENT_GET_NEWS":      "news",
	"INTENT_GET_TIME":      "clock",
	"INTENT_GET_DATE":      "clock",
	"INTENT_PLAY_MUSIC":    "music",
	"INTENT_PLAY_SONG":     "music",
	"INTENT_PLAY_ARTIST":   "music",
	"INTENT_PLAY_PLAYLIST": "music",
	"INTENT_STOP":          "music",
	"INTENT_SET_REMINDER":  "reminders",
	"INTENT_SET_ALARM":     "reminders",
	"INTENT_CANCEL":        "reminders",
}

var apologyTexts = map[string]string{
	"es": "Lo siento, algo salió mal al procesar tu petición.",
	"en": "Sorry, something went wrong while handling your request.",
}

var greetTexts = map[string]string{
	"es": "¡Hola! ¿En qué puedo ayudarte?",
	"en": "Hello! How can I help you?",
}

var farewellTexts = map[string]string{
	"es": "¡Hasta luego!",
	"en": "Goodbye!",
}

var clearedTexts = map[string]string{
	"es": "He borrado el contexto de nuestra conversación.",
	"en": "I have cleared our conversation context.",
}

type dispatchInput struct {
	UserID    string
	Intent    string
	Text      string
	Language  string
	Entities  []entity.Entity
	Sentiment *entity.Sentiment
}

// dispatch routes one classified utterance to a plugin and returns the
// reply text, the plugin name used (empty for built-in replies) and any
// context updates the plugin requested.
func (s *assistantService) dispatch(ctx context.Context, store *conversation.Store, in dispatchInput) (string, string, map[string]string) {
	if response, handled := s.handleReserved(ctx, store, in); handled {
		return response, "", nil
	}

	req := plugin.Request{
		Intent:   in.Intent,
		Text:     in.Text,
		Language: in.Language,
		Entities: in.Entities,
		Context:  store.Snapshot(),
	}

	if name, ok := intentRoutes[in.Intent]; ok {
		if p, found := s.registry.ByName(name); found {
			return s.invoke(ctx, p, req)
		}
	}

	candidates := s.registry.Candidates(in.Text, req.Context)
	switch len(candidates) {
	case 0:
		return s.invoke(ctx, s.fallback, req)
	case 1:
		return s.invoke(ctx, candidates[0], req)
	default:
		return s.invoke(ctx, s.disambiguate(ctx, in, candidates), req)
	}
}

// handleReserved answers the built-in intents that never reach a plugin.
func (s *assistantService) handleReserved(ctx context.Context, store *conversation.Store, in dispatchInput) (string, bool) {
	switch in.Intent {
	case "INTENT_GREET":
		return textFor(greetTexts, in.Language), true
	case "INTENT_FAREWELL":
		return textFor(farewellTexts, in.Language), true
	case "INTENT_HELP":
		return s.helpText(in.Language), true
	case "INTENT_CLEAR_CONTEXT":
		store.ClearAll()
		if err := s.redis.ClearTurns(ctx, in.UserID); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": in.UserID,
				"error":   err.Error(),
			}).Warn("Failed to clear redis turn log")
		}
		return textFor(clearedTexts, in.Language), true
	}
	return "", false
}

func (s *assistantService) helpText(lang string) string {
	var b strings.Builder
	if lang == nlp.LangSpanish {
		b.WriteString("Esto es lo que puedo hacer:")
	} else {
		b.WriteString("Here is what I can do:")
	}
	for _, p := range s.registry.All() {
		b.WriteString("\n• ")
		b.WriteString(p.Description())
	}
	return b.String()
}

// disambiguate asks the zero-shot classifier to score each candidate's
// description against the utterance. Below the threshold, or when the
// classifier is unreachable, registration order wins.
func (s *assistantService) disambiguate(ctx context.Context, in dispatchInput, candidates []plugin.Plugin) plugin.Plugin {
	labels := make([]string, len(candidates))
	byLabel := make(map[string]plugin.Plugin, len(candidates))
	for i, p := range candidates {
		labels[i] = p.Description()
		byLabel[p.Description()] = p
	}

	scores, err := s.inference.ZeroShot(ctx, in.Text, labels)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"intent": in.Intent,
			"error":  err.Error(),
		}).Warn("Zero-shot disambiguation unavailable, using registration order")
		return candidates[0]
	}

	var best *entity.LabelScore
	for i := range scores {
		if best == nil || scores[i].Score > best.Score {
			best = &scores[i]
		}
	}

	if best != nil && best.Score >= zeroShotThreshold {
		if p, ok := byLabel[best.Label]; ok {
			s.log.WithFields(logrus.Fields{
				"intent": in.Intent,
				"plugin": p.Name(),
				"score":  best.Score,
			}).Debug("Zero-shot disambiguation picked a plugin")
			return p
		}
	}

	return candidates[0]
}

// invoke runs a plugin, absorbing panics so a misbehaving plugin costs
// one apologetic reply instead of the whole process.
func (s *assistantService) invoke(ctx context.Context, p plugin.Plugin, req plugin.Request) (response string, pluginUsed string, updates map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"plugin": p.Name(),
				"panic":  r,
			}).Error("Plugin panicked while handling command")
			response = textFor(apologyTexts, req.Language)
			pluginUsed = p.Name()
			updates = nil
		}
	}()

	result, err := p.Handle(ctx, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"plugin": p.Name(),
			"error":  err.Error(),
		}).Error("Plugin returned an error")
		return textFor(apologyTexts, req.Language), p.Name(), nil
	}

	return result.Response, p.Name(), result.ContextUpdates
}

func textFor(texts map[string]string, lang string) string {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts["en"]
}
