package assistantService

import (
	"context"
	"errors"
	"strings"
	"testing"

	"JarvisGolang/internal/entity"
	"JarvisGolang/internal/plugin"
	"JarvisGolang/pkg/conversation"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	name    string
	desc    string
	keyword string
	handle  func(ctx context.Context, req plugin.Request) (plugin.Result, error)
}

func (p *fakePlugin) Name() string        { return p.name }
func (p *fakePlugin) Description() string { return p.desc }
func (p *fakePlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	return p.keyword != "" && strings.Contains(strings.ToLower(text), p.keyword)
}
func (p *fakePlugin) Handle(ctx context.Context, req plugin.Request) (plugin.Result, error) {
	if p.handle != nil {
		return p.handle(ctx, req)
	}
	return plugin.Result{Response: "handled by " + p.name}, nil
}

type fakeInference struct {
	zeroShot func(text string, labels []string) ([]entity.LabelScore, error)
}

func (f *fakeInference) Sentiment(ctx context.Context, text, lang string) (*entity.Sentiment, error) {
	return nil, errors.New("not configured")
}

func (f *fakeInference) ZeroShot(ctx context.Context, text string, labels []string) ([]entity.LabelScore, error) {
	if f.zeroShot != nil {
		return f.zeroShot(text, labels)
	}
	return nil, errors.New("not configured")
}

func (f *fakeInference) ExtractEntities(ctx context.Context, text, lang string) ([]entity.Entity, error) {
	return nil, errors.New("not configured")
}

func (f *fakeInference) ExtractSpecialized(ctx context.Context, text string) ([]entity.Entity, error) {
	return nil, errors.New("not configured")
}

type fakeRedis struct {
	cleared   []string
	turns     []string
	recentErr error
}

func (f *fakeRedis) AppendTurn(ctx context.Context, userID string, payload string) error {
	return nil
}

func (f *fakeRedis) RecentTurns(ctx context.Context, userID string, limit int64) ([]string, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return f.turns, nil
}

func (f *fakeRedis) ClearTurns(ctx context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func newDispatchService(infer *fakeInference, redisLog *fakeRedis, plugins ...plugin.Plugin) (*assistantService, plugin.Plugin) {
	logger := logrus.New()
	fallback := &fakePlugin{name: "general_chat_fallback", desc: "fallback"}

	return &assistantService{
		log:       logger,
		registry:  plugin.NewRegistry(plugins...),
		fallback:  fallback,
		inference: infer,
		redis:     redisLog,
	}, fallback
}

func newTestStore() *conversation.Store {
	return conversation.NewStore(20, func() string { return "t" })
}

func TestDispatchReservedGreet(t *testing.T) {
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{})

	response, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		UserID:   "u1",
		Intent:   "INTENT_GREET",
		Text:     "hola",
		Language: "es",
	})

	assert.Equal(t, "¡Hola! ¿En qué puedo ayudarte?", response)
	assert.Empty(t, pluginUsed)
}

func TestDispatchReservedClearContext(t *testing.T) {
	redisLog := &fakeRedis{}
	s, _ := newDispatchService(&fakeInference{}, redisLog)

	store := newTestStore()
	store.AddUtterance(conversation.SpeakerUser, "hello", nil)

	response, _, _ := s.dispatch(context.Background(), store, dispatchInput{
		UserID:   "u1",
		Intent:   "INTENT_CLEAR_CONTEXT",
		Text:     "forget everything",
		Language: "en",
	})

	assert.Equal(t, "I have cleared our conversation context.", response)
	assert.Equal(t, 0, store.HistoryLen())
	assert.Equal(t, []string{"u1"}, redisLog.cleared)
}

func TestDispatchReservedHelpListsPlugins(t *testing.T) {
	weather := &fakePlugin{name: "weather", desc: "weather things"}
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, weather)

	response, _, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_HELP",
		Text:     "help",
		Language: "en",
	})

	assert.Contains(t, response, "Here is what I can do:")
	assert.Contains(t, response, "weather things")
}

func TestDispatchRoutedIntent(t *testing.T) {
	weather := &fakePlugin{name: "weather", desc: "weather"}
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, weather)

	response, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_GET_WEATHER",
		Text:     "weather in Madrid",
		Language: "en",
	})

	assert.Equal(t, "handled by weather", response)
	assert.Equal(t, "weather", pluginUsed)
}

func TestDispatchNoCandidatesFallsBack(t *testing.T) {
	s, fallback := newDispatchService(&fakeInference{}, &fakeRedis{})

	response, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_ANSWER_QUESTION",
		Text:     "who wrote don quixote",
		Language: "en",
	})

	assert.Equal(t, "handled by "+fallback.Name(), response)
	assert.Equal(t, fallback.Name(), pluginUsed)
}

func TestDispatchSingleCandidate(t *testing.T) {
	jokes := &fakePlugin{name: "jokes", desc: "tells jokes", keyword: "joke"}
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, jokes)

	_, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_TELL_JOKE",
		Text:     "tell me a joke",
		Language: "en",
	})

	assert.Equal(t, "jokes", pluginUsed)
}

func productionPlugins() []plugin.Plugin {
	logger := logrus.New()
	return []plugin.Plugin{
		plugin.NewWeather(logger),
		plugin.NewNews(logger),
		plugin.NewMusic(logger),
		plugin.NewClock(logger),
		plugin.NewReminders(logger),
	}
}

func TestDispatchUnclassifiedUtteranceReachesMusic(t *testing.T) {
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, productionPlugins()...)

	response, pluginUsed, updates := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		UserID:   "u1",
		Intent:   "",
		Text:     "play the song bohemian rhapsody",
		Language: "en",
	})

	assert.Equal(t, "music", pluginUsed)
	assert.Contains(t, response, "bohemian rhapsody")
	assert.Contains(t, updates["now_playing"], "bohemian rhapsody")
}

func TestDispatchUnclassifiedUtteranceReachesReminders(t *testing.T) {
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, productionPlugins()...)

	_, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		UserID:   "u1",
		Intent:   "",
		Text:     "recuérdame llamar a Juan en 2 horas",
		Language: "es",
	})

	assert.Equal(t, "reminders", pluginUsed)
}

func TestDispatchUnclassifiedUnclaimedTextFallsBack(t *testing.T) {
	s, fallback := newDispatchService(&fakeInference{}, &fakeRedis{}, productionPlugins()...)

	_, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		UserID:   "u1",
		Intent:   "",
		Text:     "who wrote don quixote",
		Language: "en",
	})

	assert.Equal(t, fallback.Name(), pluginUsed)
}

func TestDispatchZeroShotDisambiguation(t *testing.T) {
	first := &fakePlugin{name: "first", desc: "plays music", keyword: "open"}
	second := &fakePlugin{name: "second", desc: "opens websites", keyword: "open"}

	infer := &fakeInference{
		zeroShot: func(text string, labels []string) ([]entity.LabelScore, error) {
			require.Len(t, labels, 2)
			return []entity.LabelScore{
				{Label: "plays music", Score: 0.1},
				{Label: "opens websites", Score: 0.9},
			}, nil
		},
	}
	s, _ := newDispatchService(infer, &fakeRedis{}, first, second)

	_, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_OPEN_URL",
		Text:     "open wikipedia",
		Language: "en",
	})

	assert.Equal(t, "second", pluginUsed)
}

func TestDispatchZeroShotBelowThresholdUsesRegistrationOrder(t *testing.T) {
	first := &fakePlugin{name: "first", desc: "a", keyword: "open"}
	second := &fakePlugin{name: "second", desc: "b", keyword: "open"}

	infer := &fakeInference{
		zeroShot: func(text string, labels []string) ([]entity.LabelScore, error) {
			return []entity.LabelScore{
				{Label: "a", Score: 0.3},
				{Label: "b", Score: 0.4},
			}, nil
		},
	}
	s, _ := newDispatchService(infer, &fakeRedis{}, first, second)

	_, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_OPEN_URL",
		Text:     "open something",
		Language: "en",
	})

	assert.Equal(t, "first", pluginUsed)
}

func TestDispatchZeroShotErrorUsesRegistrationOrder(t *testing.T) {
	first := &fakePlugin{name: "first", desc: "a", keyword: "open"}
	second := &fakePlugin{name: "second", desc: "b", keyword: "open"}

	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, first, second)

	_, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_OPEN_URL",
		Text:     "open something",
		Language: "en",
	})

	assert.Equal(t, "first", pluginUsed)
}

func TestDispatchPluginPanicYieldsApology(t *testing.T) {
	angry := &fakePlugin{
		name:    "angry",
		desc:    "panics",
		keyword: "search",
		handle: func(ctx context.Context, req plugin.Request) (plugin.Result, error) {
			panic("boom")
		},
	}
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, angry)

	response, pluginUsed, updates := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_SEARCH_WEB",
		Text:     "search for trouble",
		Language: "en",
	})

	assert.Equal(t, "Sorry, something went wrong while handling your request.", response)
	assert.Equal(t, "angry", pluginUsed)
	assert.Nil(t, updates)
}

func TestDispatchPluginErrorYieldsApology(t *testing.T) {
	broken := &fakePlugin{
		name:    "broken",
		desc:    "errors",
		keyword: "buscar",
		handle: func(ctx context.Context, req plugin.Request) (plugin.Result, error) {
			return plugin.Result{}, errors.New("backend down")
		},
	}
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{}, broken)

	response, pluginUsed, _ := s.dispatch(context.Background(), newTestStore(), dispatchInput{
		Intent:   "INTENT_SEARCH_WEB",
		Text:     "buscar algo",
		Language: "es",
	})

	assert.Equal(t, "Lo siento, algo salió mal al procesar tu petición.", response)
	assert.Equal(t, "broken", pluginUsed)
}

func TestWithEmpathyPrefixesStrongNegative(t *testing.T) {
	s, _ := newDispatchService(&fakeInference{}, &fakeRedis{})

	negative := &entity.Sentiment{Label: "NEGATIVE", Score: 0.95}
	assert.Equal(t,
		"I am sorry you are feeling that way. done",
		s.withEmpathy("done", negative, "en"))
	assert.Equal(t,
		"Lamento que te sientas así. hecho",
		s.withEmpathy("hecho", negative, "es"))

	weak := &entity.Sentiment{Label: "NEGATIVE", Score: 0.5}
	assert.Equal(t, "done", s.withEmpathy("done", weak, "en"))

	positive := &entity.Sentiment{Label: "POSITIVE", Score: 0.99}
	assert.Equal(t, "done", s.withEmpathy("done", positive, "en"))

	assert.Equal(t, "done", s.withEmpathy("done", nil, "en"))
}
