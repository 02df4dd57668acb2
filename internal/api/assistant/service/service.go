package assistantService

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"

	"JarvisGolang/internal/api/assistant"
	assistantRepository "JarvisGolang/internal/api/assistant/repository"
	"JarvisGolang/internal/plugin"
	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/inference"
	"JarvisGolang/pkg/ner"
	"JarvisGolang/pkg/nlp"
	"JarvisGolang/pkg/redis"
	"JarvisGolang/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IAssistantService interface {
	ProcessCommand(ctx context.Context, userID string, req assistant.CommandRequest) (*assistant.CommandResponse, error)
	Train(ctx context.Context, req assistant.TrainRequest) (*assistant.TrainResponse, error)
	AddSample(ctx context.Context, req assistant.SampleRequest) (*assistant.SampleResponse, error)
	CommandLogs(ctx context.Context, userID string, limit, offset int) (*assistant.CommandLogsResponse, error)
	History(ctx context.Context, userID string) (*assistant.HistoryResponse, error)
	ClearContext(ctx context.Context, userID string) error
}

type assistantService struct {
	log           *logrus.Logger
	repo          assistantRepository.Repository
	inference     inference.IInference
	ruleMatcher   *ner.RuleMatcher
	registry      *plugin.Registry
	fallback      plugin.Plugin
	conversations *conversation.Manager
	redis         redis.IRedis
	utils         utils.IUtils

	alpha    float64
	modelDir string

	mu          sync.RWMutex
	classifiers map[string]*nlp.Classifier
}

func New(
	log *logrus.Logger,
	repo assistantRepository.Repository,
	infer inference.IInference,
	ruleMatcher *ner.RuleMatcher,
	registry *plugin.Registry,
	fallback plugin.Plugin,
	conversations *conversation.Manager,
	redisClient redis.IRedis,
	utilities utils.IUtils,
) IAssistantService {
	alpha := 1.0
	if raw := os.Getenv("NLP_SMOOTHING_ALPHA"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			alpha = parsed
		}
	}

	modelDir := os.Getenv("NLP_MODEL_DIR")
	if modelDir == "" {
		modelDir = "models"
	}

	s := &assistantService{
		log:           log,
		repo:          repo,
		inference:     infer,
		ruleMatcher:   ruleMatcher,
		registry:      registry,
		fallback:      fallback,
		conversations: conversations,
		redis:         redisClient,
		utils:         utilities,
		alpha:         alpha,
		modelDir:      modelDir,
		classifiers:   make(map[string]*nlp.Classifier),
	}

	s.loadSavedModels()
	return s
}

// loadSavedModels restores previously trained classifiers from disk so a
// restart does not require retraining. A missing model is normal on first
// boot; a corrupt one is logged and skipped.
func (s *assistantService) loadSavedModels() {
	for _, lang := range []string{nlp.LangSpanish, nlp.LangEnglish} {
		c, err := nlp.LoadClassifier(s.modelPath(lang))
		if err != nil {
			if !errors.Is(err, nlp.ErrModelNotFound) {
				s.log.WithFields(logrus.Fields{
					"language": lang,
					"error":    err.Error(),
				}).Warn("Failed to load saved intent model")
			}
			continue
		}
		s.classifiers[lang] = c
		s.log.WithFields(logrus.Fields{
			"language": lang,
			"classes":  len(c.Classes()),
		}).Info("Loaded saved intent model")
	}
}

func (s *assistantService) modelPath(lang string) string {
	return s.modelDir + "/intent_model_" + lang + ".json"
}

func (s *assistantService) classifier(lang string) *nlp.Classifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifiers[lang]
}

func (s *assistantService) setClassifier(lang string, c *nlp.Classifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifiers[lang] = c
}
