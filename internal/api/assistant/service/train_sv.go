package assistantService

import (
	"context"
	"time"

	"JarvisGolang/internal/api/assistant"
	contextPkg "JarvisGolang/pkg/context"
	"JarvisGolang/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// Reserved intents always known to the classifier even when the corpus
// has no samples for them yet. Their priors stay unselectable until real
// samples arrive.
var reservedIntents = []string{
	"INTENT_GREET",
	"INTENT_FAREWELL",
	"INTENT_HELP",
	"INTENT_CLEAR_CONTEXT",
}

func (s *assistantService) Train(ctx context.Context, req assistant.TrainRequest) (*assistant.TrainResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repoClient, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open repository client for training")
		return nil, assistant.ErrTrainingFailed
	}

	samples, err := repoClient.TrainingSamples.GetTrainingSamplesByLanguage(ctx, req.Language)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"language":   req.Language,
			"error":      err.Error(),
		}).Error("Failed to load training samples")
		return nil, assistant.ErrTrainingFailed
	}
	if len(samples) == 0 {
		return nil, assistant.ErrTrainingDataEmpty
	}

	examples := make([]nlp.TrainingExample, 0, len(samples))
	sequences := make([][]string, 0, len(samples))
	for _, sample := range samples {
		tokens := nlp.Tokenize(sample.Utterance, req.Language)
		if len(tokens) == 0 {
			continue
		}
		examples = append(examples, nlp.TrainingExample{
			Tokens: tokens,
			Label:  sample.Intent,
		})
		sequences = append(sequences, tokens)
	}
	if len(examples) == 0 {
		return nil, assistant.ErrTrainingDataEmpty
	}

	vocabulary := nlp.BuildVocabulary(sequences)

	classifier, err := nlp.NewClassifier(s.alpha)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to construct classifier")
		return nil, assistant.ErrTrainingFailed
	}

	if err := classifier.Train(examples, vocabulary, reservedIntents...); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"language":   req.Language,
			"error":      err.Error(),
		}).Error("Classifier training failed")
		return nil, assistant.ErrTrainingFailed
	}

	if err := classifier.Save(s.modelPath(req.Language)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"language":   req.Language,
			"error":      err.Error(),
		}).Error("Failed to persist trained model")
		return nil, assistant.ErrTrainingFailed
	}

	s.setClassifier(req.Language, classifier)

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"language":        req.Language,
		"samples":         len(examples),
		"classes":         len(classifier.Classes()),
		"vocabulary_size": classifier.VocabularySize(),
	}).Info("Intent classifier trained")

	return &assistant.TrainResponse{
		Language:       req.Language,
		Samples:        len(examples),
		Classes:        len(classifier.Classes()),
		VocabularySize: classifier.VocabularySize(),
		TrainedAt:      time.Now(),
	}, nil
}
