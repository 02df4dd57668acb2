package nlp

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var (
	ErrModelNotFound = errors.New("classifier model file not found")
	ErrModelCorrupt  = errors.New("classifier model file is corrupt")
)

// modelFile is the on-disk form of a trained classifier. JSON cannot encode
// -Inf, so priors are pointers and nil marks an unselectable class.
type modelFile struct {
	Alpha          float64              `json:"alpha"`
	Classes        []string             `json:"classes"`
	LogPriors      map[string]*float64  `json:"log_priors"`
	LogLikelihoods map[string][]float64 `json:"log_likelihoods"`
	Vocabulary     map[string]int       `json:"vocabulary"`
	VocabSize      int                  `json:"vocab_size"`
}

// Save persists the full trained parameter set to path. The write goes
// through a temp file and rename so a crash cannot leave a torn model.
func (c *Classifier) Save(path string) error {
	if !c.Trained() {
		return errors.New("cannot save an untrained classifier")
	}

	priors := make(map[string]*float64, len(c.logPriors))
	for label, prior := range c.logPriors {
		if math.IsInf(prior, -1) {
			priors[label] = nil
			continue
		}
		p := prior
		priors[label] = &p
	}

	file := modelFile{
		Alpha:          c.alpha,
		Classes:        c.classes,
		LogPriors:      priors,
		LogLikelihoods: c.logLikelihoods,
		Vocabulary:     c.vocabulary,
		VocabSize:      c.vocabSize,
	}

	data, err := jsoniter.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to serialize classifier model: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace model file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":       path,
		"classes":    len(c.classes),
		"vocab_size": c.vocabSize,
	}).Info("Classifier model saved")

	return nil
}

// LoadClassifier restores a classifier from path. A missing file maps to
// ErrModelNotFound and a malformed one to ErrModelCorrupt; callers treat
// both as "classifier unavailable", not as fatal conditions.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var file modelFile
	if err := jsoniter.Unmarshal(data, &file); err != nil {
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Error("Failed to decode classifier model file")
		return nil, ErrModelCorrupt
	}

	if file.Alpha <= 0 || len(file.Classes) == 0 || file.VocabSize != len(file.Vocabulary) {
		return nil, ErrModelCorrupt
	}

	priors := make(map[string]float64, len(file.Classes))
	for _, label := range file.Classes {
		stored, ok := file.LogPriors[label]
		if !ok {
			return nil, ErrModelCorrupt
		}
		if stored == nil {
			priors[label] = math.Inf(-1)
			continue
		}
		priors[label] = *stored
	}

	for _, label := range file.Classes {
		if len(file.LogLikelihoods[label]) != file.VocabSize {
			return nil, ErrModelCorrupt
		}
	}

	return &Classifier{
		alpha:          file.Alpha,
		classes:        file.Classes,
		logPriors:      priors,
		logLikelihoods: file.LogLikelihoods,
		vocabulary:     file.Vocabulary,
		vocabSize:      file.VocabSize,
	}, nil
}
