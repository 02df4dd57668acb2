package inference

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"JarvisGolang/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// IInference is the contract with the model-serving sidecar hosting the
// pretrained pipelines (sentiment, zero-shot classification, general and
// specialized NER). Every call is bounded by the client timeout; callers
// treat any error as "no usable result" for that signal only.
type IInference interface {
	Sentiment(ctx context.Context, text, lang string) (*entity.Sentiment, error)
	ZeroShot(ctx context.Context, text string, candidateLabels []string) ([]entity.LabelScore, error)
	ExtractEntities(ctx context.Context, text, lang string) ([]entity.Entity, error)
	ExtractSpecialized(ctx context.Context, text string) ([]entity.Entity, error)
}

type inferenceClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func New(log *logrus.Logger) IInference {
	baseURL := os.Getenv("NLP_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	timeoutSec, _ := strconv.Atoi(os.Getenv("NLP_SERVICE_TIMEOUT_SECONDS"))
	if timeoutSec <= 0 {
		timeoutSec = 10
	}

	log.Info(fmt.Sprintf("Using NLP inference service at %s", baseURL))

	return &inferenceClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		log:     log,
	}
}

type sentimentRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type zeroShotRequest struct {
	Text            string   `json:"text"`
	CandidateLabels []string `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type nerRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type nerEntity struct {
	Word  string  `json:"word"`
	Group string  `json:"entity_group"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Score float64 `json:"score"`
}

func (c *inferenceClient) Sentiment(ctx context.Context, text, lang string) (*entity.Sentiment, error) {
	var out entity.Sentiment
	if err := c.post(ctx, "/sentiment", sentimentRequest{Text: text, Language: lang}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *inferenceClient) ZeroShot(ctx context.Context, text string, candidateLabels []string) ([]entity.LabelScore, error) {
	if len(candidateLabels) == 0 {
		return nil, fmt.Errorf("no candidate labels provided")
	}

	var out zeroShotResponse
	if err := c.post(ctx, "/zero-shot", zeroShotRequest{Text: text, CandidateLabels: candidateLabels}, &out); err != nil {
		return nil, err
	}
	if len(out.Labels) != len(out.Scores) {
		return nil, fmt.Errorf("malformed zero-shot response: %d labels, %d scores", len(out.Labels), len(out.Scores))
	}

	ranked := make([]entity.LabelScore, len(out.Labels))
	for i := range out.Labels {
		ranked[i] = entity.LabelScore{Label: out.Labels[i], Score: out.Scores[i]}
	}
	return ranked, nil
}

func (c *inferenceClient) ExtractEntities(ctx context.Context, text, lang string) ([]entity.Entity, error) {
	return c.ner(ctx, "/ner", nerRequest{Text: text, Language: lang}, entity.SourceGeneral)
}

func (c *inferenceClient) ExtractSpecialized(ctx context.Context, text string) ([]entity.Entity, error) {
	return c.ner(ctx, "/ner/specialized", nerRequest{Text: text}, entity.SourceSpecialized)
}

func (c *inferenceClient) ner(ctx context.Context, path string, req nerRequest, source string) ([]entity.Entity, error) {
	var raw []nerEntity
	if err := c.post(ctx, path, req, &raw); err != nil {
		return nil, err
	}

	entities := make([]entity.Entity, 0, len(raw))
	for _, e := range raw {
		entities = append(entities, entity.Entity{
			Text:       e.Word,
			Label:      e.Group,
			Start:      e.Start,
			End:        e.End,
			Source:     source,
			Confidence: e.Score,
		})
	}
	return entities, nil
}

func (c *inferenceClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := jsoniter.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Warn("Inference service call failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service returned status %d for %s", resp.StatusCode, path)
	}

	if err := jsoniter.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
