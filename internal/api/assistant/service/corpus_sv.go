package assistantService

import (
	"context"
	"strings"
	"time"

	"JarvisGolang/internal/api/assistant"
	"JarvisGolang/internal/entity"
	contextPkg "JarvisGolang/pkg/context"
	"JarvisGolang/pkg/nlp"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const (
	defaultLogPageSize = 20
	maxLogPageSize     = 100
)

// AddSample stores one labeled utterance in the training corpus. The new
// row only affects classification after the next Train call.
func (s *assistantService) AddSample(ctx context.Context, req assistant.SampleRequest) (*assistant.SampleResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	utterance := strings.TrimSpace(req.Utterance)
	if len(nlp.Tokenize(utterance, req.Language)) == 0 {
		return nil, assistant.ErrEmptyCommand
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate training sample ID")
		return nil, assistant.ErrSampleFailed
	}

	repoClient, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open repository client for training sample")
		return nil, assistant.ErrSampleFailed
	}

	sample := entity.TrainingSample{
		ID:        id,
		Utterance: utterance,
		Intent:    strings.ToUpper(strings.TrimSpace(req.Intent)),
		Language:  req.Language,
		CreatedAt: time.Now(),
	}

	if err := repoClient.TrainingSamples.CreateTrainingSample(ctx, sample); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     sample.Intent,
			"language":   sample.Language,
			"error":      err.Error(),
		}).Error("Failed to store training sample")
		return nil, assistant.ErrSampleFailed
	}

	corpusSize, err := repoClient.TrainingSamples.CountTrainingSamplesByLanguage(ctx, req.Language)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"language":   req.Language,
			"error":      err.Error(),
		}).Warn("Failed to count training corpus after insert")
		corpusSize = 0
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"intent":      sample.Intent,
		"language":    sample.Language,
		"corpus_size": corpusSize,
	}).Info("Training sample stored")

	return &assistant.SampleResponse{
		ID:         id,
		Language:   req.Language,
		CorpusSize: corpusSize,
	}, nil
}

// CommandLogs pages through the caller's processed-command history,
// newest first.
func (s *assistantService) CommandLogs(ctx context.Context, userID string, limit, offset int) (*assistant.CommandLogsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 {
		limit = defaultLogPageSize
	}
	if limit > maxLogPageSize {
		limit = maxLogPageSize
	}
	if offset < 0 {
		offset = 0
	}

	repoClient, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to open repository client for command logs, trying redis audit log")
		return s.commandLogsFromRedis(ctx, userID, limit, offset)
	}

	logs, total, err := repoClient.CommandLogs.GetCommandLogsByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Warn("Failed to load command logs from database, trying redis audit log")
		return s.commandLogsFromRedis(ctx, userID, limit, offset)
	}

	return &assistant.CommandLogsResponse{
		Logs:  logs,
		Total: total,
	}, nil
}

// commandLogsFromRedis rebuilds the page from the redis turn log when
// postgres is unreachable. The audit log only retains a bounded tail, so
// Total reflects what redis still holds, not the full history.
func (s *assistantService) commandLogsFromRedis(ctx context.Context, userID string, limit, offset int) (*assistant.CommandLogsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	payloads, err := s.redis.RecentTurns(ctx, userID, int64(limit+offset))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Redis audit log unavailable for command logs")
		return nil, assistant.ErrCommandLogsFailed
	}

	rows := make([]entity.CommandLog, 0, len(payloads))
	for _, payload := range payloads {
		var row entity.CommandLog
		if err := jsoniter.UnmarshalFromString(payload, &row); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Skipping undecodable redis turn payload")
			continue
		}
		rows = append(rows, row)
	}

	total := len(rows)
	if offset >= len(rows) {
		rows = rows[:0]
	} else {
		rows = rows[offset:]
	}

	return &assistant.CommandLogsResponse{
		Logs:  rows,
		Total: total,
	}, nil
}
