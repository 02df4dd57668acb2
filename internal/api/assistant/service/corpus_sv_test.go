package assistantService

import (
	"context"
	"errors"
	"testing"

	"JarvisGolang/internal/api/assistant"
	assistantRepository "JarvisGolang/internal/api/assistant/repository"
	"JarvisGolang/internal/entity"
	"JarvisGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrainingSamples struct {
	created   []entity.TrainingSample
	samples   []entity.TrainingSample
	count     int
	createErr error
	countErr  error
}

func (f *fakeTrainingSamples) CreateTrainingSample(ctx context.Context, sample entity.TrainingSample) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, sample)
	return nil
}

func (f *fakeTrainingSamples) GetTrainingSamplesByLanguage(ctx context.Context, language string) ([]entity.TrainingSample, error) {
	return f.samples, nil
}

func (f *fakeTrainingSamples) CountTrainingSamplesByLanguage(ctx context.Context, language string) (int, error) {
	return f.count, f.countErr
}

type fakeCommandLogs struct {
	logs      []entity.CommandLog
	total     int
	err       error
	gotLimit  int
	gotOffset int
}

func (f *fakeCommandLogs) CreateCommandLog(ctx context.Context, row entity.CommandLog) error {
	return nil
}

func (f *fakeCommandLogs) GetCommandLogsByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.CommandLog, int, error) {
	f.gotLimit = limit
	f.gotOffset = offset
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.logs, f.total, nil
}

type fakeRepository struct {
	training *fakeTrainingSamples
	logs     *fakeCommandLogs
}

func (f *fakeRepository) NewClient(tx bool) (assistantRepository.Client, error) {
	return assistantRepository.Client{
		TrainingSamples: f.training,
		CommandLogs:     f.logs,
		Commit:          func() error { return nil },
		Rollback:        func() error { return nil },
	}, nil
}

func newCorpusService(repo *fakeRepository, redisLog *fakeRedis) *assistantService {
	return &assistantService{
		log:   logrus.New(),
		repo:  repo,
		redis: redisLog,
		utils: utils.New(),
	}
}

func TestAddSampleStoresRow(t *testing.T) {
	training := &fakeTrainingSamples{count: 4}
	s := newCorpusService(&fakeRepository{training: training, logs: &fakeCommandLogs{}}, &fakeRedis{})

	resp, err := s.AddSample(context.Background(), assistant.SampleRequest{
		Utterance: "  enciende la luz del salón  ",
		Intent:    "intent_turn_on_light",
		Language:  "es",
	})
	require.NoError(t, err)

	require.Len(t, training.created, 1)
	assert.Equal(t, "enciende la luz del salón", training.created[0].Utterance)
	assert.Equal(t, "INTENT_TURN_ON_LIGHT", training.created[0].Intent)
	assert.Equal(t, "es", training.created[0].Language)
	assert.Len(t, training.created[0].ID, 26)

	assert.Equal(t, training.created[0].ID, resp.ID)
	assert.Equal(t, 4, resp.CorpusSize)
}

func TestAddSampleRejectsBlankUtterance(t *testing.T) {
	s := newCorpusService(&fakeRepository{training: &fakeTrainingSamples{}, logs: &fakeCommandLogs{}}, &fakeRedis{})

	_, err := s.AddSample(context.Background(), assistant.SampleRequest{
		Utterance: "¿¡!?",
		Intent:    "INTENT_GREET",
		Language:  "es",
	})
	assert.ErrorIs(t, err, assistant.ErrEmptyCommand)
}

func TestAddSampleStorageFailure(t *testing.T) {
	training := &fakeTrainingSamples{createErr: errors.New("insert failed")}
	s := newCorpusService(&fakeRepository{training: training, logs: &fakeCommandLogs{}}, &fakeRedis{})

	_, err := s.AddSample(context.Background(), assistant.SampleRequest{
		Utterance: "turn on the light",
		Intent:    "INTENT_TURN_ON_LIGHT",
		Language:  "en",
	})
	assert.ErrorIs(t, err, assistant.ErrSampleFailed)
}

func TestAddSampleCountFailureStillSucceeds(t *testing.T) {
	training := &fakeTrainingSamples{countErr: errors.New("count failed")}
	s := newCorpusService(&fakeRepository{training: training, logs: &fakeCommandLogs{}}, &fakeRedis{})

	resp, err := s.AddSample(context.Background(), assistant.SampleRequest{
		Utterance: "turn on the light",
		Intent:    "INTENT_TURN_ON_LIGHT",
		Language:  "en",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CorpusSize)
	assert.Len(t, training.created, 1)
}

func TestCommandLogsPagingDefaults(t *testing.T) {
	logs := &fakeCommandLogs{
		logs:  []entity.CommandLog{{ID: "01", UserID: "u1", Text: "hola"}},
		total: 7,
	}
	s := newCorpusService(&fakeRepository{training: &fakeTrainingSamples{}, logs: logs}, &fakeRedis{})

	resp, err := s.CommandLogs(context.Background(), "u1", 0, -5)
	require.NoError(t, err)

	assert.Equal(t, defaultLogPageSize, logs.gotLimit)
	assert.Equal(t, 0, logs.gotOffset)
	assert.Equal(t, 7, resp.Total)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "hola", resp.Logs[0].Text)
}

func TestCommandLogsClampsLimit(t *testing.T) {
	logs := &fakeCommandLogs{}
	s := newCorpusService(&fakeRepository{training: &fakeTrainingSamples{}, logs: logs}, &fakeRedis{})

	_, err := s.CommandLogs(context.Background(), "u1", 500, 40)
	require.NoError(t, err)

	assert.Equal(t, maxLogPageSize, logs.gotLimit)
	assert.Equal(t, 40, logs.gotOffset)
}

func TestCommandLogsFallBackToRedisAuditLog(t *testing.T) {
	logs := &fakeCommandLogs{err: errors.New("select failed")}
	redisLog := &fakeRedis{turns: []string{
		`{"id":"02","user_id":"u1","text":"qué hora es","intent":"INTENT_GET_TIME"}`,
		`{"id":"01","user_id":"u1","text":"hola","intent":"INTENT_GREET"}`,
		`not json`,
	}}
	s := newCorpusService(&fakeRepository{training: &fakeTrainingSamples{}, logs: logs}, redisLog)

	resp, err := s.CommandLogs(context.Background(), "u1", 10, 0)
	require.NoError(t, err)

	require.Len(t, resp.Logs, 2)
	assert.Equal(t, "qué hora es", resp.Logs[0].Text)
	assert.Equal(t, "INTENT_GREET", resp.Logs[1].Intent)
	assert.Equal(t, 2, resp.Total)
}

func TestCommandLogsFailWhenRedisAlsoDown(t *testing.T) {
	logs := &fakeCommandLogs{err: errors.New("select failed")}
	redisLog := &fakeRedis{recentErr: errors.New("redis down")}
	s := newCorpusService(&fakeRepository{training: &fakeTrainingSamples{}, logs: logs}, redisLog)

	_, err := s.CommandLogs(context.Background(), "u1", 10, 0)
	assert.ErrorIs(t, err, assistant.ErrCommandLogsFailed)
}
