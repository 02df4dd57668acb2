package assistantRepository

import (
	"JarvisGolang/internal/entity"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		TrainingSamples: &trainingRepository{q: sqlExecutor, log: r.log},
		CommandLogs:     &commandRepository{q: sqlExecutor, log: r.log},
		Commit:          commitFunc,
		Rollback:        rollbackFunc,
	}, nil
}

type Client struct {
	TrainingSamples interface {
		CreateTrainingSample(ctx context.Context, sample entity.TrainingSample) error
		GetTrainingSamplesByLanguage(ctx context.Context, language string) ([]entity.TrainingSample, error)
		CountTrainingSamplesByLanguage(ctx context.Context, language string) (int, error)
	}

	CommandLogs interface {
		CreateCommandLog(ctx context.Context, row entity.CommandLog) error
		GetCommandLogsByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.CommandLog, int, error)
	}

	Commit   func() error
	Rollback func() error
}

type trainingRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type commandRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
