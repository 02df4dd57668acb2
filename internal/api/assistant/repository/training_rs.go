package assistantRepository

import (
	"JarvisGolang/internal/entity"
	contextPkg "JarvisGolang/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TrainingSampleDB struct {
	ID        sql.NullString `db:"id"`
	Utterance sql.NullString `db:"utterance"`
	Intent    sql.NullString `db:"intent"`
	Language  sql.NullString `db:"language"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *trainingRepository) CreateTrainingSample(ctx context.Context, sample entity.TrainingSample) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         sample.ID,
		"utterance":  sample.Utterance,
		"intent":     sample.Intent,
		"language":   sample.Language,
		"created_at": sample.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTrainingSample, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateTrainingSample named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating training sample")
		return err
	}

	return nil
}

func (r *trainingRepository) GetTrainingSamplesByLanguage(ctx context.Context, language string) ([]entity.TrainingSample, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []TrainingSampleDB

	argsKV := map[string]interface{}{
		"language": language,
	}

	query, args, err := sqlx.Named(queryGetTrainingSamplesByLanguage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTrainingSamplesByLanguage named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTrainingSamplesByLanguage execution err")
		return nil, err
	}

	samples := make([]entity.TrainingSample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, r.makeTrainingSample(row))
	}

	return samples, nil
}

func (r *trainingRepository) CountTrainingSamplesByLanguage(ctx context.Context, language string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var count int

	argsKV := map[string]interface{}{
		"language": language,
	}

	query, args, err := sqlx.Named(queryCountTrainingSamplesByLanguage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountTrainingSamplesByLanguage named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountTrainingSamplesByLanguage execution err")
		return 0, err
	}

	return count, nil
}

func (r *trainingRepository) makeTrainingSample(row TrainingSampleDB) entity.TrainingSample {
	return entity.TrainingSample{
		ID:        row.ID.String,
		Utterance: row.Utterance.String,
		Intent:    row.Intent.String,
		Language:  row.Language.String,
		CreatedAt: row.CreatedAt,
	}
}
