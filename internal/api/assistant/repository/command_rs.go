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

type CommandLogDB struct {
	ID         sql.NullString `db:"id"`
	UserID     sql.NullString `db:"user_id"`
	Text       sql.NullString `db:"text"`
	Language   sql.NullString `db:"language"`
	Intent     sql.NullString `db:"intent"`
	Response   sql.NullString `db:"response"`
	PluginUsed sql.NullString `db:"plugin_used"`
	Degraded   sql.NullBool   `db:"degraded"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r *commandRepository) CreateCommandLog(ctx context.Context, row entity.CommandLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":          row.ID,
		"user_id":     row.UserID,
		"text":        row.Text,
		"language":    row.Language,
		"intent":      row.Intent,
		"response":    row.Response,
		"plugin_used": row.PluginUsed,
		"degraded":    row.Degraded,
		"created_at":  row.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCommandLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateCommandLog named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating command log")
		return err
	}

	return nil
}

func (r *commandRepository) GetCommandLogsByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.CommandLog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CommandLogDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	}

	query, args, err := sqlx.Named(queryGetCommandLogsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandLogsByUserID named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandLogsByUserID execution err")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountCommandLogsByUserID, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandLogsByUserID count query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandLogsByUserID count execution err")
		return nil, 0, err
	}

	logs := make([]entity.CommandLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, r.makeCommandLog(row))
	}

	return logs, total, nil
}

func (r *commandRepository) makeCommandLog(row CommandLogDB) entity.CommandLog {
	return entity.CommandLog{
		ID:         row.ID.String,
		UserID:     row.UserID.String,
		Text:       row.Text.String,
		Language:   row.Language.String,
		Intent:     row.Intent.String,
		Response:   row.Response.String,
		PluginUsed: row.PluginUsed.String,
		Degraded:   row.Degraded.Bool,
		CreatedAt:  row.CreatedAt,
	}
}
