package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedis is the durable turn log. The in-memory conversation store is the
// source of truth for a running process; this log only mirrors turns for
// audit and cross-restart inspection, so every operation is best-effort.
type IRedis interface {
	AppendTurn(ctx context.Context, userID string, payload string) error
	RecentTurns(ctx context.Context, userID string, limit int64) ([]string, error)
	ClearTurns(ctx context.Context, userID string) error
}

type redisClient struct {
	client   *redis.Client
	maxTurns int64
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	maxTurns, _ := strconv.ParseInt(os.Getenv("REDIS_TURN_LOG_SIZE"), 10, 64)
	if maxTurns <= 0 {
		maxTurns = 200
	}

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, maxTurns: maxTurns}
}

func turnLogKey(userID string) string {
	return fmt.Sprintf("assistant:turns:%s", userID)
}

func (r *redisClient) AppendTurn(ctx context.Context, userID string, payload string) error {
	key := turnLogKey(userID)
	if err := r.client.LPush(ctx, key, payload).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error appending turn for user %s: %v", userID, err))
		return err
	}
	if err := r.client.LTrim(ctx, key, 0, r.maxTurns-1).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error trimming turn log for user %s: %v", userID, err))
		return err
	}
	return nil
}

func (r *redisClient) RecentTurns(ctx context.Context, userID string, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = r.maxTurns
	}
	turns, err := r.client.LRange(ctx, turnLogKey(userID), 0, limit-1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logrus.Error(fmt.Sprintf("Error reading turn log for user %s: %v", userID, err))
		return nil, err
	}
	return turns, nil
}

func (r *redisClient) ClearTurns(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, turnLogKey(userID)).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error clearing turn log for user %s: %v", userID, err))
		return err
	}
	return nil
}
