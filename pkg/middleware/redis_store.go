package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const requestIDKeyPrefix = "request_id:"

// RedisRequestIDStore implements RequestIDStore using Redis, so duplicate
// detection survives restarts and works across replicas.
type RedisRequestIDStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRequestIDStore returns a Redis-backed store, or the in-memory
// implementation when Redis is not reachable.
func NewRequestIDStore(host, port, password string, db int, logger *zap.Logger) RequestIDStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
		PoolSize: 10,
		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		// Retry settings
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, using in-memory request ID store",
			zap.String("host", host),
			zap.String("port", port),
			zap.Error(err),
		)
		rdb.Close()
		return NewInMemoryRequestIDStore()
	}

	logger.Info("Redis request ID store initialized",
		zap.String("host", host),
		zap.String("port", port),
		zap.Int("db", db),
	)

	return &RedisRequestIDStore{
		client: rdb,
		logger: logger,
	}
}

func (s *RedisRequestIDStore) Store(ctx context.Context, requestID string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, requestIDKeyPrefix+requestID, response, ttl).Err()
}

func (s *RedisRequestIDStore) Get(ctx context.Context, requestID string) ([]byte, error) {
	value, err := s.client.Get(ctx, requestIDKeyPrefix+requestID).Bytes()
	if err == redis.Nil {
		return nil, ErrRequestIDNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *RedisRequestIDStore) Exists(ctx context.Context, requestID string) (bool, error) {
	count, err := s.client.Exists(ctx, requestIDKeyPrefix+requestID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Close closes the Redis client.
func (s *RedisRequestIDStore) Close() error {
	return s.client.Close()
}
