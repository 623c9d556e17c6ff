package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmsproject/dms/pkg/model"
)

// RedisStore implements Store on a Redis server. Progress and heartbeat
// documents are plain SET values; result logs are RPUSH lists. When a TTL
// is configured every key carries it, so documents of a silent master or
// worker age out on their own.
type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisStore connects to the Redis server described by cfg. The
// connection is lazy; use HealthCheck to verify reachability.
func NewRedisStore(cfg Config) *RedisStore {
	cfg.applyDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &RedisStore{
		client:    client,
		namespace: cfg.Namespace,
		ttl:       cfg.ttl(),
	}
}

// StoreRequest upserts the initial progress document of a request.
func (s *RedisStore) StoreRequest(ctx context.Context, progress *model.SyncProgress) error {
	return s.setJSON(ctx, requestKey(s.namespace, progress.RequestID), progress)
}

// UpdateProgress upserts the progress document after a mutation.
func (s *RedisStore) UpdateProgress(ctx context.Context, progress *model.SyncProgress) error {
	return s.setJSON(ctx, requestKey(s.namespace, progress.RequestID), progress)
}

// AppendResult appends a result to the request's result log.
func (s *RedisStore) AppendResult(ctx context.Context, result *model.SyncResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result for request %s: %w", result.RequestID, err)
	}

	key := resultsKey(s.namespace, result.RequestID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append result for request %s: %w", result.RequestID, err)
	}
	return nil
}

// RecordWorker upserts the most recent heartbeat of a worker.
func (s *RedisStore) RecordWorker(ctx context.Context, hb *model.WorkerHeartbeat) error {
	return s.setJSON(ctx, workerKey(s.namespace, hb.WorkerID), hb)
}

// DeleteRequest removes the progress document and the result log.
func (s *RedisStore) DeleteRequest(ctx context.Context, requestID string) error {
	keys := []string{
		requestKey(s.namespace, requestID),
		resultsKey(s.namespace, requestID),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete request %s: %w", requestID, err)
	}
	return nil
}

// HealthCheck pings the server.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// Close releases the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) setJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}
