// Package runstore keeps the history of finished traversal runs in Redis.
package runstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "mazewalk"

// Config configures a RedisRunStore.
type Config struct {
	Client      *redis.Client
	KeyPrefix   string // namespace of every key, "mazewalk" when empty
	TTLSeconds  int    // lifetime of a maze's history after its latest run
	HistorySize int    // runs kept per maze, unlimited when not positive
}

// RedisRunStore keeps each maze's runs in a sorted set scored by finish time.
type RedisRunStore struct {
	client  *redis.Client
	locker  *redsync.Redsync
	prefix  string
	ttl     time.Duration
	history int64
}

// NewRedisRunStore initializes a RedisRunStore from c.
func NewRedisRunStore(c Config) (*RedisRunStore, error) {
	if c.Client == nil {
		return nil, errors.New("run store needs a redis client")
	}
	prefix := c.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	store := &RedisRunStore{
		client:  c.Client,
		prefix:  prefix,
		ttl:     time.Duration(c.TTLSeconds) * time.Second,
		history: int64(c.HistorySize),
	}
	pool := goredis.NewPool(c.Client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Record appends run to its maze's history, trimming the oldest runs beyond
// the configured history size.
func (s *RedisRunStore) Record(ctx context.Context, run i.RunRecord) error {
	member, err := json.Marshal(run)
	if err != nil {
		return err
	}
	key := s.key(run.MazeID)

	// Concurrent sessions over one maze must not trim each other's fresh runs.
	mutex := s.locker.NewMutex(key + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking run history of maze %s: %w", run.MazeID, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: score(run.FinishedAt), Member: member})
	if s.history > 0 {
		pipe.ZRemRangeByRank(ctx, key, 0, -s.history-1)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to limit runs of a maze, newest first.
func (s *RedisRunStore) Recent(ctx context.Context, mazeID uuid.UUID, limit int) ([]i.RunRecord, error) {
	if limit <= 0 {
		return []i.RunRecord{}, nil
	}
	members, err := s.client.ZRevRange(ctx, s.key(mazeID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	return decodeRuns(members)
}

// Count returns the number of runs kept for a maze.
func (s *RedisRunStore) Count(ctx context.Context, mazeID uuid.UUID) int64 {
	return s.client.ZCard(ctx, s.key(mazeID)).Val()
}

func (s *RedisRunStore) key(mazeID uuid.UUID) string {
	return fmt.Sprintf("%s:runs:%s", s.prefix, mazeID)
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func decodeRuns(members []string) ([]i.RunRecord, error) {
	runs := make([]i.RunRecord, 0, len(members))
	for _, m := range members {
		var run i.RunRecord
		if err := json.Unmarshal([]byte(m), &run); err != nil {
			return nil, fmt.Errorf("decoding run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
