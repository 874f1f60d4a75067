package runstore

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisRunStore(t *testing.T) {
	_, err := NewRedisRunStore(Config{})
	assert.Error(t, err)

	store, err := NewRedisRunStore(Config{Client: redis.NewClient(&redis.Options{Addr: "localhost:0"})})
	require.NoError(t, err)

	id := uuid.MustParse("6f1c2b9e-58a4-4d7e-9a33-0c2f7c1d5e10")
	assert.Equal(t, "mazewalk:runs:6f1c2b9e-58a4-4d7e-9a33-0c2f7c1d5e10", store.key(id))
}

func TestDecodeRuns(t *testing.T) {
	run := i.RunRecord{
		SessionID:  uuid.New(),
		MazeID:     uuid.New(),
		Outcome:    "goal_reached",
		Steps:      4,
		Visited:    4,
		FinalAgent: &maze.Position{Row: 1, Col: 2},
		FinishedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(run)
	require.NoError(t, err)

	runs, err := decodeRuns([]string{string(raw)})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run, runs[0])

	_, err = decodeRuns([]string{"not json"})
	assert.Error(t, err)
}

// TestRedisRunStore needs a running Redis; set REDIS_TEST_ADDR to enable it.
func TestRedisRunStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	store, err := NewRedisRunStore(Config{
		Client:      client,
		KeyPrefix:   "mazewalk-test-" + uuid.NewString(),
		TTLSeconds:  60,
		HistorySize: 2,
	})
	require.NoError(t, err)

	ctx := context.Background()
	mazeID := uuid.New()
	base := time.Now().UTC()
	for n := range 3 {
		require.NoError(t, store.Record(ctx, i.RunRecord{
			SessionID:  uuid.New(),
			MazeID:     mazeID,
			Outcome:    "exhausted",
			Steps:      n + 1,
			FinishedAt: base.Add(time.Duration(n) * time.Second),
		}))
	}
	defer client.Del(ctx, store.key(mazeID))

	assert.Equal(t, int64(2), store.Count(ctx, mazeID))

	runs, err := store.Recent(ctx, mazeID, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Steps)
	assert.Equal(t, 2, runs[1].Steps)

	ttl, err := client.TTL(ctx, store.key(mazeID)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}
