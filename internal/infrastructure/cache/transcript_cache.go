package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TranscriptCache keeps the joined transcript of recently active meetings
// in Redis under a short TTL. The database stays the source of truth; a
// cache miss falls back to rebuilding from chunk rows. Keys are scoped
// per meeting so concurrent meetings never share state.
type TranscriptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTranscriptCache creates a transcript cache with the given TTL
func NewTranscriptCache(client *redis.Client, ttl time.Duration) *TranscriptCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TranscriptCache{client: client, ttl: ttl}
}

func transcriptKey(meetingID uuid.UUID) string {
	return fmt.Sprintf("transcript:%s", meetingID)
}

// Get returns the cached transcript, or ok=false on a miss
func (c *TranscriptCache) Get(ctx context.Context, meetingID uuid.UUID) (string, bool, error) {
	val, err := c.client.Get(ctx, transcriptKey(meetingID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores the transcript and refreshes its TTL
func (c *TranscriptCache) Set(ctx context.Context, meetingID uuid.UUID, transcript string) error {
	return c.client.Set(ctx, transcriptKey(meetingID), transcript, c.ttl).Err()
}

// Append adds one line to the cached transcript without rebuilding it.
// A miss is left as a miss; the next Get rebuilds from the database.
func (c *TranscriptCache) Append(ctx context.Context, meetingID uuid.UUID, line string) error {
	key := transcriptKey(meetingID)
	existing, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing != "" {
		existing += "\n"
	}
	return c.client.Set(ctx, key, existing+line, c.ttl).Err()
}

// Invalidate drops the cached transcript for a meeting
func (c *TranscriptCache) Invalidate(ctx context.Context, meetingID uuid.UUID) error {
	return c.client.Del(ctx, transcriptKey(meetingID)).Err()
}
