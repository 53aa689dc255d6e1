package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emrgen/linkdealer/schema"
	redis "github.com/redis/go-redis/v9"
)

const snapshotKey = "linkdealer:info:snapshot"

// NewSnapshot creates a redis-backed cache for the info snapshot.
func NewSnapshot(addr string, ttl time.Duration) *Snapshot {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &Snapshot{client: client, ttl: ttl}
}

// Snapshot keeps one pre-built info payload so /api/info is usually a
// single redis read.
type Snapshot struct {
	client *redis.Client
	ttl    time.Duration
}

// Get returns the cached snapshot, or nil on a miss.
func (s *Snapshot) Get(ctx context.Context) (*schema.Info, error) {
	res := s.client.Get(ctx, snapshotKey)
	if err := res.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	info := &schema.Info{}
	if err := json.Unmarshal(buf, info); err != nil {
		return nil, err
	}

	return info, nil
}

func (s *Snapshot) Set(ctx context.Context, info *schema.Info) error {
	buf, err := json.Marshal(info)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, snapshotKey, buf, s.ttl).Err()
}

func (s *Snapshot) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, snapshotKey).Err()
}
