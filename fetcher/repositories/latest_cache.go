package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fortstats/pkg/database/models"
	"fortstats/pkg/messages"
	"fortstats/pkg/redis"
	"strings"
	"time"
)

// ErrSnapshotNotFound is returned when a username has no cached snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// RedisClient is the subset of the redis client used by the cache.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// LatestCache keeps the latest snapshot of each username.
type LatestCache interface {
	SetLatest(ctx context.Context, snapshot models.AccountSnapshot) error
	GetLatest(ctx context.Context, username string) (*models.AccountSnapshot, error)
}

type latestCache struct {
	redis RedisClient
	ttl   time.Duration
}

// NewLatestCache creates the latest snapshot cache.
func NewLatestCache(client RedisClient, ttl time.Duration) LatestCache {
	return &latestCache{redis: client, ttl: ttl}
}

// LatestKey returns the cache key of a username.
func LatestKey(username string) string {
	return "account:latest:" + strings.ToLower(username)
}

// SetLatest stores the snapshot, replacing any previous one.
func (lc *latestCache) SetLatest(ctx context.Context, snapshot models.AccountSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("couldn't marshal snapshot: %w", err)
	}

	return lc.redis.Set(ctx, LatestKey(snapshot.Username), string(data), lc.ttl)
}

// GetLatest returns the latest snapshot of a username.
func (lc *latestCache) GetLatest(ctx context.Context, username string) (*models.AccountSnapshot, error) {
	data, err := lc.redis.Get(ctx, LatestKey(username))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: "+messages.SnapshotNotFoundMsg, ErrSnapshotNotFound, username)
		}
		return nil, err
	}

	var snapshot models.AccountSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal cached snapshot: %w", err)
	}

	return &snapshot, nil
}
