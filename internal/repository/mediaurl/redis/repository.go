package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feedplay/server/internal/repository/mediaurl"
)

// repo caches refreshed media URLs by content id with a TTL. It is a plain
// cache: a miss means the caller fetches a fresh URL from the backend, it
// never coordinates playback state between processes.
type repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
	}
}

func (r repo) getMediaURLKey(contentID string) string {
	return "mediaurl:" + contentID
}

func (r repo) GetMediaURL(ctx context.Context, contentID string) (string, error) {
	url, err := r.rc.Get(ctx, r.getMediaURLKey(contentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", mediaurl.ErrNotFound
		}

		return "", fmt.Errorf("failed to get media url: %w", err)
	}

	return url, nil
}

func (r repo) SetMediaURL(ctx context.Context, contentID, url string) error {
	if err := r.rc.Set(ctx, r.getMediaURLKey(contentID), url, r.expireDuration).Err(); err != nil {
		return fmt.Errorf("failed to set media url: %w", err)
	}

	return nil
}
