package mediaurl

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mediaurlRedis "github.com/feedplay/server/internal/repository/mediaurl/redis"
)

func TestRefreshMediaURL(t *testing.T) {
	var backendCalls atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls.Add(1)
		assert.Equal(t, "/api/content/content-1/media-url", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"media_url": "https://cdn.example/v.mp4?sig=abc"}`))
	}))
	defer backend.Close()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cacheRepo := mediaurlRedis.NewRepo(rc, time.Minute)

	s := NewService(cacheRepo, backend.URL, slog.Default())
	ctx := context.Background()

	url, err := s.RefreshMediaURL(ctx, "content-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/v.mp4?sig=abc", url)
	assert.Equal(t, int64(1), backendCalls.Load())

	// second refresh within the TTL is served from cache
	url, err = s.RefreshMediaURL(ctx, "content-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/v.mp4?sig=abc", url)
	assert.Equal(t, int64(1), backendCalls.Load(), "cache hit must not call the backend")
}

func TestRefreshMediaURLBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer backend.Close()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cacheRepo := mediaurlRedis.NewRepo(rc, time.Minute)

	s := NewService(cacheRepo, backend.URL, slog.Default())

	_, err := s.RefreshMediaURL(context.Background(), "content-1")
	assert.Error(t, err)
}

func TestRefreshMediaURLEmptyBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cacheRepo := mediaurlRedis.NewRepo(rc, time.Minute)

	s := NewService(cacheRepo, backend.URL, slog.Default())

	_, err := s.RefreshMediaURL(context.Background(), "content-1")
	assert.Error(t, err)
}
