package mediaurl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/feedplay/server/internal/repository/mediaurl"
)

type iCacheRepo interface {
	GetMediaURL(ctx context.Context, contentID string) (string, error)
	SetMediaURL(ctx context.Context, contentID, url string) error
}

// service refreshes stale media URLs. Stream URLs handed to clients expire;
// when playback fails on one, the renderer asks here for a fresh URL and
// re-issues play. Fresh URLs are cached with a TTL so a burst of failures
// across feed items does not hammer the content service.
type service struct {
	cacheRepo  iCacheRepo
	httpClient *http.Client
	backendURL string
	logger     *slog.Logger
}

func NewService(cacheRepo iCacheRepo, backendURL string, logger *slog.Logger) *service {
	return &service{
		cacheRepo:  cacheRepo,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		backendURL: backendURL,
		logger:     logger,
	}
}

type mediaURLResponse struct {
	MediaURL string `json:"media_url"`
}

func (s service) RefreshMediaURL(ctx context.Context, contentID string) (string, error) {
	cached, err := s.cacheRepo.GetMediaURL(ctx, contentID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, mediaurl.ErrNotFound) {
		s.logger.WarnContext(ctx, "media url cache read failed", "content_id", contentID, "error", err)
	}

	freshURL, err := s.fetchMediaURL(ctx, contentID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch media url: %w", err)
	}

	if err := s.cacheRepo.SetMediaURL(ctx, contentID, freshURL); err != nil {
		// cache fill is best effort
		s.logger.WarnContext(ctx, "media url cache write failed", "content_id", contentID, "error", err)
	}

	return freshURL, nil
}

func (s service) fetchMediaURL(ctx context.Context, contentID string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/content/%s/media-url", s.backendURL, url.PathEscape(contentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var body mediaURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if body.MediaURL == "" {
		return "", errors.New("backend returned empty media url")
	}

	return body.MediaURL, nil
}
