package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/feedplay/server/internal/service/playback"
)

func (c *controller) handleAlive(ctx context.Context, conn *websocket.Conn, input EmptyStruct) error {
	return nil
}

type PlayVideoInput struct {
	InstanceKey string `json:"instance_key" validate:"required"`
	Muted       bool   `json:"muted"`
}

func (c *controller) handlePlayVideo(ctx context.Context, conn *websocket.Conn, input PlayVideoInput) error {
	update := c.playbackService.PlayVideo(ctx, &playback.PlayVideoParams{
		InstanceKey: input.InstanceKey,
		Muted:       input.Muted,
	})

	return c.broadcastVideoUpdates(ctx, []playback.InstanceUpdate{update})
}

func (c *controller) handlePlayVideoGlobally(ctx context.Context, conn *websocket.Conn, input PlayVideoInput) error {
	updates := c.playbackService.PlayVideoGlobally(ctx, &playback.PlayVideoGloballyParams{
		InstanceKey: input.InstanceKey,
		Muted:       input.Muted,
	})

	return c.broadcastVideoUpdates(ctx, updates)
}

type InstanceKeyInput struct {
	InstanceKey string `json:"instance_key" validate:"required"`
}

func (c *controller) handlePauseVideo(ctx context.Context, conn *websocket.Conn, input InstanceKeyInput) error {
	update := c.playbackService.PauseVideo(ctx, input.InstanceKey)

	return c.broadcastVideoUpdates(ctx, []playback.InstanceUpdate{update})
}

func (c *controller) handlePauseAllVideos(ctx context.Context, conn *websocket.Conn, input EmptyStruct) error {
	updates := c.playbackService.PauseAllVideos(ctx)

	return c.broadcastVideoUpdates(ctx, updates)
}

func (c *controller) handleToggleVideoMute(ctx context.Context, conn *websocket.Conn, input InstanceKeyInput) error {
	update := c.playbackService.ToggleVideoMute(ctx, input.InstanceKey)

	return c.broadcastVideoUpdates(ctx, []playback.InstanceUpdate{update})
}

type UpdateVideoProgressInput struct {
	InstanceKey     string  `json:"instance_key" validate:"required"`
	ProgressPercent float64 `json:"progress_percent"`
}

func (c *controller) handleUpdateVideoProgress(ctx context.Context, conn *websocket.Conn, input UpdateVideoProgressInput) error {
	c.metrics.IncProgressUpdates()

	update := c.playbackService.SetVideoProgress(ctx, &playback.SetVideoProgressParams{
		InstanceKey:     input.InstanceKey,
		ProgressPercent: input.ProgressPercent,
	})

	return c.broadcastVideoUpdates(ctx, []playback.InstanceUpdate{update})
}

type SetVideoCompletedInput struct {
	InstanceKey string `json:"instance_key" validate:"required"`
	Completed   bool   `json:"completed"`
}

func (c *controller) handleSetVideoCompleted(ctx context.Context, conn *websocket.Conn, input SetVideoCompletedInput) error {
	update := c.playbackService.SetVideoCompleted(ctx, &playback.SetVideoCompletedParams{
		InstanceKey: input.InstanceKey,
		Completed:   input.Completed,
	})

	return c.broadcastVideoUpdates(ctx, []playback.InstanceUpdate{update})
}

type SetOverlayInput struct {
	InstanceKey string `json:"instance_key" validate:"required"`
	Show        bool   `json:"show"`
}

func (c *controller) handleSetOverlay(ctx context.Context, conn *websocket.Conn, input SetOverlayInput) error {
	update := c.playbackService.SetShowOverlay(ctx, &playback.SetShowOverlayParams{
		InstanceKey: input.InstanceKey,
		Show:        input.Show,
	})

	return c.broadcastVideoUpdates(ctx, []playback.InstanceUpdate{update})
}

func (c *controller) handleToggleOverlay(ctx context.Context, conn *websocket.Conn, input InstanceKeyInput) error {
	update := c.playbackService.ToggleShowOverlay(ctx, input.InstanceKey)

	return c.broadcastVideoUpdates(ctx, []playback.InstanceUpdate{update})
}

func (c *controller) handlePlayTrack(ctx context.Context, conn *websocket.Conn, input InstanceKeyInput) error {
	updates := c.playbackService.PlayTrack(ctx, input.InstanceKey)

	return c.broadcastTrackUpdates(ctx, updates)
}

func (c *controller) handlePauseTrack(ctx context.Context, conn *websocket.Conn, input InstanceKeyInput) error {
	update := c.playbackService.PauseTrack(ctx, input.InstanceKey)

	return c.broadcastTrackUpdates(ctx, []playback.TrackUpdate{update})
}

type UpdateTrackProgressInput struct {
	InstanceKey     string  `json:"instance_key" validate:"required"`
	ProgressPercent float64 `json:"progress_percent"`
}

func (c *controller) handleUpdateTrackProgress(ctx context.Context, conn *websocket.Conn, input UpdateTrackProgressInput) error {
	c.metrics.IncProgressUpdates()

	update := c.playbackService.SetTrackProgress(ctx, &playback.SetTrackProgressParams{
		InstanceKey:     input.InstanceKey,
		ProgressPercent: input.ProgressPercent,
	})

	return c.broadcastTrackUpdates(ctx, []playback.TrackUpdate{update})
}

func (c *controller) handlePauseAllMedia(ctx context.Context, conn *websocket.Conn, input EmptyStruct) error {
	resp := c.playbackService.PauseAllMedia(ctx)

	if err := c.broadcastVideoUpdates(ctx, resp.Videos); err != nil {
		return err
	}

	return c.broadcastTrackUpdates(ctx, resp.Tracks)
}

func (c *controller) handleSubscribe(ctx context.Context, conn *websocket.Conn, input InstanceKeyInput) error {
	resp, err := c.playbackService.Subscribe(ctx, conn, input.InstanceKey)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	return c.sender.WriteJSON(conn, &Output{
		Type: "VIDEO_STATE_UPDATED",
		Payload: map[string]any{
			"instance_key": resp.InstanceKey,
			"state":        resp.Video,
		},
	})
}

func (c *controller) handleUnsubscribe(ctx context.Context, conn *websocket.Conn, input InstanceKeyInput) error {
	if err := c.playbackService.Unsubscribe(ctx, conn, input.InstanceKey); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

type RefreshMediaURLInput struct {
	ContentID string `json:"content_id" validate:"required,max=128"`
}

func (c *controller) handleRefreshMediaURL(ctx context.Context, conn *websocket.Conn, input RefreshMediaURLInput) error {
	mediaURL, err := c.mediaURLService.RefreshMediaURL(ctx, input.ContentID)
	if err != nil {
		c.metrics.IncErrors()
		c.logger.InfoContext(ctx, "failed to refresh media url", "content_id", input.ContentID, "error", err)

		return c.sender.WriteJSON(conn, &Output{
			Type:    "ERROR",
			Payload: map[string]any{"error": "failed to refresh media url"},
		})
	}

	return c.sender.WriteJSON(conn, &Output{
		Type: "MEDIA_URL_REFRESHED",
		Payload: map[string]any{
			"content_id": input.ContentID,
			"media_url":  mediaURL,
		},
	})
}
