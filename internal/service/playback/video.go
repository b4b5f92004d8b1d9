package playback

import (
	"context"
)

func (s service) videoUpdate(instanceKey string, state VideoState) InstanceUpdate {
	return InstanceUpdate{
		InstanceKey: instanceKey,
		State:       state,
		Conns:       s.connRepo.GetSubscribers(instanceKey),
	}
}

type PlayVideoParams struct {
	InstanceKey string
	Muted       bool
}

// PlayVideo marks the instance playing without pausing anyone else. Muted is
// an explicit parameter: feed previews autoplay muted, user-initiated full
// playback starts unmuted, and the call site decides which.
func (s service) PlayVideo(ctx context.Context, params *PlayVideoParams) InstanceUpdate {
	video := s.playbackRepo.PlayVideo(params.InstanceKey, params.Muted)
	s.logger.DebugContext(ctx, "video playing", "instance_key", params.InstanceKey, "muted", params.Muted)

	return s.videoUpdate(params.InstanceKey, videoStateFrom(video))
}

type PlayVideoGloballyParams struct {
	InstanceKey string
	Muted       bool
}

// PlayVideoGlobally marks the instance playing and pauses every other
// playing instance in one state transition. The first returned update is the
// played instance, followed by one update per instance that was paused.
func (s service) PlayVideoGlobally(ctx context.Context, params *PlayVideoGloballyParams) []InstanceUpdate {
	video, paused := s.playbackRepo.PlayVideoExclusive(params.InstanceKey, params.Muted)
	s.logger.DebugContext(ctx, "video playing globally",
		"instance_key", params.InstanceKey,
		"muted", params.Muted,
		"paused_count", len(paused),
	)

	updates := make([]InstanceUpdate, 0, len(paused)+1)
	updates = append(updates, s.videoUpdate(params.InstanceKey, videoStateFrom(video)))
	for key, pausedVideo := range paused {
		updates = append(updates, s.videoUpdate(key, videoStateFrom(pausedVideo)))
	}

	return updates
}

func (s service) PauseVideo(ctx context.Context, instanceKey string) InstanceUpdate {
	video := s.playbackRepo.PauseVideo(instanceKey)
	s.logger.DebugContext(ctx, "video paused", "instance_key", instanceKey)

	return s.videoUpdate(instanceKey, videoStateFrom(video))
}

// PauseAllVideos pauses every instance; called on navigation away from a
// screen or a feed category switch so nothing keeps playing off-screen.
func (s service) PauseAllVideos(ctx context.Context) []InstanceUpdate {
	paused := s.playbackRepo.PauseAllVideos()
	s.logger.DebugContext(ctx, "all videos paused", "paused_count", len(paused))

	updates := make([]InstanceUpdate, 0, len(paused))
	for key, video := range paused {
		updates = append(updates, s.videoUpdate(key, videoStateFrom(video)))
	}

	return updates
}

// ToggleVideoMute flips mute for this instance only. Mute is independent per
// instance: the user unmutes exactly the video they tapped.
func (s service) ToggleVideoMute(ctx context.Context, instanceKey string) InstanceUpdate {
	video := s.playbackRepo.ToggleVideoMuted(instanceKey)
	s.logger.DebugContext(ctx, "video mute toggled", "instance_key", instanceKey, "muted", video.IsMuted)

	return s.videoUpdate(instanceKey, videoStateFrom(video))
}

type SetVideoProgressParams struct {
	InstanceKey     string
	ProgressPercent float64
}

// SetVideoProgress stores the clamped progress percent. Driven by native
// playback tick callbacks, so it is deliberately not logged.
func (s service) SetVideoProgress(ctx context.Context, params *SetVideoProgressParams) InstanceUpdate {
	video := s.playbackRepo.SetVideoProgress(params.InstanceKey, params.ProgressPercent)

	return s.videoUpdate(params.InstanceKey, videoStateFrom(video))
}

type SetVideoCompletedParams struct {
	InstanceKey string
	Completed   bool
}

// SetVideoCompleted sets the completion flag. Renderers pair it with
// PauseVideo when playback naturally finishes; whether to reset progress for
// a restart is renderer policy.
func (s service) SetVideoCompleted(ctx context.Context, params *SetVideoCompletedParams) InstanceUpdate {
	video := s.playbackRepo.SetVideoCompleted(params.InstanceKey, params.Completed)
	s.logger.DebugContext(ctx, "video completed set", "instance_key", params.InstanceKey, "completed", params.Completed)

	return s.videoUpdate(params.InstanceKey, videoStateFrom(video))
}

type SetShowOverlayParams struct {
	InstanceKey string
	Show        bool
}

// SetShowOverlay sets the presentation-only overlay hint; no playback side
// effect.
func (s service) SetShowOverlay(ctx context.Context, params *SetShowOverlayParams) InstanceUpdate {
	video := s.playbackRepo.SetShowOverlay(params.InstanceKey, params.Show)

	return s.videoUpdate(params.InstanceKey, videoStateFrom(video))
}

func (s service) ToggleShowOverlay(ctx context.Context, instanceKey string) InstanceUpdate {
	video := s.playbackRepo.ToggleShowOverlay(instanceKey)

	return s.videoUpdate(instanceKey, videoStateFrom(video))
}

// GetVideoState reads one instance's state, creating the default record on
// first reference.
func (s service) GetVideoState(ctx context.Context, instanceKey string) VideoState {
	return videoStateFrom(s.playbackRepo.GetVideo(instanceKey))
}

func (s service) ListVideoStates(ctx context.Context) map[string]VideoState {
	videos := s.playbackRepo.ListVideos()

	states := make(map[string]VideoState, len(videos))
	for key, video := range videos {
		states[key] = videoStateFrom(video)
	}

	return states
}

func (s service) CountPlayingVideos() int {
	return s.playbackRepo.CountPlayingVideos()
}
