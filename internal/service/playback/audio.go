package playback

import (
	"context"
)

func (s service) trackUpdate(instanceKey string, state TrackState) TrackUpdate {
	return TrackUpdate{
		InstanceKey: instanceKey,
		State:       state,
		Conns:       s.connRepo.GetSubscribers(instanceKey),
	}
}

// PlayTrack marks the track playing and pauses every other playing track.
// Audio has no preview mode, so there is no non-exclusive variant.
func (s service) PlayTrack(ctx context.Context, instanceKey string) []TrackUpdate {
	track, paused := s.playbackRepo.PlayTrackExclusive(instanceKey)
	s.logger.DebugContext(ctx, "track playing", "instance_key", instanceKey, "paused_count", len(paused))

	updates := make([]TrackUpdate, 0, len(paused)+1)
	updates = append(updates, s.trackUpdate(instanceKey, trackStateFrom(track)))
	for key, pausedTrack := range paused {
		updates = append(updates, s.trackUpdate(key, trackStateFrom(pausedTrack)))
	}

	return updates
}

func (s service) PauseTrack(ctx context.Context, instanceKey string) TrackUpdate {
	track := s.playbackRepo.PauseTrack(instanceKey)
	s.logger.DebugContext(ctx, "track paused", "instance_key", instanceKey)

	return s.trackUpdate(instanceKey, trackStateFrom(track))
}

func (s service) PauseAllTracks(ctx context.Context) []TrackUpdate {
	paused := s.playbackRepo.PauseAllTracks()
	s.logger.DebugContext(ctx, "all tracks paused", "paused_count", len(paused))

	updates := make([]TrackUpdate, 0, len(paused))
	for key, track := range paused {
		updates = append(updates, s.trackUpdate(key, trackStateFrom(track)))
	}

	return updates
}

type SetTrackProgressParams struct {
	InstanceKey     string
	ProgressPercent float64
}

func (s service) SetTrackProgress(ctx context.Context, params *SetTrackProgressParams) TrackUpdate {
	track := s.playbackRepo.SetTrackProgress(params.InstanceKey, params.ProgressPercent)

	return s.trackUpdate(params.InstanceKey, trackStateFrom(track))
}

func (s service) GetTrackState(ctx context.Context, instanceKey string) TrackState {
	return trackStateFrom(s.playbackRepo.GetTrack(instanceKey))
}

func (s service) CountPlayingTracks() int {
	return s.playbackRepo.CountPlayingTracks()
}

type PauseAllMediaResponse struct {
	Videos []InstanceUpdate
	Tracks []TrackUpdate
}

// PauseAllMedia silences everything at once. Switching feed categories must
// stop videos and audio uniformly, so both stores are halted together.
func (s service) PauseAllMedia(ctx context.Context) PauseAllMediaResponse {
	return PauseAllMediaResponse{
		Videos: s.PauseAllVideos(ctx),
		Tracks: s.PauseAllTracks(ctx),
	}
}
