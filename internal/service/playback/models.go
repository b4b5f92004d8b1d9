package playback

import (
	"github.com/gorilla/websocket"

	"github.com/feedplay/server/internal/repository/playback"
)

type VideoState struct {
	IsPlaying       bool    `json:"is_playing"`
	IsMuted         bool    `json:"is_muted"`
	ProgressPercent float64 `json:"progress_percent"`
	IsCompleted     bool    `json:"is_completed"`
	ShowOverlay     bool    `json:"show_overlay"`
	Lifecycle       string  `json:"lifecycle"`
}

type TrackState struct {
	IsPlaying       bool    `json:"is_playing"`
	ProgressPercent float64 `json:"progress_percent"`
}

// Lifecycle is the per-instance state machine position derived from the
// stored record: Idle -> Playing -> Completed, back to Playing on replay,
// or Paused from Playing via explicit pause.
type Lifecycle int

const (
	LifecycleIdle Lifecycle = iota
	LifecyclePlaying
	LifecyclePaused
	LifecycleCompleted
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleIdle:
		return "idle"
	case LifecyclePlaying:
		return "playing"
	case LifecyclePaused:
		return "paused"
	case LifecycleCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// lifecycleOf derives the state machine position from a record. A paused
// instance that never progressed past zero is indistinguishable from an idle
// one, which is fine: both render the same affordance.
func lifecycleOf(video playback.Video) Lifecycle {
	switch {
	case video.IsPlaying:
		return LifecyclePlaying
	case video.IsCompleted:
		return LifecycleCompleted
	case video.ProgressPercent > 0:
		return LifecyclePaused
	default:
		return LifecycleIdle
	}
}

func videoStateFrom(video playback.Video) VideoState {
	return VideoState{
		IsPlaying:       video.IsPlaying,
		IsMuted:         video.IsMuted,
		ProgressPercent: video.ProgressPercent,
		IsCompleted:     video.IsCompleted,
		ShowOverlay:     video.ShowOverlay,
		Lifecycle:       lifecycleOf(video).String(),
	}
}

func trackStateFrom(track playback.Track) TrackState {
	return TrackState{
		IsPlaying:       track.IsPlaying,
		ProgressPercent: track.ProgressPercent,
	}
}

// InstanceUpdate carries one video instance's new state together with the
// connections subscribed to it, ready for fan-out.
type InstanceUpdate struct {
	InstanceKey string
	State       VideoState
	Conns       []*websocket.Conn
}

// TrackUpdate is the audio counterpart of InstanceUpdate.
type TrackUpdate struct {
	InstanceKey string
	State       TrackState
	Conns       []*websocket.Conn
}
