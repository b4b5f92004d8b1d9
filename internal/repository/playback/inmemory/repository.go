package inmemory

import (
	"sync"

	"github.com/feedplay/server/internal/repository/playback"
)

// repo holds the video and track mappings. Every method is a total function
// over the mapping: referencing an unknown key creates its record with
// defaults, so there is no not-found error to report.
//
// Exclusive transitions ("pause others, play this one") happen under a single
// lock hold so no reader can observe two playing instances, or none, in
// between.
type repo struct {
	videos map[string]playback.Video
	tracks map[string]playback.Track
	mu     sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		videos: make(map[string]playback.Video),
		tracks: make(map[string]playback.Track),
	}
}

func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}

	return percent
}

func (r *repo) videoLocked(instanceKey string) playback.Video {
	video, ok := r.videos[instanceKey]
	if !ok {
		video = playback.DefaultVideo()
		r.videos[instanceKey] = video
	}

	return video
}

func (r *repo) GetVideo(instanceKey string) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.videoLocked(instanceKey)
}

// PlayVideo marks the instance playing without touching any other record.
func (r *repo) PlayVideo(instanceKey string, muted bool) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.videoLocked(instanceKey)
	video.IsPlaying = true
	video.IsCompleted = false
	video.IsMuted = muted
	r.videos[instanceKey] = video

	return video
}

// PlayVideoExclusive marks the instance playing and pauses every other
// playing instance in the same transition. It returns the new state of the
// played instance and the records that were paused.
func (r *repo) PlayVideoExclusive(instanceKey string, muted bool) (playback.Video, map[string]playback.Video) {
	r.mu.Lock()
	defer r.mu.Unlock()

	paused := make(map[string]playback.Video)
	for key, video := range r.videos {
		if key != instanceKey && video.IsPlaying {
			video.IsPlaying = false
			r.videos[key] = video
			paused[key] = video
		}
	}

	video := r.videoLocked(instanceKey)
	video.IsPlaying = true
	video.IsCompleted = false
	video.IsMuted = muted
	r.videos[instanceKey] = video

	return video, paused
}

func (r *repo) PauseVideo(instanceKey string) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.videoLocked(instanceKey)
	video.IsPlaying = false
	r.videos[instanceKey] = video

	return video
}

// PauseAllVideos pauses every playing instance and returns the records that
// changed.
func (r *repo) PauseAllVideos() map[string]playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	paused := make(map[string]playback.Video)
	for key, video := range r.videos {
		if video.IsPlaying {
			video.IsPlaying = false
			r.videos[key] = video
			paused[key] = video
		}
	}

	return paused
}

func (r *repo) ToggleVideoMuted(instanceKey string) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.videoLocked(instanceKey)
	video.IsMuted = !video.IsMuted
	r.videos[instanceKey] = video

	return video
}

// SetVideoProgress stores the clamped progress percent. Hot path: called on
// every playback tick of every visible video.
func (r *repo) SetVideoProgress(instanceKey string, percent float64) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.videoLocked(instanceKey)
	video.ProgressPercent = clampPercent(percent)
	r.videos[instanceKey] = video

	return video
}

func (r *repo) SetVideoCompleted(instanceKey string, completed bool) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.videoLocked(instanceKey)
	video.IsCompleted = completed
	r.videos[instanceKey] = video

	return video
}

func (r *repo) SetShowOverlay(instanceKey string, show bool) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.videoLocked(instanceKey)
	video.ShowOverlay = show
	r.videos[instanceKey] = video

	return video
}

func (r *repo) ToggleShowOverlay(instanceKey string) playback.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.videoLocked(instanceKey)
	video.ShowOverlay = !video.ShowOverlay
	r.videos[instanceKey] = video

	return video
}

func (r *repo) ListVideos() map[string]playback.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()

	videos := make(map[string]playback.Video, len(r.videos))
	for key, video := range r.videos {
		videos[key] = video
	}

	return videos
}

func (r *repo) CountPlayingVideos() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, video := range r.videos {
		if video.IsPlaying {
			count++
		}
	}

	return count
}

func (r *repo) trackLocked(instanceKey string) playback.Track {
	track, ok := r.tracks[instanceKey]
	if !ok {
		track = playback.Track{}
		r.tracks[instanceKey] = track
	}

	return track
}

func (r *repo) GetTrack(instanceKey string) playback.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.trackLocked(instanceKey)
}

// PlayTrackExclusive marks the track playing and pauses every other playing
// track in the same transition. Audio is always exclusive.
func (r *repo) PlayTrackExclusive(instanceKey string) (playback.Track, map[string]playback.Track) {
	r.mu.Lock()
	defer r.mu.Unlock()

	paused := make(map[string]playback.Track)
	for key, track := range r.tracks {
		if key != instanceKey && track.IsPlaying {
			track.IsPlaying = false
			r.tracks[key] = track
			paused[key] = track
		}
	}

	track := r.trackLocked(instanceKey)
	track.IsPlaying = true
	r.tracks[instanceKey] = track

	return track, paused
}

func (r *repo) PauseTrack(instanceKey string) playback.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	track := r.trackLocked(instanceKey)
	track.IsPlaying = false
	r.tracks[instanceKey] = track

	return track
}

func (r *repo) PauseAllTracks() map[string]playback.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	paused := make(map[string]playback.Track)
	for key, track := range r.tracks {
		if track.IsPlaying {
			track.IsPlaying = false
			r.tracks[key] = track
			paused[key] = track
		}
	}

	return paused
}

func (r *repo) SetTrackProgress(instanceKey string, percent float64) playback.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	track := r.trackLocked(instanceKey)
	track.ProgressPercent = clampPercent(percent)
	r.tracks[instanceKey] = track

	return track
}

func (r *repo) ListTracks() map[string]playback.Track {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tracks := make(map[string]playback.Track, len(r.tracks))
	for key, track := range r.tracks {
		tracks[key] = track
	}

	return tracks
}

func (r *repo) CountPlayingTracks() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, track := range r.tracks {
		if track.IsPlaying {
			count++
		}
	}

	return count
}
