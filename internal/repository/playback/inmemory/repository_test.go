package inmemory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVideoDefaults(t *testing.T) {
	r := NewRepo()

	video := r.GetVideo("v1")
	assert.False(t, video.IsPlaying, "new instance must not be playing")
	assert.True(t, video.IsMuted, "new instance must be muted")
	assert.Equal(t, float64(0), video.ProgressPercent)
	assert.False(t, video.IsCompleted)
	assert.True(t, video.ShowOverlay, "new instance must show overlay")
}

func TestPlayVideoNonExclusive(t *testing.T) {
	r := NewRepo()

	r.PlayVideo("a", true)
	r.PlayVideo("b", true)

	assert.True(t, r.GetVideo("a").IsPlaying, "a must stay playing")
	assert.True(t, r.GetVideo("b").IsPlaying, "b must be playing")
}

func TestPlayVideoExclusive(t *testing.T) {
	r := NewRepo()
	r.PlayVideo("v1", true)
	r.PlayVideo("v2", true)

	video, paused := r.PlayVideoExclusive("v3", false)

	assert.True(t, video.IsPlaying)
	assert.False(t, video.IsMuted)
	require.Len(t, paused, 2)
	assert.False(t, paused["v1"].IsPlaying)
	assert.False(t, paused["v2"].IsPlaying)
	assert.Equal(t, 1, r.CountPlayingVideos(), "exactly one instance playing after exclusive play")
}

func TestPlayVideoExclusiveAlreadyPlaying(t *testing.T) {
	r := NewRepo()
	r.PlayVideoExclusive("v1", true)

	_, paused := r.PlayVideoExclusive("v1", true)

	assert.Empty(t, paused, "replaying the sole playing instance pauses nothing")
	assert.Equal(t, 1, r.CountPlayingVideos())
}

func TestPlayVideoResetsCompleted(t *testing.T) {
	r := NewRepo()
	r.SetVideoCompleted("v1", true)

	video, _ := r.PlayVideoExclusive("v1", true)
	assert.False(t, video.IsCompleted, "replay must reset completed")

	r.SetVideoCompleted("v2", true)
	video = r.PlayVideo("v2", true)
	assert.False(t, video.IsCompleted, "replay must reset completed")
}

func TestPauseVideoIdempotent(t *testing.T) {
	r := NewRepo()
	r.PlayVideo("v1", true)

	first := r.PauseVideo("v1")
	second := r.PauseVideo("v1")

	assert.Equal(t, first, second, "pausing twice must equal pausing once")
	assert.False(t, second.IsPlaying)
}

func TestPauseAllVideos(t *testing.T) {
	r := NewRepo()
	r.PlayVideo("v1", true)
	r.PlayVideo("v2", true)
	r.GetVideo("v3")

	paused := r.PauseAllVideos()

	assert.Len(t, paused, 2, "only playing instances change")
	for key, video := range r.ListVideos() {
		assert.False(t, video.IsPlaying, "instance %s must be paused", key)
	}
}

func TestToggleVideoMutedIndependent(t *testing.T) {
	r := NewRepo()
	r.GetVideo("a")
	r.GetVideo("b")

	video := r.ToggleVideoMuted("a")

	assert.False(t, video.IsMuted)
	assert.True(t, r.GetVideo("b").IsMuted, "toggling a must not touch b")

	video = r.ToggleVideoMuted("a")
	assert.True(t, video.IsMuted)
}

func TestSetVideoProgressClamped(t *testing.T) {
	r := NewRepo()

	video := r.SetVideoProgress("v1", 150)
	assert.Equal(t, float64(100), video.ProgressPercent)

	video = r.SetVideoProgress("v1", -20)
	assert.Equal(t, float64(0), video.ProgressPercent)

	video = r.SetVideoProgress("v1", 45)
	assert.Equal(t, float64(45), video.ProgressPercent)
}

func TestProgressSurvivesLosingExclusivity(t *testing.T) {
	r := NewRepo()
	r.PlayVideoExclusive("v1", true)
	r.SetVideoProgress("v1", 45)

	r.PlayVideoExclusive("v2", true)

	video := r.GetVideo("v1")
	assert.False(t, video.IsPlaying)
	assert.Equal(t, float64(45), video.ProgressPercent, "progress is not reset by losing exclusivity")
}

func TestOverlay(t *testing.T) {
	r := NewRepo()

	video := r.SetShowOverlay("v1", false)
	assert.False(t, video.ShowOverlay)

	video = r.ToggleShowOverlay("v1")
	assert.True(t, video.ShowOverlay)

	// overlay has no playback side effect
	assert.False(t, video.IsPlaying)
}

func TestPlayTrackExclusive(t *testing.T) {
	r := NewRepo()
	r.PlayTrackExclusive("t1")

	track, paused := r.PlayTrackExclusive("t2")

	assert.True(t, track.IsPlaying)
	require.Len(t, paused, 1)
	assert.False(t, paused["t1"].IsPlaying)
	assert.Equal(t, 1, r.CountPlayingTracks())
}

func TestTracksSeparateFromVideos(t *testing.T) {
	r := NewRepo()
	r.PlayVideo("k1", true)

	_, paused := r.PlayTrackExclusive("k1")

	assert.Empty(t, paused)
	assert.True(t, r.GetVideo("k1").IsPlaying, "track play must not touch the video mapping")
}

func TestPauseAllTracks(t *testing.T) {
	r := NewRepo()
	r.PlayTrackExclusive("t1")
	r.SetTrackProgress("t2", 30)

	paused := r.PauseAllTracks()

	assert.Len(t, paused, 1)
	assert.False(t, r.GetTrack("t1").IsPlaying)
	assert.Equal(t, float64(30), r.GetTrack("t2").ProgressPercent)
}

func TestSetTrackProgressClamped(t *testing.T) {
	r := NewRepo()

	track := r.SetTrackProgress("t1", 101)
	assert.Equal(t, float64(100), track.ProgressPercent)

	track = r.SetTrackProgress("t1", -1)
	assert.Equal(t, float64(0), track.ProgressPercent)
}
