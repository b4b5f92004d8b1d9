package playback

// Video is the stored record for one rendered video instance. The instance
// key identifies one on-screen occurrence, not the underlying content: the
// same content shown in two lists has two records. Records are created on
// first reference with DefaultVideo and are never deleted.
type Video struct {
	IsPlaying       bool
	IsMuted         bool
	ProgressPercent float64
	IsCompleted     bool
	ShowOverlay     bool
}

// DefaultVideo is the state of a never-referenced instance: paused, muted,
// zero progress, overlay shown.
func DefaultVideo() Video {
	return Video{
		IsMuted:     true,
		ShowOverlay: true,
	}
}

// Track is the stored record for one audio track instance, kept in a
// mapping separate from videos.
type Track struct {
	IsPlaying       bool
	ProgressPercent float64
}
