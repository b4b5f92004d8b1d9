package playback

import (
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/feedplay/server/internal/repository/playback"
)

type iPlaybackRepo interface {
	// video
	GetVideo(instanceKey string) playback.Video
	PlayVideo(instanceKey string, muted bool) playback.Video
	PlayVideoExclusive(instanceKey string, muted bool) (playback.Video, map[string]playback.Video)
	PauseVideo(instanceKey string) playback.Video
	PauseAllVideos() map[string]playback.Video
	ToggleVideoMuted(instanceKey string) playback.Video
	SetVideoProgress(instanceKey string, percent float64) playback.Video
	SetVideoCompleted(instanceKey string, completed bool) playback.Video
	SetShowOverlay(instanceKey string, show bool) playback.Video
	ToggleShowOverlay(instanceKey string) playback.Video
	ListVideos() map[string]playback.Video
	CountPlayingVideos() int
	// track
	GetTrack(instanceKey string) playback.Track
	PlayTrackExclusive(instanceKey string) (playback.Track, map[string]playback.Track)
	PauseTrack(instanceKey string) playback.Track
	PauseAllTracks() map[string]playback.Track
	SetTrackProgress(instanceKey string, percent float64) playback.Track
	ListTracks() map[string]playback.Track
	CountPlayingTracks() int
}

type iConnRepo interface {
	Add(*websocket.Conn, string) error
	RemoveByConn(*websocket.Conn) error
	GetClientID(*websocket.Conn) (string, error)
	Subscribe(*websocket.Conn, string) error
	Unsubscribe(*websocket.Conn, string) error
	GetSubscribers(string) []*websocket.Conn
}

// service is the global playback coordinator. It is the single source of
// truth for every rendered video instance and audio track: renderers read it
// to decide what to show and write to it on gestures and playback callbacks,
// so visual state stays consistent no matter which component last mutated it.
//
// Two play primitives exist on purpose. PlayVideo is non-exclusive (several
// muted previews may run at once); PlayVideoGlobally pauses every other
// instance in one transition. Collapsing them would break call sites that
// legitimately want simultaneous previews.
type service struct {
	playbackRepo iPlaybackRepo
	connRepo     iConnRepo
	logger       *slog.Logger
}

func NewService(playbackRepo iPlaybackRepo, connRepo iConnRepo, logger *slog.Logger) *service {
	return &service{
		playbackRepo: playbackRepo,
		connRepo:     connRepo,
		logger:       logger,
	}
}
