package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/feedplay/server/internal/service/playback"
	"github.com/feedplay/server/pkg/metrics"
	"github.com/feedplay/server/pkg/validator"
	"github.com/feedplay/server/pkg/wsrouter"
)

type iPlaybackService interface {
	// video
	PlayVideo(context.Context, *playback.PlayVideoParams) playback.InstanceUpdate
	PlayVideoGlobally(context.Context, *playback.PlayVideoGloballyParams) []playback.InstanceUpdate
	PauseVideo(ctx context.Context, instanceKey string) playback.InstanceUpdate
	PauseAllVideos(context.Context) []playback.InstanceUpdate
	ToggleVideoMute(ctx context.Context, instanceKey string) playback.InstanceUpdate
	SetVideoProgress(context.Context, *playback.SetVideoProgressParams) playback.InstanceUpdate
	SetVideoCompleted(context.Context, *playback.SetVideoCompletedParams) playback.InstanceUpdate
	SetShowOverlay(context.Context, *playback.SetShowOverlayParams) playback.InstanceUpdate
	ToggleShowOverlay(ctx context.Context, instanceKey string) playback.InstanceUpdate
	GetVideoState(ctx context.Context, instanceKey string) playback.VideoState
	ListVideoStates(context.Context) map[string]playback.VideoState
	CountPlayingVideos() int
	// audio
	PlayTrack(ctx context.Context, instanceKey string) []playback.TrackUpdate
	PauseTrack(ctx context.Context, instanceKey string) playback.TrackUpdate
	PauseAllTracks(context.Context) []playback.TrackUpdate
	SetTrackProgress(context.Context, *playback.SetTrackProgressParams) playback.TrackUpdate
	GetTrackState(ctx context.Context, instanceKey string) playback.TrackState
	CountPlayingTracks() int
	PauseAllMedia(context.Context) playback.PauseAllMediaResponse
	// connection
	ConnectClient(context.Context, *websocket.Conn) (string, error)
	DisconnectClient(context.Context, *websocket.Conn) error
	Subscribe(ctx context.Context, conn *websocket.Conn, instanceKey string) (playback.SubscribeResponse, error)
	Unsubscribe(ctx context.Context, conn *websocket.Conn, instanceKey string) error
}

type iMediaURLService interface {
	RefreshMediaURL(ctx context.Context, contentID string) (string, error)
}

type iSenderRepo interface {
	Add(*websocket.Conn) error
	RemoveByConn(*websocket.Conn) error
	WriteJSON(*websocket.Conn, any) error
}

type controller struct {
	playbackService iPlaybackService
	mediaURLService iMediaURLService
	sender          iSenderRepo
	upgrader        websocket.Upgrader
	validate        *validator.Validator
	wsmux           *wsrouter.WSRouter
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

func NewController(playbackService iPlaybackService, mediaURLService iMediaURLService, sender iSenderRepo, m *metrics.Metrics, logger *slog.Logger) *controller {
	c := controller{
		playbackService: playbackService,
		mediaURLService: mediaURLService,
		sender:          sender,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		metrics:  m,
		logger:   logger,
	}
	c.wsmux = c.getWSRouter()

	return &c
}
