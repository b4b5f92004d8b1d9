package controller

import (
	"github.com/feedplay/server/pkg/wsrouter"
)

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Handle("ALIVE", handle(c, c.handleAlive))

	// video
	mux.Handle("PLAY_VIDEO", handle(c, c.handlePlayVideo))
	mux.Handle("PLAY_VIDEO_GLOBALLY", handle(c, c.handlePlayVideoGlobally))
	mux.Handle("PAUSE_VIDEO", handle(c, c.handlePauseVideo))
	mux.Handle("PAUSE_ALL_VIDEOS", handle(c, c.handlePauseAllVideos))
	mux.Handle("TOGGLE_VIDEO_MUTE", handle(c, c.handleToggleVideoMute))
	mux.Handle("UPDATE_VIDEO_PROGRESS", handle(c, c.handleUpdateVideoProgress))
	mux.Handle("SET_VIDEO_COMPLETED", handle(c, c.handleSetVideoCompleted))
	mux.Handle("SET_OVERLAY", handle(c, c.handleSetOverlay))
	mux.Handle("TOGGLE_OVERLAY", handle(c, c.handleToggleOverlay))

	// audio
	mux.Handle("PLAY_TRACK", handle(c, c.handlePlayTrack))
	mux.Handle("PAUSE_TRACK", handle(c, c.handlePauseTrack))
	mux.Handle("UPDATE_TRACK_PROGRESS", handle(c, c.handleUpdateTrackProgress))

	mux.Handle("PAUSE_ALL_MEDIA", handle(c, c.handlePauseAllMedia))

	// subscription
	mux.Handle("SUBSCRIBE", handle(c, c.handleSubscribe))
	mux.Handle("UNSUBSCRIBE", handle(c, c.handleUnsubscribe))

	mux.Handle("REFRESH_MEDIA_URL", handle(c, c.handleRefreshMediaURL))

	mux.HandleNotFound(c.handleUnknownType)

	return mux
}
