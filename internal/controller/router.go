package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c *controller) Mux() http.Handler {
	r := chi.NewRouter()

	r.HandleFunc("/ws", c.serveWS)

	r.Get("/api/videos", c.listVideoStates)
	r.Get("/api/video/{instance-key}", c.getVideoState)
	r.Post("/api/pause-all", c.pauseAllMedia)

	r.Get("/healthz", c.healthz)
	r.Method(http.MethodGet, "/metrics", c.metrics.Handler(func() {
		c.metrics.SetPlayingVideos(c.playbackService.CountPlayingVideos())
		c.metrics.SetPlayingTracks(c.playbackService.CountPlayingTracks())
	}))

	return r
}
