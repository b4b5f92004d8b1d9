package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedplay/server/pkg/rest"
)

func (c *controller) getVideoState(w http.ResponseWriter, r *http.Request) {
	instanceKey := chi.URLParam(r, "instance-key")
	if instanceKey == "" {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": "instance key is required"})
		return
	}

	state := c.playbackService.GetVideoState(r.Context(), instanceKey)

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": state})
}

func (c *controller) listVideoStates(w http.ResponseWriter, r *http.Request) {
	states := c.playbackService.ListVideoStates(r.Context())

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": states})
}

func (c *controller) pauseAllMedia(w http.ResponseWriter, r *http.Request) {
	resp := c.playbackService.PauseAllMedia(r.Context())

	if err := c.broadcastVideoUpdates(r.Context(), resp.Videos); err != nil {
		c.logger.WarnContext(r.Context(), "failed to broadcast video updates", "error", err)
	}
	if err := c.broadcastTrackUpdates(r.Context(), resp.Tracks); err != nil {
		c.logger.WarnContext(r.Context(), "failed to broadcast track updates", "error", err)
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]int{
		"paused_videos": len(resp.Videos),
		"paused_tracks": len(resp.Tracks),
	}})
}

func (c *controller) healthz(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"status": "ok"})
}
