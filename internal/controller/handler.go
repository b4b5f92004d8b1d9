package controller

import (
	"context"
	"net/http"
)

func (c *controller) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	clientID, err := c.playbackService.ConnectClient(r.Context(), conn)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to connect client", "error", err)
		conn.Close()
		return
	}
	if err := c.sender.Add(conn); err != nil {
		c.logger.WarnContext(r.Context(), "failed to register sender", "error", err)
		conn.Close()
		return
	}
	c.metrics.IncWSConnections()
	defer func() {
		c.metrics.DecWSConnections()
		if err := c.sender.RemoveByConn(conn); err != nil {
			c.logger.DebugContext(r.Context(), "failed to remove sender", "error", err)
		}
		if err := c.playbackService.DisconnectClient(r.Context(), conn); err != nil {
			c.logger.DebugContext(r.Context(), "failed to disconnect client", "error", err)
		}
	}()

	if err := c.sender.WriteJSON(conn, &Output{
		Type: "CONNECTED",
		Payload: map[string]any{
			"client_id": clientID,
		},
	}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write json", "error", err)
		return
	}

	ctx := context.WithValue(r.Context(), clientIDCtxKey, clientID)

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(r.Context(), "conn closed", "client_id", clientID, "error", err)
	}
}
