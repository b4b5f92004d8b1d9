package controller

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/feedplay/server/internal/repository/wssender"
	"github.com/feedplay/server/internal/service/playback"
	"github.com/feedplay/server/pkg/wsrouter"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type EmptyStruct struct{}

func (es *EmptyStruct) UnmarshalJSON([]byte) error {
	return nil
}

// handle adapts a typed handler to the wsrouter signature: it unmarshals and
// validates the payload, counts the command, and reports bad input to the
// client without dropping the connection.
func handle[T any](c *controller, fn func(ctx context.Context, conn *websocket.Conn, input T) error) wsrouter.HandlerFunc {
	return func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
		c.metrics.IncCommands()

		var input T
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &input); err != nil {
				c.metrics.IncErrors()
				c.logger.DebugContext(ctx, "failed to unmarshal payload",
					"message_type", wsrouter.GetMessageTypeFromCtx(ctx),
					"client_id", c.getClientIDFromCtx(ctx),
					"error", err,
				)
				return c.sender.WriteJSON(conn, &Output{Type: "ERROR", Payload: map[string]any{"error": "invalid payload"}})
			}
		}

		if validationErrors, ok := c.validate.Validate(input); !ok {
			c.metrics.IncErrors()
			c.logger.DebugContext(ctx, "payload validation failed",
				"message_type", wsrouter.GetMessageTypeFromCtx(ctx),
				"client_id", c.getClientIDFromCtx(ctx),
				"errors", validationErrors,
			)
			return c.sender.WriteJSON(conn, &Output{Type: "ERROR", Payload: map[string]any{"errors": validationErrors}})
		}

		return fn(ctx, conn, input)
	}
}

func (c *controller) handleUnknownType(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	c.metrics.IncErrors()
	c.logger.DebugContext(ctx, "unknown message type",
		"message_type", wsrouter.GetMessageTypeFromCtx(ctx),
		"client_id", c.getClientIDFromCtx(ctx),
	)

	return c.sender.WriteJSON(conn, &Output{Type: "ERROR", Payload: map[string]any{"error": "unknown message type"}})
}

func (c *controller) broadcast(ctx context.Context, conns []*websocket.Conn, output *Output) error {
	for _, conn := range conns {
		if err := c.sender.WriteJSON(conn, output); err != nil {
			if errors.Is(err, wssender.ErrNotFound) {
				// subscriber disconnected mid fan-out
				continue
			}
			c.logger.WarnContext(ctx, "failed to write to conn", "error", err)
		}
	}

	return nil
}

func (c *controller) broadcastVideoUpdates(ctx context.Context, updates []playback.InstanceUpdate) error {
	for _, update := range updates {
		if err := c.broadcast(ctx, update.Conns, &Output{
			Type: "VIDEO_STATE_UPDATED",
			Payload: map[string]any{
				"instance_key": update.InstanceKey,
				"state":        update.State,
			},
		}); err != nil {
			return err
		}
	}

	return nil
}

func (c *controller) broadcastTrackUpdates(ctx context.Context, updates []playback.TrackUpdate) error {
	for _, update := range updates {
		if err := c.broadcast(ctx, update.Conns, &Output{
			Type: "TRACK_STATE_UPDATED",
			Payload: map[string]any{
				"instance_key": update.InstanceKey,
				"state":        update.State,
			},
		}); err != nil {
			return err
		}
	}

	return nil
}
