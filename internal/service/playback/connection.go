package playback

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ConnectClient registers a renderer connection and returns its client id.
func (s service) ConnectClient(ctx context.Context, conn *websocket.Conn) (string, error) {
	clientID := uuid.NewString()
	if err := s.connRepo.Add(conn, clientID); err != nil {
		return "", fmt.Errorf("failed to add connection: %w", err)
	}
	s.logger.DebugContext(ctx, "client connected", "client_id", clientID)

	return clientID, nil
}

func (s service) DisconnectClient(ctx context.Context, conn *websocket.Conn) error {
	clientID, err := s.connRepo.GetClientID(conn)
	if err != nil {
		return fmt.Errorf("failed to get client id: %w", err)
	}

	if err := s.connRepo.RemoveByConn(conn); err != nil {
		return fmt.Errorf("failed to remove connection: %w", err)
	}
	s.logger.DebugContext(ctx, "client disconnected", "client_id", clientID)

	return nil
}

type SubscribeResponse struct {
	InstanceKey string
	Video       VideoState
}

// Subscribe attaches the connection to one instance key's slice of state.
// The returned state lets the caller render immediately without waiting for
// the next update.
func (s service) Subscribe(ctx context.Context, conn *websocket.Conn, instanceKey string) (SubscribeResponse, error) {
	if err := s.connRepo.Subscribe(conn, instanceKey); err != nil {
		return SubscribeResponse{}, fmt.Errorf("failed to subscribe: %w", err)
	}

	return SubscribeResponse{
		InstanceKey: instanceKey,
		Video:       videoStateFrom(s.playbackRepo.GetVideo(instanceKey)),
	}, nil
}

func (s service) Unsubscribe(ctx context.Context, conn *websocket.Conn, instanceKey string) error {
	if err := s.connRepo.Unsubscribe(conn, instanceKey); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}
