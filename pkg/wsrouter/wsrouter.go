package wsrouter

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc handles one inbound message. A returned error terminates the
// connection; handlers that want to keep the connection alive report failures
// to the client themselves and return nil.
type HandlerFunc func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error

type WSRouter struct {
	routes   map[string]HandlerFunc
	notFound HandlerFunc
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc)}
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc) {
	r.routes[messageType] = handler
}

// HandleNotFound sets the handler invoked for unknown message types. The
// router itself never writes to the connection; replying is the handler's
// business so the caller can keep all writes on one serialized path.
func (r *WSRouter) HandleNotFound(handler HandlerFunc) {
	r.notFound = handler
}

// ServeConn reads messages from the connection and dispatches them by type
// until a read or handler error occurs.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		handler, exists := r.routes[msg.Type]
		if !exists {
			handler = r.notFound
		}
		if handler == nil {
			continue
		}

		msgCtx := context.WithValue(ctx, messageTypeKey, msg.Type)
		if err := handler(msgCtx, conn, msg.Payload); err != nil {
			return err
		}
	}
}
