package wssender

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	ErrNotFound      = errors.New("sender not found")
	ErrAlreadyExists = errors.New("sender already exists")
)

type sender struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// repo serializes outbound writes per websocket connection. gorilla/websocket
// allows only one concurrent writer per conn, while state updates fan out
// from many handler goroutines at once; every write to a client goes through
// WriteJSON here. Writing to a removed conn returns ErrNotFound instead of
// touching the connection, so a fan-out racing a disconnect can never become
// a second writer.
type repo struct {
	senders map[*websocket.Conn]*sender
	mu      sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		senders: make(map[*websocket.Conn]*sender),
	}
}

func (r *repo) Add(conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.senders[conn]; ok {
		return ErrAlreadyExists
	}

	r.senders[conn] = &sender{conn: conn}

	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.senders[conn]; !ok {
		return ErrNotFound
	}

	delete(r.senders, conn)

	return nil
}

func (r *repo) WriteJSON(conn *websocket.Conn, v any) error {
	r.mu.RLock()
	s, ok := r.senders[conn]
	r.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(v)
}
