package inmemory

import (
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/maps"

	"github.com/feedplay/server/internal/repository/connection"
)

// repo tracks open websocket connections and which instance keys each
// connection is subscribed to. Subscriptions drive fan-out: a state change
// for a key is written only to the connections watching that key, so
// high-frequency progress ticks never reach unrelated clients.
type repo struct {
	connList    map[*websocket.Conn]string
	clientList  map[string]*websocket.Conn
	subscribers map[string]map[*websocket.Conn]struct{}
	connSubs    map[*websocket.Conn]map[string]struct{}
	mu          sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		connList:    make(map[*websocket.Conn]string),
		clientList:  make(map[string]*websocket.Conn),
		subscribers: make(map[string]map[*websocket.Conn]struct{}),
		connSubs:    make(map[*websocket.Conn]map[string]struct{}),
	}
}

func (r *repo) Add(conn *websocket.Conn, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.connList[conn] != "" || r.clientList[clientID] != nil {
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = clientID
	r.clientList[clientID] = conn

	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clientID, ok := r.connList[conn]
	if !ok {
		return connection.ErrNotFound
	}

	for instanceKey := range r.connSubs[conn] {
		delete(r.subscribers[instanceKey], conn)
		if len(r.subscribers[instanceKey]) == 0 {
			delete(r.subscribers, instanceKey)
		}
	}
	delete(r.connSubs, conn)
	delete(r.connList, conn)
	delete(r.clientList, clientID)

	return nil
}

func (r *repo) GetClientID(conn *websocket.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clientID, ok := r.connList[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return clientID, nil
}

func (r *repo) Subscribe(conn *websocket.Conn, instanceKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connList[conn]; !ok {
		return connection.ErrNotFound
	}

	if r.subscribers[instanceKey] == nil {
		r.subscribers[instanceKey] = make(map[*websocket.Conn]struct{})
	}
	r.subscribers[instanceKey][conn] = struct{}{}

	if r.connSubs[conn] == nil {
		r.connSubs[conn] = make(map[string]struct{})
	}
	r.connSubs[conn][instanceKey] = struct{}{}

	return nil
}

func (r *repo) Unsubscribe(conn *websocket.Conn, instanceKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connList[conn]; !ok {
		return connection.ErrNotFound
	}

	delete(r.subscribers[instanceKey], conn)
	if len(r.subscribers[instanceKey]) == 0 {
		delete(r.subscribers, instanceKey)
	}
	delete(r.connSubs[conn], instanceKey)

	return nil
}

func (r *repo) GetSubscribers(instanceKey string) []*websocket.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.subscribers[instanceKey])
}
