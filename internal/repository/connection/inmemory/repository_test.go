package inmemory

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedplay/server/internal/repository/connection"
)

func TestAddAndGetClientID(t *testing.T) {
	r := NewRepo()
	conn := &websocket.Conn{}

	require.NoError(t, r.Add(conn, "client-1"))

	clientID, err := r.GetClientID(conn)
	require.NoError(t, err)
	assert.Equal(t, "client-1", clientID)

	assert.ErrorIs(t, r.Add(conn, "client-2"), connection.ErrAlreadyExists)
}

func TestSubscribeFanOut(t *testing.T) {
	r := NewRepo()
	conn1 := &websocket.Conn{}
	conn2 := &websocket.Conn{}
	require.NoError(t, r.Add(conn1, "client-1"))
	require.NoError(t, r.Add(conn2, "client-2"))

	require.NoError(t, r.Subscribe(conn1, "v1"))
	require.NoError(t, r.Subscribe(conn2, "v1"))
	require.NoError(t, r.Subscribe(conn2, "v2"))

	assert.ElementsMatch(t, []*websocket.Conn{conn1, conn2}, r.GetSubscribers("v1"))
	assert.ElementsMatch(t, []*websocket.Conn{conn2}, r.GetSubscribers("v2"))
	assert.Empty(t, r.GetSubscribers("v3"), "unknown key has no subscribers")
}

func TestSubscribeUnknownConn(t *testing.T) {
	r := NewRepo()

	assert.ErrorIs(t, r.Subscribe(&websocket.Conn{}, "v1"), connection.ErrNotFound)
}

func TestUnsubscribe(t *testing.T) {
	r := NewRepo()
	conn := &websocket.Conn{}
	require.NoError(t, r.Add(conn, "client-1"))
	require.NoError(t, r.Subscribe(conn, "v1"))

	require.NoError(t, r.Unsubscribe(conn, "v1"))

	assert.Empty(t, r.GetSubscribers("v1"))
}

func TestRemoveByConnDropsSubscriptions(t *testing.T) {
	r := NewRepo()
	conn := &websocket.Conn{}
	require.NoError(t, r.Add(conn, "client-1"))
	require.NoError(t, r.Subscribe(conn, "v1"))
	require.NoError(t, r.Subscribe(conn, "v2"))

	require.NoError(t, r.RemoveByConn(conn))

	assert.Empty(t, r.GetSubscribers("v1"))
	assert.Empty(t, r.GetSubscribers("v2"))
	_, err := r.GetClientID(conn)
	assert.ErrorIs(t, err, connection.ErrNotFound)
}
