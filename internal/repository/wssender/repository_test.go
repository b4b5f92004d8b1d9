package wssender

import (
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemove(t *testing.T) {
	r := NewRepo()
	conn := &websocket.Conn{}

	require.NoError(t, r.Add(conn))
	assert.ErrorIs(t, r.Add(conn), ErrAlreadyExists)

	require.NoError(t, r.RemoveByConn(conn))
	assert.ErrorIs(t, r.RemoveByConn(conn), ErrNotFound)
}

func TestWriteJSONUnknownConn(t *testing.T) {
	r := NewRepo()

	assert.ErrorIs(t, r.WriteJSON(&websocket.Conn{}, map[string]string{}), ErrNotFound)
}

func TestRemoveRacingWriters(t *testing.T) {
	r := NewRepo()
	conn := &websocket.Conn{}
	require.NoError(t, r.Add(conn))
	require.NoError(t, r.RemoveByConn(conn))

	// post-removal writers must all be turned away without reaching the conn
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.ErrorIs(t, r.WriteJSON(conn, map[string]string{}), ErrNotFound)
		}()
	}
	wg.Wait()
}
