package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterSupersedes(t *testing.T) {
	hub := NewHub()

	first := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}
	second := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}

	hub.Register(first)
	assert.True(t, hub.Current(first))

	hub.Register(second)
	assert.False(t, hub.Current(first))
	assert.True(t, hub.Current(second))

	// the superseded connection gets notified and its channel closed
	data, ok := <-first.Send
	require.True(t, ok)
	assert.Contains(t, string(data), string(MsgSuperseded))
	_, ok = <-first.Send
	assert.False(t, ok)
}

func TestHub_UnregisterOnlyCurrent(t *testing.T) {
	hub := NewHub()

	first := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}
	second := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}
	hub.Register(first)
	hub.Register(second)

	// unregistering the stale connection must not evict the live one
	hub.Unregister(first)
	assert.True(t, hub.Current(second))

	hub.Unregister(second)
	assert.False(t, hub.Current(second))
}

func TestHub_SessionsAreIndependent(t *testing.T) {
	hub := NewHub()

	a := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}
	b := &Connection{SessionID: "s2", Send: make(chan []byte, 1)}
	hub.Register(a)
	hub.Register(b)

	assert.True(t, hub.Current(a))
	assert.True(t, hub.Current(b))

	hub.Unregister(a)
	assert.False(t, hub.Current(a))
	assert.True(t, hub.Current(b))
}
