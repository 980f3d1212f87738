package sse_test

import (
	"testing"

	"Setnet/services/app"
	"Setnet/services/sse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	default:
		t.Fatal("expected a frame on the channel")
		return nil
	}
}

func TestFormat(t *testing.T) {
	msg, err := sse.Format("LOBBY UPDATE", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, "event: LOBBY UPDATE\ndata: {\"n\":1}\n\n", string(msg))
}

func TestLobbyBroadcast(t *testing.T) {
	m := sse.NewManager()

	ch1, cancel1 := m.AddLobbyClient("u1")
	defer cancel1()
	ch2, cancel2 := m.AddLobbyClient("u2")
	defer cancel2()

	m.Broadcast([]string{"u1"}, app.EventLobbyUpdate, map[string]string{"hello": "lobby"})

	msg := receive(t, ch1)
	assert.Contains(t, string(msg), "event: LOBBY UPDATE")
	assert.Contains(t, string(msg), `"hello":"lobby"`)

	select {
	case <-ch2:
		t.Fatal("u2 was not a broadcast target")
	default:
	}
}

func TestGameBroadcast(t *testing.T) {
	m := sse.NewManager()

	lobbyCh, cancelLobby := m.AddLobbyClient("u1")
	defer cancelLobby()
	gameCh, cancelGame := m.AddGameClient("u1", "g1")
	defer cancelGame()

	m.Broadcast([]string{"u1"}, app.EventGameUpdate, map[string]string{"id": "g1"})

	msg := receive(t, gameCh)
	assert.Contains(t, string(msg), "event: GAME UPDATE")

	select {
	case <-lobbyCh:
		t.Fatal("game updates must not hit the lobby channel")
	default:
	}
}

func TestCancelRemovesRegistration(t *testing.T) {
	m := sse.NewManager()

	ch, cancel := m.AddLobbyClient("u1")
	cancel()

	m.Broadcast([]string{"u1"}, app.EventLobbyUpdate, "gone")
	select {
	case msg, ok := <-ch:
		if ok {
			t.Fatalf("received %q after cancel", msg)
		}
	default:
	}
}

func TestSlowClientNeverBlocks(t *testing.T) {
	m := sse.NewManager()

	_, cancel := m.AddLobbyClient("u1")
	defer cancel()

	// Far more frames than the channel buffers; extra ones are dropped.
	for i := 0; i < 100; i++ {
		m.Broadcast([]string{"u1"}, app.EventLobbyUpdate, i)
	}
}

func TestReplacingStreamClosesOldChannel(t *testing.T) {
	m := sse.NewManager()

	old, _ := m.AddLobbyClient("u1")
	fresh, cancel := m.AddLobbyClient("u1")
	defer cancel()

	_, ok := <-old
	assert.False(t, ok, "the replaced channel is closed")

	m.Broadcast([]string{"u1"}, app.EventLobbyUpdate, "still here")
	receive(t, fresh)
}
