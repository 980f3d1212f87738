package sse

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"Setnet/services/app"
)

const channelBuffer = 16

// Manager tracks the open server-sent-event streams: one lobby channel per
// user plus one channel per (game, user) pair. It implements
// app.Broadcaster; a slow or closed stream drops messages instead of
// stalling the rest.
type Manager struct {
	mu    sync.Mutex
	lobby map[string]chan []byte
	games map[string]map[string]chan []byte
}

func NewManager() *Manager {
	return &Manager{
		lobby: make(map[string]chan []byte),
		games: make(map[string]map[string]chan []byte),
	}
}

// AddLobbyClient opens a lobby stream for userID, replacing any previous
// one. The returned func removes the registration; call it when the client
// disconnects.
func (m *Manager) AddLobbyClient(userID string) (<-chan []byte, func()) {
	ch := make(chan []byte, channelBuffer)

	m.mu.Lock()
	if old, ok := m.lobby[userID]; ok {
		close(old)
	}
	m.lobby[userID] = ch
	m.mu.Unlock()

	log.Printf("Lobby SSE client %s connected", userID)

	return ch, func() {
		m.mu.Lock()
		if m.lobby[userID] == ch {
			delete(m.lobby, userID)
		}
		m.mu.Unlock()
		log.Printf("Lobby SSE client %s disconnected", userID)
	}
}

// AddGameClient opens a game stream for userID on gameID, replacing any
// previous one for the same pair.
func (m *Manager) AddGameClient(userID, gameID string) (<-chan []byte, func()) {
	ch := make(chan []byte, channelBuffer)

	m.mu.Lock()
	clients, ok := m.games[gameID]
	if !ok {
		clients = make(map[string]chan []byte)
		m.games[gameID] = clients
	}
	if old, ok := clients[userID]; ok {
		close(old)
	}
	clients[userID] = ch
	m.mu.Unlock()

	log.Printf("Game SSE client %s connected to game %s", userID, gameID)

	return ch, func() {
		m.mu.Lock()
		if clients, ok := m.games[gameID]; ok && clients[userID] == ch {
			delete(clients, userID)
			if len(clients) == 0 {
				delete(m.games, gameID)
			}
		}
		m.mu.Unlock()
		log.Printf("Game SSE client %s disconnected from game %s", userID, gameID)
	}
}

// Broadcast writes the event to every matching open stream. Lobby updates go
// to lobby channels, game updates to game channels; anything else is
// ignored.
func (m *Manager) Broadcast(clientIDs []string, event string, payload interface{}) {
	msg, err := Format(event, payload)
	if err != nil {
		log.Printf("Cannot serialize %s payload: %v", event, err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch event {
	case app.EventLobbyUpdate:
		for _, id := range clientIDs {
			if ch, ok := m.lobby[id]; ok {
				send(ch, msg, id, event)
			}
		}
	case app.EventGameUpdate:
		for _, id := range clientIDs {
			for _, clients := range m.games {
				if ch, ok := clients[id]; ok {
					send(ch, msg, id, event)
				}
			}
		}
	}
}

// Format renders a named event as an SSE frame.
func Format(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)), nil
}

func send(ch chan []byte, msg []byte, id, event string) {
	select {
	case ch <- msg:
	default:
		log.Printf("Dropping %s for slow SSE client %s", event, id)
	}
}
