package socketio_types

import (
	"log"
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer holds the socket.io server and the connection id -> socket
// map. It is the socket.io sink for snapshot broadcasts.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track connection id -> socket connections
	Connections map[string]*socket.Socket
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]*socket.Socket),
	}
}

func (s *SocketServer) AddConnection(id string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[id] = client
}

func (s *SocketServer) RemoveConnection(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, id)
}

func (s *SocketServer) GetConnection(id string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.Connections[id]
	return client, exists
}

// Broadcast emits the event to every listed connection that is still open.
// Unknown ids are skipped and logged; one dead recipient never aborts the
// loop over the rest.
func (s *SocketServer) Broadcast(clientIDs []string, event string, payload interface{}) {
	for _, id := range clientIDs {
		client, ok := s.GetConnection(id)
		if !ok {
			log.Printf("Attempted to send %s to unknown client %s", event, id)
			continue
		}
		if err := client.Emit(event, payload); err != nil {
			log.Printf("Error emitting %s to client %s: %v", event, id, err)
		}
	}
}
