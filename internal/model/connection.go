package model

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SafeConn serializes writes to a websocket connection. Broadcasts from other players and
// direct replies can reach the same connection from different goroutines.
type SafeConn struct {
	mu   sync.Mutex
	conn Conn
}

func NewSafeConn(conn Conn) *SafeConn {
	return &SafeConn{conn: conn}
}

func (c *SafeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *SafeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

func (c *SafeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (gc *GameConnections) add(playerID string, conn Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if _, exists := gc.connections[playerID]; exists {
		return false
	}
	gc.connections[playerID] = conn
	return true
}

// remove deletes playerID's connection only while conn is still the registered one.
func (gc *GameConnections) remove(playerID string, conn Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if current, exists := gc.connections[playerID]; exists && current == conn {
		delete(gc.connections, playerID)
		return true
	}
	return false
}

func (gc *GameConnections) snapshot() map[string]Conn {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	active := make(map[string]Conn, len(gc.connections))
	for playerID, conn := range gc.connections {
		active[playerID] = conn
	}
	return active
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

func rejectDuplicate(conn Conn) {
	conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ErrConnectionExists.Error()),
	)
	conn.Close()
}
