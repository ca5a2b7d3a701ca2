package websocket

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type MessageType string

const (
	MessageTypeTradeEvent MessageType = "trade_event"
	MessageTypeStatus     MessageType = "status"
)

// Message is the envelope pushed over a party's connection.
type Message struct {
	Type      MessageType            `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Target    string                 `json:"target,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Manager tracks WebSocket connections by user and delivers messages to
// whichever of a user's connections are live.
type Manager struct {
	connections map[string]*Connection
	mu          sync.RWMutex
	upgrader    websocket.Upgrader
}

// Connection is one party's WebSocket session.
type Connection struct {
	ID           string
	UserID       string
	Conn         *websocket.Conn
	Send         chan Message
	LastActivity time.Time
	mu           sync.Mutex
}

func NewManager() *Manager {
	return &Manager{
		connections: make(map[string]*Connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and starts the read/write pumps.
// The user is identified the same way as the REST surface: X-User-ID.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID string) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:           uuid.New().String(),
		UserID:       userID,
		Conn:         conn,
		Send:         make(chan Message, 64),
		LastActivity: time.Now(),
	}

	m.mu.Lock()
	m.connections[connection.ID] = connection
	m.mu.Unlock()

	go m.readPump(connection)
	go m.writePump(connection)

	connection.Send <- Message{
		Type:      MessageTypeStatus,
		Data:      map[string]interface{}{"status": "connected", "connection_id": connection.ID},
		Target:    userID,
		Timestamp: time.Now(),
	}
	return connection, nil
}

func (m *Manager) readPump(conn *Connection) {
	defer m.drop(conn)

	conn.Conn.SetReadLimit(512)
	conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		// Clients only listen; inbound frames just refresh liveness.
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			return
		}
		conn.mu.Lock()
		conn.LastActivity = time.Now()
		conn.mu.Unlock()
	}
}

func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.Conn.WriteJSON(message); err != nil {
				return
			}
		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) drop(conn *Connection) {
	m.mu.Lock()
	if _, ok := m.connections[conn.ID]; ok {
		delete(m.connections, conn.ID)
		close(conn.Send)
	}
	m.mu.Unlock()
	conn.Conn.Close()
}

// SendToUser delivers a message to every live connection of a user.
// Returns an error only when the user has no connection at all; a full
// buffer on one connection skips it rather than blocking.
func (m *Manager) SendToUser(userID string, message Message) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	delivered := 0
	for _, conn := range m.connections {
		if conn.UserID != userID {
			continue
		}
		message.Target = userID
		select {
		case conn.Send <- message:
			delivered++
		default:
		}
	}
	if delivered == 0 {
		return fmt.Errorf("user %s not connected", userID)
	}
	return nil
}

// ConnectionCount returns the number of active connections.
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Close shuts down all connections.
func (m *Manager) Close() {
	m.mu.Lock()
	for id, conn := range m.connections {
		delete(m.connections, id)
		close(conn.Send)
		conn.Conn.Close()
	}
	m.mu.Unlock()
}
