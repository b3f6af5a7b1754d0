package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChangeEvent is a typed change notification. Events carry no row payload;
// clients re-fetch the affected view when notified.
type ChangeEvent struct {
	Table   string `json:"table"`
	Action  string `json:"action"`            // INSERT | UPDATE | DELETE
	KioskID int    `json:"kioskId,omitempty"` // 0 for rows not scoped to a kiosk
}

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// CORS already gates browser origins at the HTTP layer
		return true
	},
}

// sendBuffer bounds per-client queued events; a client that falls further
// behind is dropped instead of stalling publishers.
const sendBuffer = 16

type realtimeClient struct {
	conn    *websocket.Conn
	send    chan []byte
	role    models.Role
	kioskID int
}

// writePump drains the client's send channel onto the connection. It owns
// the connection's write side and closes the socket when the channel ends.
func (client *realtimeClient) writePump() {
	for payload := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
	client.conn.Close()
}

var (
	clients   = make(map[*realtimeClient]bool)
	clientsMu sync.Mutex
)

// unregister removes a client and closes its send channel exactly once.
func unregister(client *realtimeClient) {
	clientsMu.Lock()
	if _, ok := clients[client]; ok {
		delete(clients, client)
		close(client.send)
	}
	clientsMu.Unlock()
}

// HandleWS upgrades an authenticated request to a websocket subscription.
// The connection stays registered until the client disconnects.
func HandleWS(c *gin.Context) {
	profileInterface, exists := c.Get("profile")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}
	profile, ok := profileInterface.(models.Profile)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade writes its own error response
		return
	}

	client := &realtimeClient{
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		role:    profile.Role,
		kioskID: profile.ID,
	}

	clientsMu.Lock()
	clients[client] = true
	clientsMu.Unlock()

	go client.writePump()

	// Keep the connection alive until the client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	unregister(client)
}

// PublishChange broadcasts a change event to every subscriber allowed to see
// it: the manager receives everything, a kiosk only events for its own rows
// or for rows not scoped to any kiosk.
func PublishChange(event ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("realtime: failed to marshal event: %v", err)
		return
	}

	clientsMu.Lock()
	defer clientsMu.Unlock()

	for client := range clients {
		if client.role != models.RoleManager && event.KioskID != 0 && event.KioskID != client.kioskID {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Client stopped draining its queue; cut it loose
			delete(clients, client)
			close(client.send)
		}
	}
}
