package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types broadcast to dashboard clients.
const (
	EventOrderCreated = "order_created"
	EventOrderStatus  = "order_status_changed"
	EventOrderDeleted = "order_deleted"
	EventSessionStart = "session_started"
	EventSessionEnd   = "session_ended"
	EventTableCreated = "table_created"
	EventTableUpdated = "table_updated"
	EventTableDeleted = "table_deleted"
	EventMenuChanged  = "menu_changed"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client.
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]struct{}),
}

func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = struct{}{}
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// Broadcast sends an event to every connected client. Write failures drop the
// message for that client only; the read loop handles cleanup.
func Broadcast(event string, data interface{}) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		log.Printf("events: error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("events: error sending to client: %v", err)
		}
	}
}
