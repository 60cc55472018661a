package feed

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/papagsgrill/pos-app/models"
)

// Event types pushed to staff sessions.
const (
	EventOrderInsert = "order_insert"
	EventOrderUpdate = "order_update"
	EventOrderDelete = "order_delete"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected staff session and broadcasts order events to all
// of them. It is constructed explicitly and passed into whatever needs to
// publish, so tests can hand components their own hub.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

// Register adds a connection with its role.
func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// Unregister drops a connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount reports how many staff sessions are attached.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// BroadcastOrderInsert announces a newly created order.
func (h *Hub) BroadcastOrderInsert(order models.Order) {
	h.broadcast(Message{Event: EventOrderInsert, Data: order})
}

// BroadcastOrderUpdate announces a status change.
func (h *Hub) BroadcastOrderUpdate(order models.Order) {
	h.broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastOrderDelete announces a removed order.
func (h *Hub) BroadcastOrderDelete(orderID uint) {
	h.broadcast(Message{Event: EventOrderDelete, Data: map[string]uint{"order_id": orderID}})
}

func (h *Hub) broadcast(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling feed message: %v", err)
		return
	}

	for conn, role := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
