package realtime

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"carwash-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans entry lifecycle events out to connected dashboard clients. Slow or
// dead clients are dropped rather than blocking the broadcast loop.
type Hub struct {
	log        *logrus.Logger
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan models.EntryEvent
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:       log,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan models.EntryEvent, 64),
	}
}

// Run pumps broadcast events to all clients. Call in its own goroutine.
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Publish queues an event; drops it if the buffer is full so request
// handling never blocks on the feed.
func (h *Hub) Publish(event models.EntryEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("entry feed buffer full, dropping event")
	}
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	// Reader loop only notices disconnects; the feed is one-way.
	go func() {
		defer func() {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
