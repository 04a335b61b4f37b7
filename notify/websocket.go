package notify

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/adityarajmishra/ShopEase/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub pushes order lifecycle events to connected websocket clients
// (the admin dashboard's live order feed).
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Handler upgrades the request and keeps the connection registered until the
// client goes away.
func (h *Hub) Handler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			break
		}
	}
}

type wsEvent struct {
	Type  string `json:"type"`
	Order any    `json:"order,omitempty"`
	Cart  any    `json:"cart,omitempty"`
}

func (h *Hub) broadcast(event wsEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (h *Hub) OrderCreated(order *models.Order) {
	h.broadcast(wsEvent{Type: "order_created", Order: order})
}

func (h *Hub) OrderCompleted(order *models.Order) {
	h.broadcast(wsEvent{Type: "order_completed", Order: order})
}

func (h *Hub) OrderCancelled(order *models.Order) {
	h.broadcast(wsEvent{Type: "order_cancelled", Order: order})
}

func (h *Hub) CartExpired(cart *models.Cart) {
	h.broadcast(wsEvent{Type: "cart_expired", Cart: cart})
}
