package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	feedMu      sync.Mutex
	feedClients = make(map[*websocket.Conn]bool)
)

// OrderFeedHandler streams newly created orders to connected admin dashboards.
func OrderFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	feedMu.Lock()
	feedClients[conn] = true
	feedMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			feedMu.Lock()
			delete(feedClients, conn)
			feedMu.Unlock()
			break
		}
	}
}

// BroadcastOrder pushes an order to every connected feed client.
func BroadcastOrder(order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}
	feedMu.Lock()
	defer feedMu.Unlock()
	for client := range feedClients {
		_ = client.WriteMessage(websocket.TextMessage, data)
	}
}
