package live

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The control API already allows any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades the connection and streams transcription results
// until the client disconnects.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote an HTTP error response.
			return
		}

		hub.add(conn)

		// Reader loop only to detect disconnects; clients do not send
		// application data.
		go func() {
			defer hub.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// RegisterRoutes registers the live websocket route
func RegisterRoutes(group *gin.RouterGroup, hub *Hub) {
	group.GET("/live", Handler(hub))
}
