package challenges

import (
	"api/realtime"
	"api/services"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChallengeWebSocket handles WebSocket connections for a specific challenge
func ChallengeWebSocket(c *gin.Context) {
	challengeID := c.Param("id")

	// Validate challenge ID
	if !services.ChallengeExists(challengeID) {
		c.JSON(404, gin.H{"error": ErrChallengeNotFound})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(challengeID, conn)
	defer func() {
		realtime.UnregisterClient(challengeID, conn)
		conn.Close()
	}()

	// Keep the connection open until the client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
