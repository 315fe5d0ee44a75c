package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	challengeClients = make(map[string]map[*websocket.Conn]bool) // Map of challenge ID to connected clients
	broadcast        = make(chan ChallengeUpdate)                // Broadcast channel for updates
	mutex            sync.Mutex                                  // Mutex to protect challengeClients map
)

// Update types sent over the wire
const (
	UpdateEntry    = "entry"    // a new participation was recorded
	UpdateSelected = "selected" // the selection commit run finished
	UpdateApproved = "approved" // prizes were distributed and the claim window opened
)

// ChallengeUpdate represents a challenge lifecycle event pushed to admin clients
type ChallengeUpdate struct {
	ChallengeID string      `json:"challenge_id"`
	UpdateType  string      `json:"update_type"`
	Payload     interface{} `json:"payload,omitempty"`
}

// RegisterClient adds a WebSocket client to a specific challenge
func RegisterClient(challengeID string, conn *websocket.Conn) {
	mutex.Lock()
	if challengeClients[challengeID] == nil {
		challengeClients[challengeID] = make(map[*websocket.Conn]bool)
	}
	challengeClients[challengeID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific challenge
func UnregisterClient(challengeID string, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := challengeClients[challengeID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(challengeClients, challengeID)
		}
	}
	mutex.Unlock()
}

// BroadcastChallengeUpdate sends an update to all clients connected to a specific challenge
func BroadcastChallengeUpdate(update ChallengeUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := challengeClients[update.ChallengeID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
