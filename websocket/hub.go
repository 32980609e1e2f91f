package websocket

import (
	"log"
	"sync"

	"github.com/KadariPavani/placement-training-backend/models"
	"github.com/gofiber/contrib/websocket"
)

// Client is one connected student. Batch membership is resolved at upgrade
// time so the hub never has to touch the database.
type Client struct {
	StudentID        string
	BatchID          string
	PlacementBatchID string
	Conn             *websocket.Conn
}

type batchBroadcast struct {
	BatchIDs     []string
	Notification *models.Notification
}

var clients = make(map[string]*Client)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var broadcast = make(chan batchBroadcast, 64)

// PushToBatches queues a notification for every connected member of the
// given batches.
func PushToBatches(batchIDs []string, n *models.Notification) {
	broadcast <- batchBroadcast{BatchIDs: batchIDs, Notification: n}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.StudentID)
			clientsMu.Lock()
			clients[client.StudentID] = client
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.StudentID)
			clientsMu.Lock()
			if existing, ok := clients[client.StudentID]; ok && existing.Conn == client.Conn {
				delete(clients, client.StudentID)
			}
			clientsMu.Unlock()
		case msg := <-broadcast:
			targeted := make(map[string]bool, len(msg.BatchIDs))
			for _, id := range msg.BatchIDs {
				targeted[id] = true
			}

			var stale []string
			clientsMu.RLock()
			for studentID, client := range clients {
				if !targeted[client.BatchID] && !targeted[client.PlacementBatchID] {
					continue
				}
				if err := client.Conn.WriteJSON(msg.Notification); err != nil {
					log.Printf("Error sending notification to client %s: %v", studentID, err)
					client.Conn.Close()
					stale = append(stale, studentID)
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, studentID := range stale {
					delete(clients, studentID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
