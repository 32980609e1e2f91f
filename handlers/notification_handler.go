package handlers

import (
	"context"
	"log"

	ws "github.com/KadariPavani/placement-training-backend/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// StudentListNotifications returns recent notifications addressed to the
// student's batches.
func StudentListNotifications(c *fiber.Ctx) error {
	who := caller(c)
	access, err := studentStore.FindAccess(c.Context(), who.ID)
	if err != nil {
		return serviceError(c, err)
	}
	if access == nil {
		return c.JSON([]fiber.Map{})
	}

	var batchIDs []string
	if access.BatchID != "" {
		batchIDs = append(batchIDs, access.BatchID)
	}
	if access.PlacementTrainingBatchID != "" {
		batchIDs = append(batchIDs, access.PlacementTrainingBatchID)
	}

	notifications, err := notificationStore.ListForBatches(c.Context(), batchIDs, 50)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(notifications)
}

// ServeWs upgrades the connection and parks the student on the hub.
// Batch membership is resolved once, here, so the hub stays database-free.
func ServeWs(conn *websocket.Conn) {
	studentID, _ := conn.Locals("studentID").(string)
	batchID, placementBatchID, err := studentStore.FindBatchMembership(context.Background(), studentID)
	if err != nil {
		log.Printf("ws: membership lookup for %s failed: %v", studentID, err)
		conn.Close()
		return
	}

	client := &ws.Client{
		StudentID:        studentID,
		BatchID:          batchID,
		PlacementBatchID: placementBatchID,
		Conn:             conn,
	}
	ws.Register <- client
	defer func() {
		ws.Unregister <- client
		conn.Close()
	}()

	// Reads are only used to detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
