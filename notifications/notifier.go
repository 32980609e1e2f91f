package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
	"github.com/KadariPavani/placement-training-backend/services"
	"github.com/KadariPavani/placement-training-backend/websocket"
)

// NotificationStore persists batch notifications for later retrieval.
type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
}

// MemberEmails looks up recipient addresses for the optional email channel.
type MemberEmails interface {
	ListEmailsByBatch(ctx context.Context, batchID string) ([]string, error)
}

// BatchNotifier delivers a notification to a batch on three channels:
// a persisted document, a websocket push to connected members, and
// (when configured) a best-effort email to each member.
type BatchNotifier struct {
	Store   NotificationStore
	Members MemberEmails
}

func NewBatchNotifier(store NotificationStore, members MemberEmails) *BatchNotifier {
	return &BatchNotifier{Store: store, Members: members}
}

func (n *BatchNotifier) NotifyBatch(ctx context.Context, batchID string, payload services.NotificationPayload) error {
	notification := &models.Notification{
		BatchID:   batchID,
		Title:     payload.Title,
		Message:   payload.Message,
		Category:  payload.Category,
		Type:      payload.Type,
		Actor:     payload.Actor,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.Store.Insert(ctx, notification); err != nil {
		return err
	}
	websocket.PushToBatches([]string{batchID}, notification)
	n.emailBatch(ctx, batchID, payload)
	return nil
}

func (n *BatchNotifier) NotifyAll(ctx context.Context, batchIDs []string, payload services.NotificationPayload) error {
	notification := &models.Notification{
		Title:     payload.Title,
		Message:   payload.Message,
		Category:  payload.Category,
		Type:      payload.Type,
		Actor:     payload.Actor,
		CreatedAt: time.Now().UTC(),
	}
	websocket.PushToBatches(batchIDs, notification)
	return nil
}

func (n *BatchNotifier) emailBatch(ctx context.Context, batchID string, payload services.NotificationPayload) {
	if EmailClient == nil || n.Members == nil {
		return
	}
	emails, err := n.Members.ListEmailsByBatch(ctx, batchID)
	if err != nil {
		log.Printf("notification email lookup for batch %s failed: %v", batchID, err)
		return
	}
	body := fmt.Sprintf("<h1>%s</h1><p>%s</p>", payload.Title, payload.Message)
	for _, email := range emails {
		go SendEmail(email, payload.Title, body)
	}
}
