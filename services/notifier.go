package services

import "context"

// NotificationPayload is what the notification collaborator delivers to a
// batch. Delivery is best effort and never blocks a primary write.
type NotificationPayload struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Actor    string `json:"actor"`
}

type Notifier interface {
	NotifyBatch(ctx context.Context, batchID string, payload NotificationPayload) error
	// NotifyAll is the combined broadcast sent once per fan-out on top of
	// the per-batch notifications.
	NotifyAll(ctx context.Context, batchIDs []string, payload NotificationPayload) error
}
