package notification

import "context"

// Service - the fire-and-forget notification sink. Notify enqueues and
// returns immediately; delivery failures are logged by the workers, never
// surfaced to the flow that triggered them.
type Service interface {
	Notify(req CreateNotificationRequest)
	NotifyAdmins(ctx context.Context, companyID, notifType, title, message string)
	List(ctx context.Context, recipientID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	Shutdown()
}
