package domain

import "time"

// NotificationKind classifies in-app notifications.
type NotificationKind string

const (
	NotificationCollabInvite NotificationKind = "collaboration_invite"
)

// Notification is an in-app notification record. Payload is a
// machine-readable JSON object the frontend uses to render actions.
type Notification struct {
	ID        string
	AccountID string
	Kind      NotificationKind
	Title     string
	Message   string
	Payload   string
	ReadAt    *time.Time
	CreatedAt time.Time
}
