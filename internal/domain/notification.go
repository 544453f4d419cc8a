package domain

import "time"

type NotificationType string

const (
	NotificationEmergency NotificationType = "emergency"
	NotificationBooking   NotificationType = "booking"
	NotificationSystem    NotificationType = "system"
	NotificationAlert     NotificationType = "alert"
)

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

const (
	NotificationTitleMaxLen   = 200
	NotificationMessageMaxLen = 1000
)

// Notification is one in-app notification row. A fan-out to N recipients
// produces N independent rows; every store operation is scoped to the
// owning user.
type Notification struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Type      NotificationType   `json:"type"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Status    NotificationStatus `json:"status"`
	Metadata  map[string]any     `json:"metadata,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (n *Notification) IsRead() bool {
	return n.Status == NotificationRead
}
