package notification

import (
	"context"

	"carehome/internal/domain"
)

// NotificationRepository is the persistence contract for the
// notification store.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit, offset int, unreadOnly bool) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

// ContactDirectory resolves recipient user IDs to their name/email for
// email delivery.
type ContactDirectory interface {
	GetContacts(ctx context.Context, userIDs []int64) ([]domain.User, error)
}
