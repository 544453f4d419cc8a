package booking

import (
	"context"
	"time"

	"carehome/internal/domain"
	"carehome/internal/modules/notification"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, caregiverID int64, start time.Time, window time.Duration) (bool, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type CaregiverRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CaregiverProfile, error)
}

// Dispatcher sends in-app notifications about booking lifecycle events.
type Dispatcher interface {
	Dispatch(ctx context.Context, in notification.DispatchInput) ([]domain.Notification, error)
}
