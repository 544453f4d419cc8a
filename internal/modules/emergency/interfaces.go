package emergency

import (
	"context"

	"carehome/internal/domain"
	"carehome/internal/modules/booking"
	"carehome/internal/modules/notification"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListActiveAdmins(ctx context.Context) ([]domain.User, error)
}

type CaregiverRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CaregiverProfile, error)
	ListVerified(ctx context.Context) ([]domain.CaregiverProfile, error)
}

// BookingCreator is the booking collaborator; the orchestrator never
// writes bookings directly.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req booking.CreateBookingRequest) (*domain.Booking, error)
}

type BookingRepository interface {
	ListEmergency(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, in notification.DispatchInput) ([]domain.Notification, error)
}
