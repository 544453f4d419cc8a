package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"carehome/internal/domain"
	"carehome/internal/modules/notification"
)

// availabilityWindow is the exclusion zone around a caregiver's existing
// booking starts when checking targeted bookings.
const availabilityWindow = 2 * time.Hour

const defaultEmergencyNotes = "Emergency care request"

type Service struct {
	bookings   BookingRepository
	caregivers CaregiverRepository
	notifs     Dispatcher
}

func NewService(bookings BookingRepository, caregivers CaregiverRepository, notifs Dispatcher) *Service {
	return &Service{
		bookings:   bookings,
		caregivers: caregivers,
		notifs:     notifs,
	}
}

// CreateBooking handles both creation modes so the pricing invariant
// (PriceCents = 0 only while no caregiver is assigned) lives in one
// place. The broadcast mode skips availability checks since no specific
// caregiver is targeted yet; it is only reachable for emergencies.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrValidation
	}

	start := req.StartTime
	if start.IsZero() {
		start = time.Now()
	}

	b := &domain.Booking{
		CustomerID: req.CustomerID,
		StartTime:  start,
		Address:    req.Address,
		Notes:      req.Notes,
		Status:     domain.BookingRequested,
		Emergency:  req.Emergency,
	}

	if req.CaregiverID == nil {
		if !req.Emergency {
			return nil, ErrValidation
		}
		notes := req.Notes
		if notes == "" {
			notes = defaultEmergencyNotes
		}
		b.Notes = notes + " " + domain.EmergencyMarker
		b.PriceCents = 0
	} else {
		caregiver, err := s.caregivers.GetByID(ctx, *req.CaregiverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCaregiverNotFound
			}
			return nil, err
		}
		if !caregiver.Verified {
			return nil, ErrCaregiverNotVerified
		}

		ok, err := s.bookings.CheckAvailability(ctx, caregiver.ID, start, availabilityWindow)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotAvailable
		}

		b.CaregiverID = &caregiver.ID
		b.PriceCents = caregiver.HourlyRateCents

		if err := s.bookings.Create(ctx, b); err != nil {
			return nil, err
		}

		if s.notifs != nil && caregiver.UserID != 0 {
			_, _ = s.notifs.Dispatch(ctx, notification.DispatchInput{
				RecipientIDs: []int64{caregiver.UserID},
				Type:         domain.NotificationBooking,
				Title:        "New booking request",
				Message:      fmt.Sprintf("You have a new booking request at %s.", req.Address),
				Metadata:     map[string]any{"bookingId": b.ID},
			})
		}
		return b, nil
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, customerID int64, page, limit int) ([]domain.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.bookings.ListByCustomer(ctx, customerID, limit, (page-1)*limit)
}

// UpdateStatus applies one lifecycle transition. Customers may only
// cancel their own bookings; caregivers and admins drive the forward
// transitions.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, actorUserID int64, actorRole string, newStatus domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch actorRole {
	case string(domain.RoleAdmin), string(domain.RoleCaregiver):
	case string(domain.RoleCustomer):
		if b.CustomerID != actorUserID || newStatus != domain.BookingCancelled {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if !b.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_, _ = s.notifs.Dispatch(ctx, notification.DispatchInput{
			RecipientIDs: []int64{b.CustomerID},
			Type:         domain.NotificationBooking,
			Title:        statusTitle(newStatus),
			Message:      fmt.Sprintf("Your booking for %s is now %s.", b.Address, newStatus),
			Metadata:     map[string]any{"bookingId": b.ID, "status": string(newStatus)},
		})
	}

	return s.bookings.GetByID(ctx, bookingID)
}

func statusTitle(status domain.BookingStatus) string {
	switch status {
	case domain.BookingConfirmed:
		return "Booking confirmed"
	case domain.BookingInProgress:
		return "Care visit started"
	case domain.BookingCompleted:
		return "Care visit completed"
	case domain.BookingCancelled:
		return "Booking cancelled"
	}
	return "Booking updated"
}
