package emergency

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"carehome/internal/domain"
	"carehome/internal/modules/booking"
	"carehome/internal/modules/notification"
)

type Service struct {
	users      UserRepository
	caregivers CaregiverRepository
	bookings   BookingCreator
	emergency  BookingRepository
	notifs     Dispatcher
	log        *zap.Logger
}

func NewService(
	users UserRepository,
	caregivers CaregiverRepository,
	bookings BookingCreator,
	emergency BookingRepository,
	notifs Dispatcher,
	log *zap.Logger,
) *Service {
	return &Service{
		users:      users,
		caregivers: caregivers,
		bookings:   bookings,
		emergency:  emergency,
		notifs:     notifs,
		log:        log,
	}
}

// Create validates the request, records the emergency booking and fans
// the alert out to every verified caregiver and active admin. The
// booking is the source of truth: once it exists, notification
// problems are logged but never fail the request.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Result, error) {
	customer, err := s.users.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	address := strings.TrimSpace(req.Address)
	if len(address) < minAddressLen {
		return nil, ErrInvalidAddress
	}

	b, err := s.bookings.CreateBooking(ctx, booking.CreateBookingRequest{
		CustomerID:  customer.ID,
		CaregiverID: req.CaregiverID,
		Address:     address,
		Notes:       req.Notes,
		Emergency:   true,
	})
	if err != nil {
		return nil, err
	}

	customer.PasswordHash = ""
	b.Customer = customer
	if req.CaregiverID != nil {
		if profile, err := s.caregivers.GetByID(ctx, *req.CaregiverID); err == nil {
			if profile.User != nil {
				profile.User.PasswordHash = ""
			}
			b.Caregiver = profile
		}
	}

	// contact phone submitted with the request wins over the profile phone
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = customer.Phone
	}

	audience, err := s.resolveAudience(ctx)
	if err != nil {
		s.log.Error("emergency audience lookup failed",
			zap.Int64("booking_id", b.ID),
			zap.Error(err))
		return &Result{Booking: b}, nil
	}

	metadata := map[string]any{
		"bookingId":     b.ID,
		"customerId":    customer.ID,
		"customerName":  customer.Name,
		"customerPhone": phone,
		"address":       address,
		"notes":         req.Notes,
	}
	if req.CaregiverID != nil {
		metadata["caregiverId"] = *req.CaregiverID
	}

	created, err := s.notifs.Dispatch(ctx, notification.DispatchInput{
		RecipientIDs: audience,
		Type:         domain.NotificationEmergency,
		Title:        "Emergency care request",
		Message:      fmt.Sprintf("%s needs immediate assistance at %s.", customer.Name, address),
		Metadata:     metadata,
		SendEmail:    true,
	})
	if err != nil {
		s.log.Error("emergency dispatch failed",
			zap.Int64("booking_id", b.ID),
			zap.Int("audience", len(audience)),
			zap.Error(err))
		return &Result{Booking: b}, nil
	}

	s.log.Info("emergency request dispatched",
		zap.Int64("booking_id", b.ID),
		zap.Int64("customer_id", customer.ID),
		zap.Int("notified", len(created)))

	return &Result{Booking: b, Notified: len(created)}, nil
}

// List returns open emergency requests for the staff dashboard.
func (s *Service) List(ctx context.Context, page, limit int) ([]domain.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.emergency.ListEmergency(ctx, limit, (page-1)*limit)
}

// resolveAudience collects the user IDs of every verified caregiver and
// every active admin. Overlap is fine, dispatch deduplicates.
func (s *Service) resolveAudience(ctx context.Context) ([]int64, error) {
	profiles, err := s.caregivers.ListVerified(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.users.ListActiveAdmins(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(profiles)+len(admins))
	for _, p := range profiles {
		out = append(out, p.UserID)
	}
	for _, a := range admins {
		out = append(out, a.ID)
	}
	return out, nil
}
