package domain

import "time"

type BookingStatus string

const (
	BookingRequested  BookingStatus = "requested"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// EmergencyMarker is appended to the notes of broadcast emergency
// bookings that have no assigned caregiver yet.
const EmergencyMarker = "[EMERGENCY]"

type Booking struct {
	ID          int64         `json:"id"`
	CustomerID  int64         `json:"customer_id" validate:"required"`
	CaregiverID *int64        `json:"caregiver_id,omitempty"`
	StartTime   time.Time     `json:"start_time"`
	Address     string        `json:"address"`
	Notes       string        `json:"notes,omitempty"`
	PriceCents  int64         `json:"price_cents"`
	Status      BookingStatus `json:"status"`
	Emergency   bool          `json:"emergency"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Customer  *User             `json:"customer,omitempty"`
	Caregiver *CaregiverProfile `json:"caregiver,omitempty"`
}

// IsTerminal reports whether the status allows no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo enforces the monotonic lifecycle
// requested -> confirmed -> in_progress -> completed, with cancellation
// reachable from any non-terminal state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == BookingCancelled {
		return true
	}
	switch s {
	case BookingRequested:
		return next == BookingConfirmed
	case BookingConfirmed:
		return next == BookingInProgress
	case BookingInProgress:
		return next == BookingCompleted
	}
	return false
}
