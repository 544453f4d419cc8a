package booking

import "time"

// CreateBookingRequest is the single creation input for both modes:
// a targeted booking names a caregiver profile, a broadcast emergency
// booking leaves CaregiverID nil and sets Emergency.
type CreateBookingRequest struct {
	CustomerID  int64
	CaregiverID *int64
	StartTime   time.Time
	Address     string
	Notes       string
	Emergency   bool
}

type createBookingBody struct {
	CaregiverID *int64    `json:"caregiver_id" binding:"required"`
	StartTime   time.Time `json:"start_time"`
	Address     string    `json:"address" binding:"required"`
	Notes       string    `json:"notes"`
}

type updateStatusBody struct {
	Status string `json:"status" binding:"required"`
}
