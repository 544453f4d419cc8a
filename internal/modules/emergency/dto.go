package emergency

import "carehome/internal/domain"

// minAddressLen guards against unusable dispatch addresses.
const minAddressLen = 10

type CreateRequest struct {
	CustomerID  int64
	CaregiverID *int64
	Address     string
	Phone       string
	Notes       string
}

// Result reports the created booking together with how many staff
// received the alert.
type Result struct {
	Booking  *domain.Booking `json:"booking"`
	Notified int             `json:"notified"`
}

type createRequestBody struct {
	CaregiverID *int64 `json:"caregiver_id"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}
