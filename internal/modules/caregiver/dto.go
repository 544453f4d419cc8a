package caregiver

import "carehome/internal/domain"

type listingView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	Specialty       string `json:"specialty"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
}

func toListingView(p domain.CaregiverProfile) listingView {
	v := listingView{
		ID:              p.ID,
		Bio:             p.Bio,
		Specialty:       p.Specialty,
		HourlyRateCents: p.HourlyRateCents,
	}
	if p.User != nil {
		v.Name = p.User.Name
	}
	return v
}
