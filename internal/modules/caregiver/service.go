package caregiver

import (
	"context"

	"carehome/internal/domain"
)

type Repository interface {
	ListVerified(ctx context.Context) ([]domain.CaregiverProfile, error)
}

// Service serves the public directory of verified caregivers.
type Service struct {
	caregivers Repository
}

func NewService(caregivers Repository) *Service {
	return &Service{caregivers: caregivers}
}

func (s *Service) ListVerified(ctx context.Context) ([]domain.CaregiverProfile, error) {
	return s.caregivers.ListVerified(ctx)
}
