package vitals

import (
	"context"
	"errors"
	"strings"
	"time"

	"carehome/internal/domain"
)

var ErrValidation = errors.New("invalid vital reading")

const (
	defaultTrendDays = 7
	maxTrendDays     = 90
)

type Repository interface {
	Create(ctx context.Context, v *domain.Vital) error
	GetLatestByUser(ctx context.Context, userID int64) ([]domain.Vital, error)
	ListByType(ctx context.Context, userID int64, vitalType domain.VitalType, since time.Time) ([]domain.Vital, error)
}

type Service struct {
	vitals Repository
}

func NewService(vitals Repository) *Service {
	return &Service{vitals: vitals}
}

type RecordRequest struct {
	Type       string
	Value      string
	Unit       string
	RecordedAt time.Time
}

func (s *Service) Record(ctx context.Context, userID int64, req RecordRequest) (*domain.Vital, error) {
	vt := domain.VitalType(req.Type)
	if !vt.Valid() || strings.TrimSpace(req.Value) == "" {
		return nil, ErrValidation
	}

	recordedAt := req.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	v := &domain.Vital{
		UserID:     userID,
		Type:       vt,
		Value:      strings.TrimSpace(req.Value),
		Unit:       req.Unit,
		RecordedAt: recordedAt,
	}
	if err := s.vitals.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Latest(ctx context.Context, userID int64) ([]domain.Vital, error) {
	return s.vitals.GetLatestByUser(ctx, userID)
}

// Trends returns readings of one type over the last N days, oldest
// first. Days outside [1, maxTrendDays] fall back to the default.
func (s *Service) Trends(ctx context.Context, userID int64, vitalType string, days int) ([]domain.Vital, error) {
	vt := domain.VitalType(vitalType)
	if !vt.Valid() {
		return nil, ErrValidation
	}
	if days < 1 || days > maxTrendDays {
		days = defaultTrendDays
	}

	since := time.Now().AddDate(0, 0, -days)
	return s.vitals.ListByType(ctx, userID, vt, since)
}
