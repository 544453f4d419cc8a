package vitals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carehome/internal/domain"
)

type MockVitalRepository struct {
	mock.Mock
}

func (m *MockVitalRepository) Create(ctx context.Context, v *domain.Vital) error {
	args := m.Called(ctx, v)
	if v != nil && args.Error(0) == nil {
		v.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockVitalRepository) GetLatestByUser(ctx context.Context, userID int64) ([]domain.Vital, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vital), args.Error(1)
}

func (m *MockVitalRepository) ListByType(ctx context.Context, userID int64, vitalType domain.VitalType, since time.Time) ([]domain.Vital, error) {
	args := m.Called(ctx, userID, vitalType, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vital), args.Error(1)
}

func TestRecord_Success(t *testing.T) {
	repo := new(MockVitalRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vital) bool {
		return v.UserID == 42 && v.Type == domain.VitalHeartRate && v.Value == "72"
	})).Return(nil)

	service := NewService(repo)

	v, err := service.Record(context.Background(), 42, RecordRequest{
		Type:  "heart_rate",
		Value: " 72 ",
		Unit:  "bpm",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(999), v.ID)
	assert.False(t, v.RecordedAt.IsZero())
}

func TestRecord_UnknownType(t *testing.T) {
	repo := new(MockVitalRepository)
	service := NewService(repo)

	_, err := service.Record(context.Background(), 42, RecordRequest{
		Type:  "mood",
		Value: "good",
	})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecord_EmptyValue(t *testing.T) {
	repo := new(MockVitalRepository)
	service := NewService(repo)

	_, err := service.Record(context.Background(), 42, RecordRequest{
		Type:  "heart_rate",
		Value: "   ",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestTrends_ClampsDays(t *testing.T) {
	repo := new(MockVitalRepository)
	repo.On("ListByType", mock.Anything, int64(42), domain.VitalBloodPressure, mock.MatchedBy(func(since time.Time) bool {
		// out-of-range days fall back to the 7-day default
		expected := time.Now().AddDate(0, 0, -defaultTrendDays)
		return since.Sub(expected).Abs() < time.Minute
	})).Return([]domain.Vital{{ID: 1}}, nil)

	service := NewService(repo)

	items, err := service.Trends(context.Background(), 42, "blood_pressure", 365)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	repo.AssertExpectations(t)
}

func TestTrends_UnknownType(t *testing.T) {
	repo := new(MockVitalRepository)
	service := NewService(repo)

	_, err := service.Trends(context.Background(), 42, "mood", 7)

	assert.ErrorIs(t, err, ErrValidation)
}
