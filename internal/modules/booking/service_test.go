package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"carehome/internal/domain"
	"carehome/internal/modules/notification"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CheckAvailability(ctx context.Context, caregiverID int64, start time.Time, window time.Duration) (bool, error) {
	args := m.Called(ctx, caregiverID, start, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockCaregiverRepository struct {
	mock.Mock
}

func (m *MockCaregiverRepository) GetByID(ctx context.Context, id int64) (*domain.CaregiverProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaregiverProfile), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, in notification.DispatchInput) ([]domain.Notification, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func TestCreateBooking_TargetedSuccess(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	caregiverID := int64(5)
	caregivers.On("GetByID", mock.Anything, caregiverID).Return(&domain.CaregiverProfile{
		ID:              5,
		UserID:          105,
		HourlyRateCents: 4500,
		Verified:        true,
	}, nil)
	bookings.On("CheckAvailability", mock.Anything, caregiverID, mock.Anything, availabilityWindow).Return(true, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("Dispatch", mock.Anything, mock.MatchedBy(func(in notification.DispatchInput) bool {
		return len(in.RecipientIDs) == 1 && in.RecipientIDs[0] == 105 && in.Type == domain.NotificationBooking
	})).Return([]domain.Notification{{ID: 1}}, nil)

	service := NewService(bookings, caregivers, notifs)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID:  42,
		CaregiverID: &caregiverID,
		StartTime:   time.Now().Add(24 * time.Hour),
		Address:     "12 Elm Street, Springfield",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(4500), b.PriceCents)
	assert.Equal(t, domain.BookingRequested, b.Status)
	assert.False(t, b.Emergency)
	notifs.AssertExpectations(t)
}

func TestCreateBooking_CaregiverNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	caregiverID := int64(77)
	caregivers.On("GetByID", mock.Anything, caregiverID).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID:  42,
		CaregiverID: &caregiverID,
		Address:     "12 Elm Street, Springfield",
	})

	assert.ErrorIs(t, err, ErrCaregiverNotFound)
}

func TestCreateBooking_UnverifiedCaregiver(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	caregiverID := int64(5)
	caregivers.On("GetByID", mock.Anything, caregiverID).Return(&domain.CaregiverProfile{
		ID: 5, UserID: 105, Verified: false,
	}, nil)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID:  42,
		CaregiverID: &caregiverID,
		Address:     "12 Elm Street, Springfield",
	})

	assert.ErrorIs(t, err, ErrCaregiverNotVerified)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_Overbooking(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	caregiverID := int64(5)
	caregivers.On("GetByID", mock.Anything, caregiverID).Return(&domain.CaregiverProfile{
		ID: 5, UserID: 105, Verified: true,
	}, nil)
	bookings.On("CheckAvailability", mock.Anything, caregiverID, mock.Anything, mock.Anything).Return(false, nil)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID:  42,
		CaregiverID: &caregiverID,
		Address:     "12 Elm Street, Springfield",
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
}

// Broadcast mode is reserved for emergencies.
func TestCreateBooking_BroadcastRequiresEmergency(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID: 42,
		Address:    "12 Elm Street, Springfield",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_BroadcastEmergency(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(bookings, caregivers, notifs)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID: 42,
		Address:    "12 Elm Street, Springfield",
		Emergency:  true,
	})

	assert.NoError(t, err)
	assert.Nil(t, b.CaregiverID)
	assert.True(t, b.Emergency)
	assert.Equal(t, int64(0), b.PriceCents)
	assert.True(t, strings.HasSuffix(b.Notes, domain.EmergencyMarker))
	caregivers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	notifs.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateBooking_EmptyAddress(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID: 42,
		Address:    "   ",
		Emergency:  true,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_CustomerCancelsOwn(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, CustomerID: 42, Status: domain.BookingRequested,
	}, nil).Once()
	bookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingCancelled).Return(nil)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, CustomerID: 42, Status: domain.BookingCancelled,
	}, nil).Once()
	notifs.On("Dispatch", mock.Anything, mock.Anything).Return([]domain.Notification{{ID: 1}}, nil)

	service := NewService(bookings, caregivers, notifs)

	b, err := service.UpdateStatus(context.Background(), 7, 42, string(domain.RoleCustomer), domain.BookingCancelled)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	bookings.AssertExpectations(t)
}

func TestUpdateStatus_CustomerCannotConfirm(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, CustomerID: 42, Status: domain.BookingRequested,
	}, nil)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.UpdateStatus(context.Background(), 7, 42, string(domain.RoleCustomer), domain.BookingConfirmed)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_CustomerCannotCancelOthers(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, CustomerID: 42, Status: domain.BookingRequested,
	}, nil)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.UpdateStatus(context.Background(), 7, 888, string(domain.RoleCustomer), domain.BookingCancelled)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_TerminalStateRejected(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, CustomerID: 42, Status: domain.BookingCompleted,
	}, nil)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.UpdateStatus(context.Background(), 7, 1, string(domain.RoleAdmin), domain.BookingConfirmed)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	caregivers := new(MockCaregiverRepository)
	notifs := new(MockDispatcher)

	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(bookings, caregivers, notifs)

	_, err := service.UpdateStatus(context.Background(), 404, 1, string(domain.RoleAdmin), domain.BookingConfirmed)

	assert.ErrorIs(t, err, ErrNotFound)
}
