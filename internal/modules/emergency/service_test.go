package emergency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"carehome/internal/domain"
	"carehome/internal/modules/booking"
	"carehome/internal/modules/notification"
)

// Mock collaborators

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
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

func (m *MockCaregiverRepository) ListVerified(ctx context.Context) ([]domain.CaregiverProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaregiverProfile), args.Error(1)
}

type MockBookingCreator struct {
	mock.Mock
}

func (m *MockBookingCreator) CreateBooking(ctx context.Context, req booking.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListEmergency(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
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

func newTestService(users *MockUserRepository, caregivers *MockCaregiverRepository, creator *MockBookingCreator, repo *MockBookingRepository, notifs *MockDispatcher) *Service {
	return NewService(users, caregivers, creator, repo, notifs, zap.NewNop())
}

func TestCreate_FansOutToCaregiversAndAdmins(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{
		ID:    42,
		Name:  "Jane Smith",
		Phone: "+1-555-0100",
		Role:  domain.RoleCustomer,
	}, nil)

	creator.On("CreateBooking", mock.Anything, mock.MatchedBy(func(req booking.CreateBookingRequest) bool {
		return req.CustomerID == 42 && req.Emergency && req.CaregiverID == nil
	})).Return(&domain.Booking{ID: 7, CustomerID: 42, Emergency: true, Status: domain.BookingRequested}, nil)

	caregivers.On("ListVerified", mock.Anything).Return([]domain.CaregiverProfile{
		{ID: 1, UserID: 101, Verified: true},
		{ID: 2, UserID: 102, Verified: true},
	}, nil)
	users.On("ListActiveAdmins", mock.Anything).Return([]domain.User{
		{ID: 201, Role: domain.RoleAdmin},
	}, nil)

	notifs.On("Dispatch", mock.Anything, mock.MatchedBy(func(in notification.DispatchInput) bool {
		return len(in.RecipientIDs) == 3 &&
			in.Type == domain.NotificationEmergency &&
			in.SendEmail &&
			in.Metadata["bookingId"] == int64(7) &&
			in.Metadata["customerName"] == "Jane Smith" &&
			in.Metadata["customerPhone"] == "+1-555-0100"
	})).Return([]domain.Notification{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	service := newTestService(users, caregivers, creator, repo, notifs)

	res, err := service.Create(context.Background(), CreateRequest{
		CustomerID: 42,
		Address:    "12 Elm Street, Springfield",
		Notes:      "Fell in the kitchen, needs help standing",
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, int64(7), res.Booking.ID)
	assert.Equal(t, 3, res.Notified)
	if assert.NotNil(t, res.Booking.Customer) {
		assert.Equal(t, "Jane Smith", res.Booking.Customer.Name)
		assert.Empty(t, res.Booking.Customer.PasswordHash)
	}
	notifs.AssertExpectations(t)
}

// A phone submitted with the request beats the stored profile phone.
func TestCreate_RequestPhonePreferred(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{
		ID:    42,
		Name:  "Jane Smith",
		Phone: "+1-555-0100",
	}, nil)
	creator.On("CreateBooking", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 7, Emergency: true}, nil)
	caregivers.On("ListVerified", mock.Anything).Return([]domain.CaregiverProfile{{ID: 1, UserID: 101}}, nil)
	users.On("ListActiveAdmins", mock.Anything).Return([]domain.User{}, nil)
	notifs.On("Dispatch", mock.Anything, mock.MatchedBy(func(in notification.DispatchInput) bool {
		return in.Metadata["customerPhone"] == "+1-555-9999"
	})).Return([]domain.Notification{{ID: 1}}, nil)

	service := newTestService(users, caregivers, creator, repo, notifs)

	_, err := service.Create(context.Background(), CreateRequest{
		CustomerID: 42,
		Address:    "12 Elm Street, Springfield",
		Phone:      " +1-555-9999 ",
	})

	assert.NoError(t, err)
	notifs.AssertExpectations(t)
}

func TestCreate_ShortAddressRejectedBeforeBooking(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Role: domain.RoleCustomer}, nil)

	service := newTestService(users, caregivers, creator, repo, notifs)

	_, err := service.Create(context.Background(), CreateRequest{
		CustomerID: 42,
		Address:    "  short  ",
	})

	assert.ErrorIs(t, err, ErrInvalidAddress)
	creator.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	notifs.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreate_CustomerNotFound(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	users.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, caregivers, creator, repo, notifs)

	_, err := service.Create(context.Background(), CreateRequest{
		CustomerID: 9,
		Address:    "12 Elm Street, Springfield",
	})

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	creator.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

// Booking must survive a total dispatch failure.
func TestCreate_DispatchFailureKeepsBooking(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Name: "Jane Smith"}, nil)
	creator.On("CreateBooking", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 7, Emergency: true}, nil)
	caregivers.On("ListVerified", mock.Anything).Return([]domain.CaregiverProfile{{ID: 1, UserID: 101}}, nil)
	users.On("ListActiveAdmins", mock.Anything).Return([]domain.User{}, nil)
	notifs.On("Dispatch", mock.Anything, mock.Anything).Return(nil, notification.ErrDispatchFailed)

	service := newTestService(users, caregivers, creator, repo, notifs)

	res, err := service.Create(context.Background(), CreateRequest{
		CustomerID: 42,
		Address:    "12 Elm Street, Springfield",
	})

	assert.NoError(t, err)
	assert.NotNil(t, res.Booking)
	assert.Equal(t, int64(7), res.Booking.ID)
	assert.Equal(t, 0, res.Notified)
}

// An audience lookup error must not undo the booking either.
func TestCreate_AudienceLookupFailureKeepsBooking(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)
	creator.On("CreateBooking", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 7, Emergency: true}, nil)
	caregivers.On("ListVerified", mock.Anything).Return(nil, errors.New("db down"))

	service := newTestService(users, caregivers, creator, repo, notifs)

	res, err := service.Create(context.Background(), CreateRequest{
		CustomerID: 42,
		Address:    "12 Elm Street, Springfield",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), res.Booking.ID)
	assert.Equal(t, 0, res.Notified)
	notifs.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreate_TargetedCaregiverInMetadata(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	caregiverID := int64(5)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Name: "Jane Smith"}, nil)
	creator.On("CreateBooking", mock.Anything, mock.MatchedBy(func(req booking.CreateBookingRequest) bool {
		return req.CaregiverID != nil && *req.CaregiverID == caregiverID
	})).Return(&domain.Booking{ID: 8, CaregiverID: &caregiverID, Emergency: true}, nil)
	caregivers.On("GetByID", mock.Anything, caregiverID).Return(&domain.CaregiverProfile{
		ID: 5, UserID: 105, Specialty: "dementia care",
		User: &domain.User{ID: 105, Name: "Alice Nguyen"},
	}, nil)
	caregivers.On("ListVerified", mock.Anything).Return([]domain.CaregiverProfile{{ID: 5, UserID: 105}}, nil)
	users.On("ListActiveAdmins", mock.Anything).Return([]domain.User{{ID: 201}}, nil)

	notifs.On("Dispatch", mock.Anything, mock.MatchedBy(func(in notification.DispatchInput) bool {
		return in.Metadata["caregiverId"] == caregiverID
	})).Return([]domain.Notification{{ID: 1}, {ID: 2}}, nil)

	service := newTestService(users, caregivers, creator, repo, notifs)

	res, err := service.Create(context.Background(), CreateRequest{
		CustomerID:  42,
		CaregiverID: &caregiverID,
		Address:     "12 Elm Street, Springfield",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Notified)
	if assert.NotNil(t, res.Booking.Caregiver) {
		assert.Equal(t, "Alice Nguyen", res.Booking.Caregiver.User.Name)
	}
	notifs.AssertExpectations(t)
}

func TestList_Paginates(t *testing.T) {
	users := new(MockUserRepository)
	caregivers := new(MockCaregiverRepository)
	creator := new(MockBookingCreator)
	repo := new(MockBookingRepository)
	notifs := new(MockDispatcher)

	repo.On("ListEmergency", mock.Anything, 20, 20).Return([]domain.Booking{{ID: 1}}, int64(21), nil)

	service := newTestService(users, caregivers, creator, repo, notifs)

	items, total, err := service.List(context.Background(), 2, 20)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(21), total)
}
