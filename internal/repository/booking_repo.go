package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"carehome/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	CustomerID  int64     `gorm:"column:customer_id;index;not null"`
	CaregiverID *int64    `gorm:"column:caregiver_id"`
	StartTime   time.Time `gorm:"column:start_time;not null"`
	Address     string    `gorm:"column:address;size:500;not null"`
	Notes       *string   `gorm:"column:notes;type:text"`
	PriceCents  int64     `gorm:"column:price_cents;not null;default:0"`
	Status      string    `gorm:"column:status;size:20;index;not null"`
	Emergency   bool      `gorm:"column:emergency;index;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		CaregiverID: m.CaregiverID,
		StartTime:   m.StartTime,
		Address:     m.Address,
		Notes:       notes,
		PriceCents:  m.PriceCents,
		Status:      domain.BookingStatus(m.Status),
		Emergency:   m.Emergency,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		CaregiverID: b.CaregiverID,
		StartTime:   b.StartTime,
		Address:     b.Address,
		Notes:       notes,
		PriceCents:  b.PriceCents,
		Status:      string(b.Status),
		Emergency:   b.Emergency,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// CheckAvailability reports whether the caregiver has no other
// non-cancelled booking within the window around the requested start.
func (r *BookingRepository) CheckAvailability(ctx context.Context, caregiverID int64, start time.Time, window time.Duration) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("caregiver_id = ?", caregiverID).
		Where("status NOT IN ?", []string{string(domain.BookingCancelled), string(domain.BookingCompleted)}).
		Where("start_time > ? AND start_time < ?", start.Add(-window), start.Add(window)).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Where("customer_id = ?", customerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

// ListEmergency returns open emergency bookings, newest first. The
// first-class emergency flag replaces note-text and recency heuristics.
func (r *BookingRepository) ListEmergency(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("emergency = ?", true).
		Where("status IN ?", []string{string(domain.BookingRequested), string(domain.BookingConfirmed)})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()}).Error
}
