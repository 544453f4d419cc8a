package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"carehome/internal/domain"
)

type VitalRepository struct {
	db *gorm.DB
}

func NewVitalRepository(db *gorm.DB) *VitalRepository {
	return &VitalRepository{db: db}
}

type vitalModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;index;not null"`
	Type       string    `gorm:"column:type;size:30;index;not null"`
	Value      string    `gorm:"column:value;size:50;not null"`
	Unit       string    `gorm:"column:unit;size:20"`
	RecordedAt time.Time `gorm:"column:recorded_at;index;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (vitalModel) TableName() string { return "vitals" }

func toDomainVital(m vitalModel) *domain.Vital {
	return &domain.Vital{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       domain.VitalType(m.Type),
		Value:      m.Value,
		Unit:       m.Unit,
		RecordedAt: m.RecordedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *VitalRepository) Create(ctx context.Context, v *domain.Vital) error {
	m := vitalModel{
		UserID:     v.UserID,
		Type:       string(v.Type),
		Value:      v.Value,
		Unit:       v.Unit,
		RecordedAt: v.RecordedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*v = *toDomainVital(m)
	return nil
}

// GetLatestByUser returns the most recent measurement per vital type.
func (r *VitalRepository) GetLatestByUser(ctx context.Context, userID int64) ([]domain.Vital, error) {
	var rows []vitalModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, 4)
	out := make([]domain.Vital, 0, 4)
	for _, m := range rows {
		if seen[m.Type] {
			continue
		}
		seen[m.Type] = true
		out = append(out, *toDomainVital(m))
	}
	return out, nil
}

// ListByType returns measurements of one type since the given time,
// oldest first, for trend charts.
func (r *VitalRepository) ListByType(ctx context.Context, userID int64, vitalType domain.VitalType, since time.Time) ([]domain.Vital, error) {
	var rows []vitalModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND recorded_at >= ?", userID, string(vitalType), since).
		Order("recorded_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Vital, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVital(m))
	}
	return out, nil
}
