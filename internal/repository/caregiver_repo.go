package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"carehome/internal/domain"
)

type CaregiverRepository struct {
	db *gorm.DB
}

func NewCaregiverRepository(db *gorm.DB) *CaregiverRepository {
	return &CaregiverRepository{db: db}
}

type caregiverProfileModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	UserID          int64      `gorm:"column:user_id;uniqueIndex;not null"`
	Bio             string     `gorm:"column:bio;type:text"`
	Specialty       string     `gorm:"column:specialty;size:100"`
	HourlyRateCents int64      `gorm:"column:hourly_rate_cents"`
	Verified        bool       `gorm:"column:verified;index;default:false"`
	VerifiedAt      *time.Time `gorm:"column:verified_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
}

func (caregiverProfileModel) TableName() string { return "caregiver_profiles" }

func toDomainCaregiver(m caregiverProfileModel) *domain.CaregiverProfile {
	return &domain.CaregiverProfile{
		ID:              m.ID,
		UserID:          m.UserID,
		Bio:             m.Bio,
		Specialty:       m.Specialty,
		HourlyRateCents: m.HourlyRateCents,
		Verified:        m.Verified,
		VerifiedAt:      m.VerifiedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *CaregiverRepository) Create(ctx context.Context, p *domain.CaregiverProfile) error {
	m := caregiverProfileModel{
		UserID:          p.UserID,
		Bio:             p.Bio,
		Specialty:       p.Specialty,
		HourlyRateCents: p.HourlyRateCents,
		Verified:        p.Verified,
		VerifiedAt:      p.VerifiedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainCaregiver(m)
	return nil
}

func (r *CaregiverRepository) GetByID(ctx context.Context, id int64) (*domain.CaregiverProfile, error) {
	var m caregiverProfileModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return r.attachUser(ctx, toDomainCaregiver(m))
}

// ListVerified returns all verified caregiver profiles with their user
// accounts attached. This is the caregiver half of the emergency
// audience and the public directory listing.
func (r *CaregiverRepository) ListVerified(ctx context.Context) ([]domain.CaregiverProfile, error) {
	var rows []caregiverProfileModel
	if err := r.db.WithContext(ctx).Where("verified = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	userIDs := make([]int64, 0, len(rows))
	for _, m := range rows {
		userIDs = append(userIDs, m.UserID)
	}

	var users []userModel
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = toDomainUser(users[i])
	}

	out := make([]domain.CaregiverProfile, 0, len(rows))
	for _, m := range rows {
		p := toDomainCaregiver(m)
		p.User = byID[m.UserID]
		out = append(out, *p)
	}
	return out, nil
}

func (r *CaregiverRepository) attachUser(ctx context.Context, p *domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
	var u userModel
	if err := r.db.WithContext(ctx).First(&u, p.UserID).Error; err != nil {
		return nil, err
	}
	p.User = toDomainUser(u)
	return p, nil
}
