package auth

import (
	"context"

	"carehome/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phone string) (*domain.User, error)
}

type CaregiverRepository interface {
	Create(ctx context.Context, p *domain.CaregiverProfile) error
}
