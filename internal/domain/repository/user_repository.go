package repository

import (
	"context"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// UserRepository persistence port for User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
