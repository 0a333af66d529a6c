package repository

import (
	"context"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// ProductRepository persistence port for Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
