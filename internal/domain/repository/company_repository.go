package repository

import (
	"context"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// CompanyRepository persistence port for Company.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
