package ports

import (
	"context"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// Replace overwrites every field of the stored product with p.
	Replace(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductCache stores the serialised catalogue between writes.
// A miss is reported as (nil, false, nil).
type ProductCache interface {
	Get(ctx context.Context) ([]*domain.Product, bool, error)
	Set(ctx context.Context, products []*domain.Product) error
	Invalidate(ctx context.Context) error
}
