package ports

import (
	"context"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

// OrderFilter narrows List. An empty CustomerID means every order.
type OrderFilter struct {
	CustomerID string
}

// OrderRepository defines persistence operations for orders. Orders are never
// updated or deleted through it.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
}
