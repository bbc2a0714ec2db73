package memory

import (
	"context"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
)

type orderRecord = domain.Order

// OrderRepository implements ports.OrderRepository.
type OrderRepository struct {
	collection
	byID map[string]orderRecord
}

func copyOrder(o orderRecord) *domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return &o
}

func (r *OrderRepository) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := *copyOrder(*o)
	rec.ID = newID()
	r.byID[rec.ID] = rec
	return copyOrder(rec), nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(rec), nil
}

func (r *OrderRepository) List(_ context.Context, f ports.OrderFilter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0, len(r.byID))
	for _, id := range sortedKeys(r.byID) {
		rec := r.byID[id]
		if f.CustomerID != "" && rec.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, copyOrder(rec))
	}
	return out, nil
}
