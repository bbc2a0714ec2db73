package memory

import (
	"context"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

type productRecord = domain.Product

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct {
	collection
	byID map[string]productRecord
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := *p
	rec.ID = newID()
	r.byID[rec.ID] = rec
	return &rec, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &rec, nil
}

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.byID))
	for _, id := range sortedKeys(r.byID) {
		rec := r.byID[id]
		out = append(out, &rec)
	}
	return out, nil
}

func (r *ProductRepository) Replace(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	rec := *p
	r.byID[p.ID] = rec
	return &rec, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}
