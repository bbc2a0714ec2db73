package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
	"github.com/sirpyerre/webshop-api/internal/pkg/validation"
	"github.com/sirpyerre/webshop-api/pkg/logger"
)

// ProductService implements catalogue management. The cache is optional.
type ProductService struct {
	repo     ports.ProductRepository
	cache    ports.ProductCache
	validate *validation.Validator
	log      zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, v *validation.Validator, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, validate: v, log: log}
}

// List serves from the cache when it holds the catalogue. Cache failures are
// logged and otherwise ignored.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			logger.Ctx(ctx, s.log).Warn().Err(err).Msg("product cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			logger.Ctx(ctx, s.log).Warn().Err(err).Msg("product cache write failed")
		}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	p := &domain.Product{
		Name:        in.Name,
		Price:       domain.RoundToCent(in.Price),
		Image:       in.Image,
		Description: in.Description,
	}
	if err := s.validate.Validate(p); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logger.Ctx(ctx, s.log).Info().Str("product_id", created.ID).Msg("product created")
	return created, nil
}

// Update applies only the fields present in patch.
func (s *ProductService) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, domain.NewValidationError("Validation error: Must have a name.")
		}
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, domain.NewValidationError("Validation error: Price must be above zero.")
		}
		p.Price = domain.RoundToCent(*patch.Price)
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}

	if err := s.validate.Validate(p); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	updated, err := s.repo.Replace(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logger.Ctx(ctx, s.log).Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// Delete removes the product and returns it as it was before removal.
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logger.Ctx(ctx, s.log).Info().Str("product_id", id).Msg("product deleted")
	return p, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Ctx(ctx, s.log).Warn().Err(err).Msg("product cache invalidation failed")
	}
}
