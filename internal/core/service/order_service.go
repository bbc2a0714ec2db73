package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
	"github.com/sirpyerre/webshop-api/internal/pkg/validation"
	"github.com/sirpyerre/webshop-api/pkg/logger"
)

// OrderService places and reads orders.
//
// By default the submitted product snapshot is stored as sent. With
// verifyProducts set, every line is re-read from the catalogue and the
// snapshot is taken from the live product instead.
type OrderService struct {
	orders         ports.OrderRepository
	products       ports.ProductRepository
	validate       *validation.Validator
	verifyProducts bool
	log            zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	v *validation.Validator,
	verifyProducts bool,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:         orders,
		products:       products,
		validate:       v,
		verifyProducts: verifyProducts,
		log:            log,
	}
}

// Create stores a new order for customer. Role checks belong to the caller.
func (s *OrderService) Create(ctx context.Context, customer *domain.User, items []ports.OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	order := &domain.Order{
		CustomerID: customer.ID,
		Items:      make([]domain.OrderItem, 0, len(items)),
	}
	for i, in := range items {
		if in.Quantity != math.Trunc(in.Quantity) {
			return nil, domain.NewValidationError(
				fmt.Sprintf("products[%d].quantity: Quantity needs to be an integer (was %v)", i, in.Quantity))
		}

		snapshot := domain.ProductSnapshot{
			ID:          in.ProductID,
			Name:        in.Name,
			Price:       in.Price,
			Description: in.Description,
		}
		if s.verifyProducts {
			live, err := s.products.FindByID(ctx, in.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrProductNotFound) {
					return nil, domain.NewValidationError(fmt.Sprintf("products[%d].product: unknown product %q", i, in.ProductID))
				}
				return nil, fmt.Errorf("create order: %w", err)
			}
			snapshot = domain.ProductSnapshot{
				ID:          live.ID,
				Name:        live.Name,
				Price:       live.Price,
				Description: live.Description,
			}
		}

		order.Items = append(order.Items, domain.OrderItem{
			Product:  snapshot,
			Quantity: int(in.Quantity),
		})
	}

	if err := s.validate.Validate(order); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		logger.Ctx(ctx, s.log).Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	logger.Ctx(ctx, s.log).Info().Str("order_id", created.ID).Str("customer_id", customer.ID).Int("items", len(created.Items)).Msg("order created")
	return created, nil
}

// Get returns the order when viewer is an admin or owns it. Any other viewer
// gets domain.ErrOrderNotFound, exactly as for a missing order.
func (s *OrderService) Get(ctx context.Context, viewer *domain.User, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Role.IsAdmin() && !order.OwnedBy(viewer.ID) {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListFor returns every order for admins and the viewer's own orders otherwise.
func (s *OrderService) ListFor(ctx context.Context, viewer *domain.User) ([]*domain.Order, error) {
	filter := ports.OrderFilter{}
	if !viewer.Role.IsAdmin() {
		filter.CustomerID = viewer.ID
	}
	return s.orders.List(ctx, filter)
}
