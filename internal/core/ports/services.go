package ports

import (
	"context"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

// RegisterInput is the registration payload after transport decoding.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ProductInput carries a full product for creation.
type ProductInput struct {
	Name        string
	Price       float64
	Image       string
	Description string
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Image       *string
	Description *string
}

// OrderItemInput is one submitted order line. Quantity stays a float so that
// non-integer submissions can be reported as validation errors.
type OrderItemInput struct {
	ProductID   string
	Name        string
	Price       float64
	Description string
	Quantity    float64
}

// Authenticator resolves Basic credentials to a user.
type Authenticator interface {
	// Authenticate returns domain.ErrInvalidCredentials both for an unknown
	// email and for a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserService defines use-case operations for users.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
}

// ProductService defines use-case operations for the catalogue.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Create(ctx context.Context, customer *domain.User, items []OrderItemInput) (*domain.Order, error)
	// Get hides orders the viewer may not see behind domain.ErrOrderNotFound.
	Get(ctx context.Context, viewer *domain.User, id string) (*domain.Order, error)
	ListFor(ctx context.Context, viewer *domain.User) ([]*domain.Order, error)
}
