package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/webshop-api/internal/api/request"
	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
)

type stubUserService struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	updateRoleFn func(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubUserService) Get(context.Context, string) (*domain.User, error) { return nil, nil }

func (s *stubUserService) UpdateRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error) {
	return s.updateRoleFn(ctx, actor, id, role)
}

func (s *stubUserService) Delete(context.Context, *domain.User, string) (*domain.User, error) {
	return nil, nil
}

type stubOrderService struct {
	createFn func(ctx context.Context, customer *domain.User, items []ports.OrderItemInput) (*domain.Order, error)
}

func (s *stubOrderService) Create(ctx context.Context, customer *domain.User, items []ports.OrderItemInput) (*domain.Order, error) {
	return s.createFn(ctx, customer, items)
}

func (s *stubOrderService) Get(context.Context, *domain.User, string) (*domain.Order, error) {
	return nil, nil
}

func (s *stubOrderService) ListFor(context.Context, *domain.User) ([]*domain.Order, error) {
	return nil, nil
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register_Success(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "alice" || in.Email != "alice@example.com" || in.Password != "0123456789" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, PasswordHash: "hash", Role: domain.RoleCustomer}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/register", `{"name":"alice","email":"alice@example.com","password":"0123456789"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "u1" || resp["role"] != "customer" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/register", "not-json")
	if err := h.Register(c); !errors.Is(err, request.ErrMalformedBody) {
		t.Fatalf("expected ErrMalformedBody, got %v", err)
	}
}

func TestUserHandler_Register_PropagatesDomainErrors(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailInUse
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/register", `{"email":"taken@example.com"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestUserHandler_UpdateRole_UsesPathIDAndActor(t *testing.T) {
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	stub := &stubUserService{
		updateRoleFn: func(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error) {
			if actor != admin || id != "u2" || role != "admin" {
				t.Fatalf("unexpected args: %+v %s %s", actor, id, role)
			}
			return &domain.User{ID: id, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodPut, "/api/users/u2", `{"role":"admin"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	SetCurrentUser(c, admin)

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateRole_RequiresCurrentUser(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newJSONContext(http.MethodPut, "/api/users/u2", `{"role":"admin"}`)
	if err := h.UpdateRole(c); !errors.Is(err, request.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestOrderHandler_Create_MapsItems(t *testing.T) {
	customer := &domain.User{ID: "c1", Role: domain.RoleCustomer}
	stub := &stubOrderService{
		createFn: func(ctx context.Context, u *domain.User, items []ports.OrderItemInput) (*domain.Order, error) {
			if u != customer || len(items) != 1 {
				t.Fatalf("unexpected args: %+v %+v", u, items)
			}
			want := ports.OrderItemInput{ProductID: "p1", Name: "Lamp", Price: 9.5, Description: "desk", Quantity: 2}
			if items[0] != want {
				t.Fatalf("unexpected item: %+v", items[0])
			}
			return &domain.Order{ID: "o1", CustomerID: u.ID, Items: []domain.OrderItem{{
				Product:  domain.ProductSnapshot{ID: "p1", Name: "Lamp", Price: 9.5, Description: "desk"},
				Quantity: 2,
			}}}, nil
		},
	}
	h := NewOrderHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/orders",
		`{"items":[{"product":{"_id":"p1","name":"Lamp","price":9.5,"description":"desk"},"quantity":2}]}`)
	SetCurrentUser(c, customer)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"customerId":"c1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
