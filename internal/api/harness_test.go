package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirpyerre/webshop-api/internal/api/handler"
	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
	"github.com/sirpyerre/webshop-api/internal/core/service"
	"github.com/sirpyerre/webshop-api/internal/infrastructure/db/memory"
	"github.com/sirpyerre/webshop-api/internal/infrastructure/security"
	"github.com/sirpyerre/webshop-api/internal/pkg/validation"
)

const testPassword = "correct-horse-battery"

// storeCalls counts every repository call made while serving a request.
type storeCalls struct{ n atomic.Int64 }

func (s *storeCalls) hit() { s.n.Add(1) }

type countingUsers struct {
	next  ports.UserRepository
	calls *storeCalls
}

func (r countingUsers) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.calls.hit()
	return r.next.Create(ctx, u)
}

func (r countingUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.calls.hit()
	return r.next.FindByID(ctx, id)
}

func (r countingUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.calls.hit()
	return r.next.FindByEmail(ctx, email)
}

func (r countingUsers) List(ctx context.Context) ([]*domain.User, error) {
	r.calls.hit()
	return r.next.List(ctx)
}

func (r countingUsers) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	r.calls.hit()
	return r.next.UpdateRole(ctx, id, role)
}

func (r countingUsers) Delete(ctx context.Context, id string) error {
	r.calls.hit()
	return r.next.Delete(ctx, id)
}

type countingProducts struct {
	next  ports.ProductRepository
	calls *storeCalls
}

func (r countingProducts) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	r.calls.hit()
	return r.next.Create(ctx, p)
}

func (r countingProducts) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.calls.hit()
	return r.next.FindByID(ctx, id)
}

func (r countingProducts) List(ctx context.Context) ([]*domain.Product, error) {
	r.calls.hit()
	return r.next.List(ctx)
}

func (r countingProducts) Replace(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	r.calls.hit()
	return r.next.Replace(ctx, p)
}

func (r countingProducts) Delete(ctx context.Context, id string) error {
	r.calls.hit()
	return r.next.Delete(ctx, id)
}

type countingOrders struct {
	next  ports.OrderRepository
	calls *storeCalls
}

func (r countingOrders) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	r.calls.hit()
	return r.next.Create(ctx, o)
}

func (r countingOrders) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.calls.hit()
	return r.next.FindByID(ctx, id)
}

func (r countingOrders) List(ctx context.Context, f ports.OrderFilter) ([]*domain.Order, error) {
	r.calls.hit()
	return r.next.List(ctx, f)
}

type harness struct {
	e     *echo.Echo
	store *memory.Store
	calls *storeCalls

	admin    *domain.User
	customer *domain.User
	other    *domain.User
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithLog(t, zerolog.Nop())
}

// newHarnessWithLog builds the harness with log shared by the router and
// every service.
func newHarnessWithLog(t *testing.T, log zerolog.Logger) *harness {
	t.Helper()

	store := memory.NewStore()
	calls := &storeCalls{}
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	v := validation.New()

	h := &harness{store: store, calls: calls}
	h.admin = seedUser(t, store, hasher, "Admin", "admin@example.com", domain.RoleAdmin)
	h.customer = seedUser(t, store, hasher, "Customer", "customer@example.com", domain.RoleCustomer)
	h.other = seedUser(t, store, hasher, "Other", "other@example.com", domain.RoleCustomer)

	users := countingUsers{next: store.Users, calls: calls}
	products := countingProducts{next: store.Products, calls: calls}
	orders := countingOrders{next: store.Orders, calls: calls}

	e, err := NewRouter(RouterConfig{
		Log: log,
		Handlers: Handlers{
			Users:    handler.NewUserHandler(service.NewUserService(users, hasher, v, log)),
			Products: handler.NewProductHandler(service.NewProductService(products, nil, v, log)),
			Orders:   handler.NewOrderHandler(service.NewOrderService(orders, products, v, false, log)),
		},
		Auth: service.NewAuthService(users, hasher, log),
		Public: fstest.MapFS{
			"index.html":    {Data: []byte("<h1>shop</h1>")},
			"js/cart.js":    {Data: []byte("// cart")},
			"css/style.css": {Data: []byte("body{}")},
		},
		BodyLimit: "1M",
	})
	require.NoError(t, err)

	h.e = e
	return h
}

func seedUser(t *testing.T, store *memory.Store, hasher ports.PasswordHasher, name, email string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)

	u, err := store.Users.Create(context.Background(), &domain.User{Name: name, Email: email, PasswordHash: hash, Role: role})
	require.NoError(t, err)
	return u
}

type reqOpt func(*http.Request)

func as(u *domain.User) reqOpt {
	return withBasic(u.Email, testPassword)
}

func withBasic(email, password string) reqOpt {
	return func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte(email+":"+password)))
	}
}

func withHeader(key, value string) reqOpt {
	return func(r *http.Request) {
		if value == "" {
			r.Header.Del(key)
			return
		}
		r.Header.Set(key, value)
	}
}

// do sends a request with Accept: application/json, and Content-Type:
// application/json whenever a body is given. Options run last.
func (h *harness) do(method, path, body string, opts ...reqOpt) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}
