package api

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/webshop-api/internal/api/handler"
	"github.com/sirpyerre/webshop-api/internal/api/middleware"
	"github.com/sirpyerre/webshop-api/internal/api/request"
	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
)

const (
	apiPrefix     = "/api"
	registerPath  = "/api/register"
	usersRoot     = "/api/users"
	productsRoot  = "/api/products"
	ordersRoot    = "/api/orders"
	indexFile     = "index.html"
	allowHeaders  = "Content-Type, Accept, Authorization"
	paramResource = "id"
)

// endpoint is one method of a resource with its guard chain already applied.
type endpoint struct {
	method string
	handle echo.HandlerFunc
}

// resource is the method table for a single path shape. Methods keep
// declaration order so the Allow header is stable.
type resource struct {
	endpoints []endpoint
}

func (r resource) allowed() []string {
	methods := make([]string, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		methods = append(methods, ep.method)
	}
	return methods
}

func (r resource) lookup(method string) (echo.HandlerFunc, bool) {
	for _, ep := range r.endpoints {
		if ep.method == method {
			return ep.handle, true
		}
	}
	return nil, false
}

// family is a resource root with its collection and item shapes.
type family struct {
	root       string
	collection resource
	item       resource
}

// Dispatcher routes every request by hand. It owns the method whitelist,
// content negotiation, authentication and role checks for /api paths and
// serves everything else from the public file system.
type Dispatcher struct {
	public   fs.FS
	register resource
	families []family
}

// Handlers groups the resource handlers the dispatcher delegates to.
type Handlers struct {
	Users    *handler.UserHandler
	Products *handler.ProductHandler
	Orders   *handler.OrderHandler
}

// NewDispatcher builds the method tables. public may be nil, in which case
// every static request answers 404.
func NewDispatcher(h Handlers, auth ports.Authenticator, public fs.FS) *Dispatcher {
	authenticated := func(next echo.HandlerFunc, guards ...echo.MiddlewareFunc) echo.HandlerFunc {
		for i := len(guards) - 1; i >= 0; i-- {
			next = guards[i](next)
		}
		return middleware.BasicAuth(auth)(next)
	}
	admin := middleware.RBAC(domain.RoleAdmin)
	customer := middleware.RBAC(domain.RoleCustomer)
	jsonBody := middleware.RequireJSONBody()

	return &Dispatcher{
		public: public,
		register: resource{endpoints: []endpoint{
			{http.MethodPost, jsonBody(h.Users.Register)},
		}},
		families: []family{
			{
				root: usersRoot,
				collection: resource{endpoints: []endpoint{
					{http.MethodGet, authenticated(h.Users.List, admin)},
				}},
				item: resource{endpoints: []endpoint{
					{http.MethodGet, authenticated(h.Users.Get, admin)},
					{http.MethodPut, authenticated(h.Users.UpdateRole, admin, jsonBody)},
					{http.MethodDelete, authenticated(h.Users.Delete, admin)},
				}},
			},
			{
				root: productsRoot,
				collection: resource{endpoints: []endpoint{
					{http.MethodGet, authenticated(h.Products.List)},
					{http.MethodPost, authenticated(h.Products.Create, admin, jsonBody)},
				}},
				item: resource{endpoints: []endpoint{
					{http.MethodGet, authenticated(h.Products.Get)},
					{http.MethodPut, authenticated(h.Products.Update, admin, jsonBody)},
					{http.MethodDelete, authenticated(h.Products.Delete, admin)},
				}},
			},
			{
				root: ordersRoot,
				collection: resource{endpoints: []endpoint{
					{http.MethodGet, authenticated(h.Orders.List)},
					{http.MethodPost, authenticated(h.Orders.Create, customer, jsonBody)},
				}},
				item: resource{endpoints: []endpoint{
					{http.MethodGet, authenticated(h.Orders.Get)},
				}},
			},
		},
	}
}

// Handle is the catch-all echo handler.
func (d *Dispatcher) Handle(c echo.Context) error {
	path := c.Request().URL.Path

	if !strings.HasPrefix(path, apiPrefix) {
		return d.serveStatic(c, path)
	}

	if path == registerPath {
		return d.serve(c, d.register)
	}

	for _, f := range d.families {
		if path == f.root {
			return d.serve(c, f.collection)
		}
		if id, ok := strings.CutPrefix(path, f.root+"/"); ok {
			c.SetParamNames(paramResource)
			c.SetParamValues(id)
			return d.serve(c, f.item)
		}
	}

	return ErrRouteNotFound
}

// serve applies the checks shared by every API resource, in order:
// OPTIONS, method whitelist, Accept. Authentication, roles and the body
// content type are part of each endpoint's chain.
func (d *Dispatcher) serve(c echo.Context, r resource) error {
	method := c.Request().Method

	if method == http.MethodOptions {
		return sendOptions(c, r.allowed())
	}

	next, ok := r.lookup(method)
	if !ok {
		return ErrMethodNotAllowed
	}

	if !request.AcceptsJSON(c.Request().Header) {
		return request.ErrNotAcceptable
	}

	return next(c)
}

func sendOptions(c echo.Context, methods []string) error {
	allow := strings.Join(methods, ",")
	h := c.Response().Header()
	h.Set(echo.HeaderAllow, allow)
	h.Set(echo.HeaderAccessControlAllowMethods, allow)
	h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
	h.Set(echo.HeaderAccessControlMaxAge, "86400")
	return c.NoContent(http.StatusNoContent)
}

func (d *Dispatcher) serveStatic(c echo.Context, path string) error {
	if c.Request().Method != http.MethodGet {
		return ErrMethodNotAllowed
	}
	if d.public == nil {
		return ErrRouteNotFound
	}

	name := strings.TrimPrefix(path, "/")
	if name == "" {
		name = indexFile
	}
	if !fs.ValidPath(name) {
		return ErrRouteNotFound
	}

	err := echo.StaticFileHandler(name, d.public)(c)
	if errors.Is(err, echo.ErrNotFound) {
		return ErrRouteNotFound
	}
	return err
}
