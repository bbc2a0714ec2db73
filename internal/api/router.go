package api

import (
	"io/fs"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sirpyerre/webshop-api/docs"
	"github.com/sirpyerre/webshop-api/internal/api/handler"
	"github.com/sirpyerre/webshop-api/internal/api/metrics"
	"github.com/sirpyerre/webshop-api/internal/api/middleware"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
)

const metricsPath = "/metrics"

// RouterConfig carries everything NewRouter wires together. Mongo and Redis
// are optional and only feed the readiness probe.
type RouterConfig struct {
	Log       zerolog.Logger
	Handlers  Handlers
	Auth      ports.Authenticator
	Public    fs.FS
	BodyLimit string
	Mongo     *mongo.Database
	Redis     *redis.Client
	// Registry defaults to a fresh registry with Go and process collectors.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Health, metrics and docs have fixed routes; everything else goes through
// the Dispatcher.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}

	promMiddleware, err := echoprometheus.MiddlewareConfig{
		Namespace:  "webshop",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == metricsPath
		},
	}.ToMiddleware()
	if err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(cfg.Log))
	if limit := strings.TrimSpace(cfg.BodyLimit); limit != "" {
		e.Use(echomiddleware.BodyLimit(limit))
	}
	e.Use(promMiddleware)

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Everything else is dispatched by hand ---
	d := NewDispatcher(cfg.Handlers, cfg.Auth, cfg.Public)
	e.Any("/", d.Handle)
	e.Any("/*", d.Handle)

	return e, nil
}
