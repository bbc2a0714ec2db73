// Command api serves the webshop HTTP API.
//
//	@title						Webshop API
//	@version					1.0
//	@description				Users, products and orders behind Basic authentication.
//	@BasePath					/
//	@securityDefinitions.basic	BasicAuth
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/sirpyerre/webshop-api/internal/api"
	"github.com/sirpyerre/webshop-api/internal/api/handler"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
	"github.com/sirpyerre/webshop-api/internal/core/service"
	"github.com/sirpyerre/webshop-api/internal/infrastructure/db/memory"
	"github.com/sirpyerre/webshop-api/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/webshop-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/webshop-api/internal/infrastructure/security"
	"github.com/sirpyerre/webshop-api/internal/pkg/config"
	"github.com/sirpyerre/webshop-api/internal/pkg/validation"
	"github.com/sirpyerre/webshop-api/internal/seed"
	"github.com/sirpyerre/webshop-api/pkg/logger"
)

const serviceName = "webshop-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("server shutdown complete")
}

// repositories is the store selected by STORAGE.
type repositories struct {
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
	mongo    *gomongo.Database
	close    func(context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	v := validation.New()

	repos, err := openStore(ctx, cfg, hasher, v, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := repos.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store disconnect failed")
		}
	}()

	var (
		cache ports.ProductCache
		rdb   *goredis.Client
	)
	if cfg.Redis.Enabled() {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, product cache disabled")
		} else {
			defer rdb.Close()
			cache = redis.NewProductCache(rdb, cfg.Redis.CacheTTL)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("product cache enabled")
		}
	}

	e, err := api.NewRouter(api.RouterConfig{
		Log: log,
		Handlers: api.Handlers{
			Users:    handler.NewUserHandler(service.NewUserService(repos.users, hasher, v, log)),
			Products: handler.NewProductHandler(service.NewProductService(repos.products, cache, v, log)),
			Orders: handler.NewOrderHandler(service.NewOrderService(
				repos.orders, repos.products, v, cfg.Orders.VerifyProducts, log)),
		},
		Auth:      service.NewAuthService(repos.users, hasher, log),
		Public:    os.DirFS(cfg.PublicDir),
		BodyLimit: cfg.BodyLimit,
		Mongo:     repos.mongo,
		Redis:     rdb,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(
	ctx context.Context,
	cfg *config.Config,
	hasher ports.PasswordHasher,
	v *validation.Validator,
	log zerolog.Logger,
) (*repositories, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()

		data, err := seed.Defaults()
		if err != nil {
			return nil, err
		}
		loader := &seed.Loader{Users: store.Users, Products: store.Products, Hasher: hasher, Validate: v, Log: log}
		if _, err := loader.Load(ctx, data); err != nil {
			return nil, err
		}

		log.Info().Msg("using in-memory store with default seed data")
		return &repositories{
			users:    store.Users,
			products: store.Products,
			orders:   store.Orders,
			close:    func(context.Context) error { return nil },
		}, nil

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}

		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &repositories{
			users:    mongo.NewUserRepository(db),
			products: mongo.NewProductRepository(db),
			orders:   mongo.NewOrderRepository(db),
			mongo:    db,
			close:    client.Disconnect,
		}, nil
	}
}
