// Command seed maintains the MongoDB database.
//
//	seed [-users file] [-products file] reset
//	seed clear-orders
//
// reset drops users, products and orders and loads the seed set (embedded
// defaults unless files are given). clear-orders deletes every order.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/webshop-api/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/webshop-api/internal/infrastructure/security"
	"github.com/sirpyerre/webshop-api/internal/pkg/config"
	"github.com/sirpyerre/webshop-api/internal/pkg/validation"
	"github.com/sirpyerre/webshop-api/internal/seed"
	"github.com/sirpyerre/webshop-api/pkg/logger"
)

func main() {
	usersPath := flag.String("users", "", "JSON file with seed users (default: embedded set)")
	productsPath := flag.String("products", "", "JSON file with seed products (default: embedded set)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] reset|clear-orders\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

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
		Service: "webshop-seed",
	})

	if err := run(ctx, cfg, log, flag.Arg(0), *usersPath, *productsPath); err != nil {
		log.Error().Err(err).Msg("seed failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, cmd, usersPath, productsPath string) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "webshop-seed",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	switch cmd {
	case "clear-orders":
		n, err := mongo.ClearOrders(ctx, db)
		if err != nil {
			return err
		}
		log.Info().Int64("deleted", n).Msg("orders cleared")
		return nil

	case "reset":
		data, err := seed.FromFiles(usersPath, productsPath)
		if err != nil {
			return err
		}
		if err := mongo.Reset(ctx, db); err != nil {
			return err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return err
		}

		loader := &seed.Loader{
			Users:    mongo.NewUserRepository(db),
			Products: mongo.NewProductRepository(db),
			Hasher:   security.NewBcryptHasher(cfg.Auth.BcryptCost),
			Validate: validation.New(),
			Log:      log,
		}
		res, err := loader.Load(ctx, data)
		if err != nil {
			return err
		}
		log.Info().Int("users", res.Users).Int("products", res.Products).Str("database", cfg.Mongo.Database).Msg("database reset")
		return nil

	default:
		return fmt.Errorf("unknown command %q (want reset or clear-orders)", cmd)
	}
}
