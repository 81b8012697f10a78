package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"

	"recipeshare_backend/client"
	"recipeshare_backend/config"
	"recipeshare_backend/handlers"
	"recipeshare_backend/logging"
	"recipeshare_backend/models"
	"recipeshare_backend/server"
	"recipeshare_backend/service"
	"recipeshare_backend/store"
	"recipeshare_backend/web"
)

const name = "recipeshare"

// overridden during build with ldflags
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Getenv)
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLogger(name, version, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(ctx, cfg)
	if err != nil {
		return err
	}

	recipes, err := store.NewMemory(seed)
	if err != nil {
		return err
	}
	slog.Info("recipe store ready", "recipes", recipes.Len())

	svc := service.New(recipes)
	pages := web.New(client.New(cfg.APIURL))

	srv := server.New(cfg.Server,
		server.WithRecipeCount(recipes.Len),
		server.WithAPI(func(r *mux.Router) {
			handlers.Register(r, svc, handlers.NewImageProxy())
		}),
		server.WithWeb(pages),
	)

	slog.Info("starting server",
		"address", srv.Addr(),
		"apiURL", cfg.APIURL,
		"rateLimit", float64(cfg.Server.RateLimit),
		"shutdownTimeout", cfg.Server.ShutdownTimeout.String(),
	)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// loadSeed picks the starting recipes: a seed file, a Firestore collection,
// or the built-in samples.
func loadSeed(ctx context.Context, cfg *config.Config) ([]models.Recipe, error) {
	switch {
	case cfg.SeedFile != "":
		slog.Info("seeding recipes from file", "path", cfg.SeedFile)
		return store.LoadFile(cfg.SeedFile)

	case cfg.FirestoreProject != "":
		slog.Info("seeding recipes from firestore",
			"project", cfg.FirestoreProject,
			"collection", cfg.FirestoreCollection)

		fc, err := firestore.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		defer fc.Close()

		return store.LoadFirestore(ctx, fc, cfg.FirestoreCollection)

	default:
		return store.Samples(), nil
	}
}
