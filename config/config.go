// Package config resolves process settings from defaults, environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"recipeshare_backend/server"
)

// Config holds everything main needs to start the service.
type Config struct {
	Server *server.Config

	LogLevel slog.Level

	// SeedFile, when set, replaces the built-in sample recipes.
	SeedFile string

	// FirestoreProject, when set, seeds the store from a Firestore collection.
	FirestoreProject    string
	FirestoreCollection string

	// APIURL is the base URL the web pages use to reach the recipe API.
	APIURL string
}

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Server:              server.DefaultConfig(),
		LogLevel:            slog.LevelInfo,
		FirestoreCollection: "recipes",
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet("recipeshare", pflag.ContinueOnError)
	port := fs.IntP("port", "p", cfg.Server.Port, "HTTP port to listen on")
	address := fs.String("address", cfg.Server.Address, "interface address to bind")
	logLevel := fs.String("log-level", cfg.LogLevel.String(), "log level (debug, info, warn, error)")
	seedFile := fs.String("seed-file", cfg.SeedFile, "JSON file of recipes to start with (comments allowed)")
	project := fs.String("firestore-project", cfg.FirestoreProject, "Firestore project to seed recipes from")
	collection := fs.String("firestore-collection", cfg.FirestoreCollection, "Firestore collection to seed recipes from")
	apiURL := fs.String("api-url", cfg.APIURL, "base URL of the recipe API used by the web pages")
	rateLimit := fs.Float64("rate-limit", float64(cfg.Server.RateLimit), "API requests per second")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.Port = *port
	cfg.Server.Address = *address
	cfg.SeedFile = *seedFile
	cfg.FirestoreProject = *project
	cfg.FirestoreCollection = *collection
	cfg.APIURL = *apiURL
	cfg.Server.RateLimit = rate.Limit(*rateLimit)

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = fmt.Sprintf("http://localhost:%d/api", cfg.Server.Port)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	if v := getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		c.Server.RateLimit = rate.Limit(limit)
	}

	// Allow matching the shutdown timeout to an orchestrator's grace period
	if v := getenv("SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS %q", v)
		}
		c.Server.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if v := getenv("RECIPES_SEED_FILE"); v != "" {
		c.SeedFile = v
	}
	if v := getenv("FIRESTORE_PROJECT"); v != "" {
		c.FirestoreProject = v
	}
	if v := getenv("FIRESTORE_COLLECTION"); v != "" {
		c.FirestoreCollection = v
	}
	if v := getenv("RECIPES_API_URL"); v != "" {
		c.APIURL = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Server.Port)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.Server.RateLimit)
	}
	if c.SeedFile != "" && c.FirestoreProject != "" {
		return fmt.Errorf("--seed-file and --firestore-project are mutually exclusive")
	}
	if c.FirestoreProject != "" && c.FirestoreCollection == "" {
		return fmt.Errorf("firestore collection is required when a project is set")
	}
	return nil
}
