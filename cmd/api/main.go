// Package main is the entrypoint for the Pokevault API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pokevault/pokevault/internal/auth"
	"github.com/pokevault/pokevault/internal/cache"
	"github.com/pokevault/pokevault/internal/config"
	"github.com/pokevault/pokevault/internal/handler"
	"github.com/pokevault/pokevault/internal/metrics"
	"github.com/pokevault/pokevault/internal/middleware"
	"github.com/pokevault/pokevault/internal/pokeapi"
	"github.com/pokevault/pokevault/internal/repository"
	"github.com/pokevault/pokevault/internal/server"
	"github.com/pokevault/pokevault/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize auth primitives
	hasher, err := auth.NewHasher(auth.HasherParams{
		Time:     cfg.Argon2Time,
		MemoryKB: cfg.Argon2MemoryKB,
	})
	if err != nil {
		logger.Error("failed to configure password hasher", "error", err)
		os.Exit(1)
	}
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	pokeClient := pokeapi.New(cfg.PokeAPIBaseURL, cfg.PokeAPITimeout, metricsRecorder)

	accountService, err := service.NewAccountService(repo, hasher, tokens, metricsRecorder)
	if err != nil {
		logger.Error("failed to initialize account service", "error", err)
		os.Exit(1)
	}
	pokemonService := service.NewPokemonService(repo, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	accountHandler := handler.NewAccountHandler(accountService, logger)
	pokemonHandler := handler.NewPokemonHandler(pokemonService, pokeClient, cfg.PokeAPILimit, logger)

	// Setup router
	r := setupRouter(h, healthHandler, metricsHandler, accountHandler, pokemonHandler, tokens, cacheClient, metricsRecorder, cfg, logger)

	// Create and run server
	srv := server.New(server.Options{
		Handler:         r,
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	accountHandler *handler.AccountHandler,
	pokemonHandler *handler.PokemonHandler,
	tokens *auth.TokenIssuer,
	cacheClient *cache.Cache,
	recorder metrics.Recorder,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:  logger,
		Tokens:  tokens,
		Metrics: recorder,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitAuthEnabled,
		RPS:     cfg.RateLimitAuthRPS,
		Burst:   cfg.RateLimitAuthBurst,
	}

	// Credential endpoints, rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitAuth(rateLimitCfg))
		r.Post("/register", accountHandler.Register)
		r.Post("/login", accountHandler.Login)
	})

	// Protected routes (require a valid bearer token)
	r.Route("/protected", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		r.Route("/pokemon", func(r chi.Router) {
			r.Post("/", pokemonHandler.Create)
			r.Get("/", pokemonHandler.List)
			r.Put("/{id}", pokemonHandler.Update)
			r.Delete("/{id}", pokemonHandler.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
