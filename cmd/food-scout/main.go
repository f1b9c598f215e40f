package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/config"
	"github.com/battlebranding/food-scout/internal/db"
	dbRedis "github.com/battlebranding/food-scout/internal/db/redis"
	dbValkey "github.com/battlebranding/food-scout/internal/db/valkey"
	"github.com/battlebranding/food-scout/internal/domain"
	logpkg "github.com/battlebranding/food-scout/internal/logger"
	"github.com/battlebranding/food-scout/internal/metrics"
	foodrepo "github.com/battlebranding/food-scout/internal/repository/food"
	"github.com/battlebranding/food-scout/internal/repository/geocache"
	relationrepo "github.com/battlebranding/food-scout/internal/repository/relation"
	restaurantrepo "github.com/battlebranding/food-scout/internal/repository/restaurant"
	tasterepo "github.com/battlebranding/food-scout/internal/repository/taste"
	chiTransport "github.com/battlebranding/food-scout/internal/transport/chi"
	"github.com/battlebranding/food-scout/internal/transport/geocode"
	fooduc "github.com/battlebranding/food-scout/internal/usecase/food"
	healthuc "github.com/battlebranding/food-scout/internal/usecase/health"
	restaurantuc "github.com/battlebranding/food-scout/internal/usecase/restaurant"
	tasteuc "github.com/battlebranding/food-scout/internal/usecase/taste"
	"github.com/battlebranding/food-scout/internal/version"
)

func main() {
	// Load .env first so ${VAR} substitution in the config file sees it
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting food-scout API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	if cfg.Storage.KeyPrefix != "" {
		domain.KeyPrefix = cfg.Storage.KeyPrefix
	}

	// Create database store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "valkey":
		store, err = dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register domain metrics explicitly (no init())
	metrics.RegisterGeocodeMetrics()
	metrics.RegisterSearchMetrics()

	// Build geocoder chain. No API key disables
	// geocoding entirely: saves still work, coordinates stay unset.
	var geocoder domain.Geocoder
	var geocodeChecker healthuc.GeocoderChecker
	if cfg.Geocoding.APIKey != "" {
		client := geocode.NewClient(&geocode.Config{
			BaseURL: cfg.Geocoding.BaseURL,
			APIKey:  cfg.Geocoding.APIKey,
			Timeout: time.Duration(cfg.Geocoding.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		geocoder = geocache.New(
			client, store,
			time.Duration(cfg.Geocoding.CacheTTLHours)*time.Hour,
			metrics.GeocodeCacheTotal, logger,
		)
		geocodeChecker = client
		logger.Info("Geocoder created",
			zap.String("base_url", cfg.Geocoding.BaseURL),
			zap.Int("cache_ttl_hours", cfg.Geocoding.CacheTTLHours),
		)
	} else {
		logger.Warn("Geocoding disabled: no API key configured")
	}

	// Create repositories (domain-native, no adapters)
	restRepo := restaurantrepo.New(store)
	foodRepo := foodrepo.New(store)
	tasteRepo := tasterepo.New(store)
	relRepo := relationrepo.New(store, metrics.RelationAnomaliesTotal, logger)

	// Create use case services
	restSvc := restaurantuc.New(
		restRepo, relRepo, geocoder,
		time.Duration(cfg.Geocoding.TimeoutSec)*time.Second, logger,
	)
	foodSvc := fooduc.New(
		foodRepo, restRepo, relRepo, tasteRepo,
		cfg.Search.DefaultRadiusMiles, logger,
	)
	tasteSvc := tasteuc.New(tasteRepo)
	healthSvc := healthuc.New(store, geocodeChecker)

	// Create chi server
	server := chiTransport.NewServer(restSvc, foodSvc, tasteSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	// Drain background geocodes before the store closes
	restSvc.WaitGeocodes()

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
