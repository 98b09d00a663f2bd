package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/config"
	dbRedis "github.com/kailas-cloud/advsearch/internal/db/redis"
	"github.com/kailas-cloud/advsearch/internal/domain/namespace"
	logpkg "github.com/kailas-cloud/advsearch/internal/logger"
	"github.com/kailas-cloud/advsearch/internal/metrics"
	"github.com/kailas-cloud/advsearch/internal/repository/language"
	"github.com/kailas-cloud/advsearch/internal/repository/mimetype"
	"github.com/kailas-cloud/advsearch/internal/repository/namespaces"
	"github.com/kailas-cloud/advsearch/internal/repository/tooltip"
	"github.com/kailas-cloud/advsearch/internal/repository/userprefs"
	chiTransport "github.com/kailas-cloud/advsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
	hookuc "github.com/kailas-cloud/advsearch/internal/usecase/hook"
	"github.com/kailas-cloud/advsearch/internal/usecase/jsconfig"
	"github.com/kailas-cloud/advsearch/internal/usecase/scope"
	"github.com/kailas-cloud/advsearch/internal/version"
)

func main() {
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

	logger.Info("Starting advsearch hook server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("translate", cfg.Integrations.Translate),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		Standalone: cfg.Database.Standalone,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	if err := metrics.Register(nil); err != nil {
		logger.Fatal("Failed to register metrics", zap.Error(err))
	}

	hookSvc, err := buildHook(cfg, store)
	if err != nil {
		logger.Fatal("Failed to build hook", zap.Error(err))
	}
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(hookSvc, healthSvc, cfg.Search.ContentLanguage, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	logger.Info("Server stopped gracefully")
}

// buildHook wires the store-backed providers into the hook service.
func buildHook(cfg config.Config, store *dbRedis.Store) (*hookuc.Service, error) {
	defaults, err := namespace.NewSet(cfg.Search.DefaultNamespaceIDs...)
	if err != nil {
		return nil, fmt.Errorf("default namespaces: %w", err)
	}

	prefs := userprefs.New(store, cfg.Storage.KeyPrefix, defaults)
	asm := jsconfig.New(
		prefs,
		scope.New(prefs),
		cfg.Search,
		mimetype.New(cfg.Search.MimeOverrides),
		tooltip.New(cfg.Tooltips.FallbackLang, cfg.Tooltips.Messages),
		namespaces.New(cfg.Search.MainNamespaceLabel),
	)

	// Pass the catalog only when enabled: a typed nil *language.Catalog
	// wrapped in LanguageCatalog != nil.
	if cfg.Integrations.Translate {
		asm = asm.WithLanguages(language.New(cfg.Integrations.Languages))
	}

	return hookuc.New(asm), nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorResponseCodeInternalError,
						Message: "internal error",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
