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
	"go.uber.org/zap"

	"github.com/kailas-cloud/photodex/internal/config"
	dbRedis "github.com/kailas-cloud/photodex/internal/db/redis"
	logpkg "github.com/kailas-cloud/photodex/internal/logger"
	"github.com/kailas-cloud/photodex/internal/metrics"
	photorepo "github.com/kailas-cloud/photodex/internal/repository/photo"
	chiTransport "github.com/kailas-cloud/photodex/internal/transport/chi"
	minioStorage "github.com/kailas-cloud/photodex/internal/transport/minio"
	natsNotify "github.com/kailas-cloud/photodex/internal/transport/nats"
	openaiAI "github.com/kailas-cloud/photodex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/photodex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/photodex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/photodex/internal/usecase/search"
	"github.com/kailas-cloud/photodex/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting photodex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("storage_endpoint", cfg.Storage.Endpoint),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
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

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	storage, err := minioStorage.New(minioStorage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Region:    cfg.Storage.Region,
	})
	if err != nil {
		logger.Fatal("Failed to create object storage client", zap.Error(err))
	}
	if err := storage.EnsureBucket(ctx, cfg.Storage.Bucket); err != nil {
		logger.Fatal("Failed to ensure bucket", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}

	aiCfg := openaiAI.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
	}
	detector := openaiAI.NewDetector(aiCfg, cfg.AI.DetectorModel, storage, logger)
	resolver := openaiAI.NewResolver(aiCfg, cfg.AI.ResolverModel, logger)
	logger.Info("Model clients created",
		zap.String("detector_model", cfg.AI.DetectorModel),
		zap.String("resolver_model", cfg.AI.ResolverModel),
	)

	// Orchestration signalling is optional; disabled without a NATS URL.
	var notifier ingestuc.Notifier
	if cfg.Notify.URL != "" {
		n, err := natsNotify.Connect(natsNotify.Config{
			URL:     cfg.Notify.URL,
			Subject: cfg.Notify.Subject,
			Name:    "photodex",
		}, logger)
		if err != nil {
			logger.Fatal("Failed to connect to nats", zap.Error(err))
		}
		defer func() { _ = n.Close() }()
		notifier = n
	}

	repo := photorepo.New(store)
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure search index", zap.Error(err))
	}

	ingestSvc := ingestuc.New(storage, detector, repo, notifier, logger).
		WithDetection(cfg.AI.MaxLabels, cfg.AI.MinConfidence)
	searchSvc := searchuc.New(resolver, repo, storage, logger).
		WithLimits(cfg.Search.MaxResults, time.Duration(cfg.Search.LinkTTLSec)*time.Second)
	healthSvc := healthuc.New(store, storage).WithPhotoCount(repo)

	server := chiTransport.NewServer(cfg.Storage.Bucket, ingestSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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
						"error": "internal error",
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

			// Canonical log line — one line per request
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
