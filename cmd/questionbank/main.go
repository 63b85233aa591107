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

	"github.com/kailas-cloud/questionbank/internal/backend"
	"github.com/kailas-cloud/questionbank/internal/config"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	logpkg "github.com/kailas-cloud/questionbank/internal/logger"
	"github.com/kailas-cloud/questionbank/internal/metrics"
	chiTransport "github.com/kailas-cloud/questionbank/internal/transport/chi"
	duplicateuc "github.com/kailas-cloud/questionbank/internal/usecase/duplicate"
	healthuc "github.com/kailas-cloud/questionbank/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/questionbank/internal/usecase/indexing"
	"github.com/kailas-cloud/questionbank/internal/version"
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

	logger.Info("Starting questionbank API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	store, err := backend.Open(ctx, cfg.Database, cfg.Storage.KeyPrefix)
	if err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Connected to database")

	metrics.RegisterDuplicateMetrics()

	indexSvc := indexinguc.New(store.Repo).WithMaxBatchSize(cfg.Indexing.MaxBatchSize)
	if _, err := indexSvc.EnsureIndex(ctx); err != nil {
		logger.Fatal("Candidate index unavailable", zap.Error(err))
	}

	candidates := duplicateuc.NewInstrumentedRepository(store.Repo, store.Driver, logger)
	dupSvc := duplicateuc.New(candidates, policyFromConfig(cfg.Duplicates))
	healthSvc := healthuc.New(store, store.Repo)

	server := chiTransport.NewServer(dupSvc, indexSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	server.Mount(r, chiTransport.RouterConfig{
		APIKeys:           cfg.Auth.APIKeys,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})

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

// policyFromConfig maps the YAML duplicates section onto the detection policy.
// Config defaults are already applied.
func policyFromConfig(c config.DuplicatesConfig) duplicateuc.Policy {
	thresholds := make(map[question.Type]int, len(c.Thresholds))
	for name, v := range c.Thresholds {
		thresholds[question.Type(name)] = v
	}
	return duplicateuc.Policy{
		CandidateLimit: c.CandidateLimit,
		ResultLimit:    c.ResultLimit,
		Weights: duplicateuc.Weights{
			Title:       c.Weights.Title,
			Description: c.Weights.Description,
			Bonus:       c.Weights.Bonus,
		},
		Thresholds:       thresholds,
		DefaultThreshold: c.DefaultThreshold,
		Bands: duplicateuc.Bands{
			NearlyIdentical: c.Bands.NearlyIdentical,
			VerySimilar:     c.Bands.VerySimilar,
			Similar:         c.Bands.Similar,
			Related:         c.Bands.Related,
		},
	}
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
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Status:  http.StatusInternalServerError,
						Code:    chiTransport.ErrorCodeInternalError,
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
				zap.String("organization_id", r.Header.Get(chiTransport.OrganizationHeader)),
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
