package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Itish41/asset-audit/controller"
	"github.com/Itish41/asset-audit/initializers"
	"github.com/Itish41/asset-audit/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("[CRITICAL] %s", err)
	}
}

// run owns every resource it opens, so all deferred cleanup has happened by
// the time main decides the exit code.
func run() error {
	if err := initializers.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load env: %w", err)
	}
	cfg, err := initializers.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := initializers.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializers.NewApp(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Close()

	if cfg.Database.AutoMigrate {
		if err := initializers.Migrate(app.DB, cfg.Database.MigrationsPath, logger); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      newRouter(cfg, app),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return serve(ctx, srv, logger)
}

// serve runs srv until ctx is cancelled or the listener fails, then shuts it
// down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newRouter(cfg *initializers.Config, app *initializers.App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(app.Logger))
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins...))

	// Global rate limiter for most routes
	router.Use(middleware.NewRateLimiter(cfg.Server.RateLimit).Limit())
	strict := middleware.NewRateLimiter(cfg.Server.StrictRateLimit).Limit()

	// Healthcheck endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})))

	controller.NewAuditController(app.Service, app.Logger).RegisterRoutes(router, strict)
	return router
}
