package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"silant-servicebook-web/config"
	"silant-servicebook-web/internal/client"
	"silant-servicebook-web/internal/db"
	"silant-servicebook-web/internal/session"
	"silant-servicebook-web/internal/web"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	logger := newLogger(cfg.Log)
	logger.WithField("path", configPath).Info("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize session store")
	}
	logger.WithField("store", cfg.Session.Store).Info("session store initialized")

	var (
		registry *prometheus.Registry
		opts     []client.Option
	)
	opts = append(opts, client.WithLogger(logger.WithField("component", "api-client")))
	if cfg.MetricsEnabled() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, client.WithMetrics(client.NewMetrics(registry)))
	}

	api, err := client.New(cfg.API, opts...)
	if err != nil {
		logger.WithError(err).Fatal("failed to create api client")
	}
	logger.WithField("base_url", cfg.API.BaseURL).Info("api client initialized")

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := web.NewHandler(api, sessions, cfg.Session, logger)
	router, err := web.NewRouter(handler, cfg.Server, web.RouterOptions{
		Registry:    registry,
		MetricsPath: cfg.Metrics.Path,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to build router")
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Infof("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server ListenAndServe")
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("HTTP server Shutdown")
	}

	logger.Info("server gracefully stopped")
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// newSessionStore builds the configured store. The database store also gets a background sweeper.
func newSessionStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (session.Store, error) {
	switch cfg.Session.Store {
	case "database":
		gormDB, err := db.Init(&cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		store := session.NewGormStore(gormDB, cfg.Session.TTL)
		go session.RunSweeper(ctx, store, cfg.Session.SweepInterval, logger.WithField("component", "session-sweeper"))
		return store, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		return session.NewRedisStore(rdb, cfg.Session.TTL), nil
	default:
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}
}
