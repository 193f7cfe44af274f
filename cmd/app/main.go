package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "postsapi/internal/adapters/database"
	"postsapi/internal/adapters/httpapi"
	redisadapter "postsapi/internal/adapters/redis"
	"postsapi/internal/config"
	postapp "postsapi/internal/core/post/service"
	postPort "postsapi/internal/ports/post"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := config.InitLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.AppEnv == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := config.InitDB(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	var events postPort.EventPublisher
	if cfg.Redis.Enabled() {
		redisClient, err = config.InitRedis(ctx, cfg.Redis)
		if err != nil {
			closeResources(logger, db, nil)
			return err
		}
		events = redisadapter.NewPostEventsRedis(redisClient, cfg.Redis.Channel, logger)
		logger.Info("Publishing post events", zap.String("channel", cfg.Redis.Channel))
	}
	defer closeResources(logger, db, redisClient)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	postRepo := dbadapter.NewPostRepositoryDatabase(db, cfg.Database.AcquireTimeout)
	postSvc := postapp.NewPostService(postRepo, events, logger)
	r := httpapi.SetupRoutes(postSvc, logger, reg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// closeResources closes the Redis client and the database pool.
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if err := config.CloseDB(db); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
