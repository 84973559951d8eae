// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/clementech/checkout-be/internal/adapters/db"
	"github.com/clementech/checkout-be/internal/adapters/filestore"
	redis_a "github.com/clementech/checkout-be/internal/adapters/redis_adapter"
	"github.com/clementech/checkout-be/internal/core/ports"
	"github.com/clementech/checkout-be/internal/pkg/config"
	"github.com/clementech/checkout-be/internal/pkg/logger"
	"github.com/clementech/checkout-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("storage_backend", cfg.Storage.Backend),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	catalogRepo, billRepo, cleanup, err := buildRepositories(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	receipts := filestore.NewReceiptWriter(cfg.Storage.ReceiptsDir, slogger)

	var cache ports.CacheRepository
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		defer client.Close()
		cache = redis_a.NewCache(client, cfg.Redis.TTL, slogger)
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddr,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		},
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			Logger:          newAsynqLogger(slogger),
		},
	)

	mux := asynq.NewServeMux()

	receiptProcessor := workers.NewReceiptProcessor(billRepo, receipts, slogger)
	mux.HandleFunc(workers.TypeReceiptRender, receiptProcessor.ProcessReceipt)

	stockProcessor := workers.NewStockProcessor(catalogRepo, cache, slogger)
	mux.HandleFunc(workers.TypeLowStockReport, stockProcessor.ProcessLowStockReport)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func buildRepositories(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.CatalogRepository, ports.BillRepository, func(), error) {
	if cfg.Storage.Backend == config.BackendPostgres {
		dbConfig := &db.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
			// Fewer connections for worker
			MaxConnections:     10,
			MinConnections:     2,
			MaxConnLifetime:    cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
			HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
			ConnectTimeout:     cfg.Database.ConnectTimeout,
			EnableQueryLogging: cfg.Database.EnableQueryLogging,
		}

		database, err := db.NewDatabase(ctx, dbConfig, slogger)
		if err != nil {
			return nil, nil, nil, err
		}
		return db.NewCatalogRepository(database, slogger),
			db.NewBillRepository(database, slogger),
			database.Close, nil
	}

	catalogPath := filepath.Join(cfg.Storage.DataDir, cfg.Storage.CatalogFile)
	billsPath := filepath.Join(cfg.Storage.DataDir, cfg.Storage.BillsFile)
	return filestore.NewCatalogRepository(catalogPath, slogger),
		filestore.NewBillRepository(billsPath, slogger),
		func() {}, nil
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
