package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rfq-intake/db/migrations"
	"rfq-intake/internal/assignment"
	"rfq-intake/internal/common/config"
	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/directory"
	"rfq-intake/internal/eligibility"
	"rfq-intake/internal/intake"
	"rfq-intake/internal/matching"
	"rfq-intake/internal/notification"
	"rfq-intake/internal/quota"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake server",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if err := migrations.Run(pg.DB); err != nil {
		zapLog.Fatal("migrations failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var rd *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rd, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rd.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rd.Close()
	zapLog.Info("Redis connected successfully")

	// --- AWS channels ---
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Notifications.AWS.Region))
	if err != nil {
		zapLog.Fatal("failed to load AWS config", zap.Error(err))
	}
	sesClient := ses.NewFromConfig(awsCfg)
	snsClient := sns.NewFromConfig(awsCfg)

	// --- Wire the pipeline ---
	store := intake.NewStore(pg, log)
	ledger := quota.NewLedger(log)
	gate := eligibility.NewGate(ledger, cfg.Intake.FreeMonthlyLimit, log)

	dir := directory.NewCachedDirectory(
		directory.NewPostgresDirectory(pg, log),
		rd,
		time.Duration(cfg.Intake.DirectoryCacheTTL)*time.Second,
		log,
	)
	matcher := matching.NewEngine(dir, cfg.Intake.MaxMatches, log)
	router := assignment.NewRouter(matcher, log)
	writer := assignment.NewWriter(pg, log)

	outbox := notification.NewOutbox(pg, log)
	dispatcher := notification.NewDispatcher(outbox, log)
	sender := notification.NewSender(cfg.Notifications, sesClient, snsClient, log)
	outboxWorker := notification.NewWorker(pg, sender, cfg.Notifications, log)

	service := intake.NewService(pg, store, gate, router, writer, dispatcher, log)
	handler := intake.NewHandler(service, log)

	// --- HTTP server ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.Server.WriteTimeout) * time.Second))

	r.Post("/api/rfqs", handler.CreateRFQ)
	r.Get("/api/health", intake.Health(pg, rd, log))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		outboxWorker.Run(workerCtx)
	}()

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	stopWorker()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		zapLog.Warn("outbox worker did not stop in time")
	}

	zapLog.Info("Intake server stopped")
}
