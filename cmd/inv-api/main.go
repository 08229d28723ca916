package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/http"
	"github.com/tuanvumaihuynh/inventory-service/internal/log"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/internal/session"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
	"github.com/tuanvumaihuynh/inventory-service/internal/telemetry"
	"github.com/tuanvumaihuynh/inventory-service/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running api application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Session  config.Session
		Redis    config.Redis
		Upload   config.Upload
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx, pgxPool, "up"); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
		logger.InfoContext(ctx, "database migrated")
	}

	dbClient := db.NewClient(pgxPool)

	var sessionStore session.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("error creating redis client: %w", err)
		}
		defer redisClient.Close()
		sessionStore = session.NewRedisStore(redisClient)
	case config.SessionStoreMemory:
		sessionStore = session.NewMemoryStore()
	default:
		sessionStore = session.NewPostgresStore(repository.NewSessionRepository(dbClient))
	}
	logger.InfoContext(ctx, "session store selected", slog.String("store", cfg.Session.Store.String()))

	var auditProducer mq.Producer
	if cfg.Kafka.Enabled() {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()
		auditProducer = kafkaProducer
	}

	productRepository := repository.NewProductRepository(dbClient)
	supplierRepository := repository.NewSupplierRepository(dbClient)
	userRepository := repository.NewUserRepository(dbClient)
	logEntryRepository := repository.NewLogEntryRepository(dbClient)

	imageStore := upload.NewImageStore(cfg.Upload, logger)
	auditLog := service.NewAuditLog(logEntryRepository, auditProducer, cfg.Kafka.AuditTopic, logger)

	deps := http.Dependencies{
		AuthSvc:     service.NewAuthService(userRepository, service.NewPasswordHasher(service.DefaultBcryptCost), imageStore),
		ProductSvc:  service.NewProductService(dbClient, productRepository, imageStore, auditLog),
		SupplierSvc: service.NewSupplierService(supplierRepository, auditLog),
		AuditLog:    auditLog,
		Sessions:    session.NewManager(cfg.Session, sessionStore),
		Health:      dbClient,
	}

	svc, err := http.New(cfg.HTTP, cfg.Upload, logger, deps)
	if err != nil {
		return fmt.Errorf("error creating http service: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Wait()

	return nil
}
