package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/biztime/internal/biztime/config"
	"github.com/gartstein/biztime/internal/biztime/controller"
	"github.com/gartstein/biztime/internal/biztime/db"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/gartstein/biztime/internal/biztime/handlers"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	migrateOnly := flag.Bool("migrate-only", false, "apply the database schema and exit")
	flag.Parse()

	// a missing .env is fine; the environment and YAML still apply
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// the logger depends on the config, so fall back to a default one
		fallback, _ := zap.NewProduction()
		fallback.Fatal("failed to load config", zap.Error(err))
	}

	logger := initLogger(cfg)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := db.Connect(ctx, initDatabase(cfg), newBackOff(), logger.Named("db"))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	if cfg.AutoMigrate || *migrateOnly {
		if err := repo.Migrate(); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema is up to date", zap.String("dialect", repo.Dialect()))
	}
	if *migrateOnly {
		return
	}

	producer, closeProducer := initProducer(ctx, cfg, logger)
	defer closeProducer()

	companySvc := controller.NewCompanyService(repo, producer, logger)
	invoiceSvc := controller.NewInvoiceService(repo, producer, logger)
	industrySvc := controller.NewIndustryService(repo, producer, logger)

	router, err := handlers.NewRouter(handlers.Routes{
		Companies:  handlers.NewCompanyHandler(companySvc, logger),
		Invoices:   handlers.NewInvoiceHandler(invoiceSvc, logger),
		Industries: handlers.NewIndustryHandler(industrySvc, logger),
		Health:     handlers.NewHealthHandler(repo, logger),
	}, logger)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger)
	server.RegisterHTTPHandler(router)

	go server.WatchHealth(ctx, repo, cfg.HealthInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
	}

	server.Stop()
	logger.Info("Servers stopped properly")
}

// initLogger builds a production logger, or a development one when
// LOG_DEVELOPMENT is set.
func initLogger(cfg *config.Config) *zap.Logger {
	build := zap.NewProduction
	if cfg.LogDevelopment {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func initDatabase(cfg *config.Config) *db.Config {
	return &db.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Path:     cfg.DBPath,
		Debug:    cfg.DBDebug,
	}
}

func newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = time.Minute
	return bo
}

// initProducer connects to Kafka when brokers are configured. Without
// brokers, events are discarded.
func initProducer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (controller.EventProducer, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, change events are disabled")
		return events.Nop{}, func() {}
	}

	producer, err := events.NewProducer(ctx, cfg.KafkaBrokers, cfg.Topic, logger, newBackOff())
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	return producer, producer.Close
}
