// Command eventlog tails the biztime change-event topic and logs every event.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/biztime/internal/biztime/config"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	groupID := flag.String("group", "biztime-eventlog", "Kafka consumer group id")
	flag.Parse()

	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is empty, nothing to consume")
	}

	consumer := events.NewConsumer(cfg.KafkaBrokers, *groupID, cfg.Topic, logger)
	defer consumer.Close()

	consumer.RegisterHandler(func(_ context.Context, event events.Event) error {
		logger.Info("event",
			zap.String("id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("key", event.Key),
			zap.Time("occurred_at", event.OccurredAt),
			zap.ByteString("payload", event.Payload),
		)
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Consuming events", zap.String("topic", cfg.Topic), zap.String("group", *groupID))
	consumer.Run(ctx)
	logger.Info("Event log stopped")
}
