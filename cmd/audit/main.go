package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/order-cache-api/internal/audit"
	"github.com/ariefcatur/order-cache-api/internal/config"
	kafkax "github.com/ariefcatur/order-cache-api/internal/kafka"
	"github.com/ariefcatur/order-cache-api/internal/logging"
	"github.com/ariefcatur/order-cache-api/internal/orders"
	"github.com/ariefcatur/order-cache-api/internal/redisx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", "order-audit")
		log.Fatal().Err(err).Msg("config")
	}
	logger := logging.Setup(cfg.LogLevel, cfg.ServiceName+"-audit")
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal().Msg("KAFKA_BROKERS is required for the audit consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	defer rdb.Close()

	svc := &audit.Service{
		Redis:       rdb,
		Log:         logger,
		ServiceName: cfg.ServiceName + "-audit",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AuditGroup, orders.TopicOrderWritten, cfg.AuditWorkers)
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info().Str("group", cfg.AuditGroup).Str("topic", orders.TopicOrderWritten).Int("workers", cfg.AuditWorkers).Msg("audit consumer started")
		if err := cons.Start(ctx, svc.HandleOrderWritten); err != nil {
			log.Error().Err(err).Msg("consumer exit")
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down consumer")
	cancel()
	<-done
}
