package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/order-cache-api/internal/config"
	"github.com/ariefcatur/order-cache-api/internal/httpx"
	kafkax "github.com/ariefcatur/order-cache-api/internal/kafka"
	"github.com/ariefcatur/order-cache-api/internal/logging"
	"github.com/ariefcatur/order-cache-api/internal/orders"
	"github.com/ariefcatur/order-cache-api/internal/postgres"
	"github.com/ariefcatur/order-cache-api/internal/redisx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", "order-cache-api")
		log.Fatal().Err(err).Msg("config")
	}
	logging.Setup(cfg.LogLevel, cfg.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	pool, err := postgres.Connect(ctx, cfg.OracleDSN, cfg.OracleUser, cfg.OraclePassword)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer pool.Close()
	durable := &postgres.OrderStore{DB: pool}
	if err := durable.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	// Redis
	rdb := redisx.New(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	defer rdb.Close()
	fast := &redisx.OrderStore{Redis: rdb}
	if err := fast.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}

	svc := &orders.Service{Cache: fast, DB: durable, Name: cfg.ServiceName}

	// Kafka producer, optional
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderWritten, 1024)
		prod.Start()
		svc.Events = prod
	}

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Orders: svc,
		Checks: map[string]httpx.Pinger{"redis": fast, "oracle": durable},
	}
	oh.Register(router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Bool("events", prod != nil).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}
