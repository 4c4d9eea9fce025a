package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/cache"
	httpapi "github.com/vbetlab/valuebet-pipeline/internal/odds-service/http"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/producer"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/repo"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-service/ws"
	sharedcache "github.com/vbetlab/valuebet-pipeline/internal/shared/cache"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/config"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/db"
	sharedkafka "github.com/vbetlab/valuebet-pipeline/internal/shared/kafka"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/logger"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/metrics"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/alias"
	vbrepo "github.com/vbetlab/valuebet-pipeline/internal/valuebet/repo"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	betWriter := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSubmitted)
	defer betWriter.Close()

	api := &httpapi.API{
		Log:      log,
		ReadRepo: &repo.ReadRepo{DB: pg},
		Bets:     vbrepo.NewPostgres(pg),
		Cache:    cache.New(redisClient),
		Publ:     producer.NewKafkaPublisher(betWriter),
		Registry: alias.NewRepo(pg),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Hub WebSocket alimentado pelo Redis Pub/Sub do odds-processor
	hub := ws.NewHub(func(r *http.Request) bool { return true }) // origem liberada no POC
	ws.StartRedisSubscriber(ctx, redisClient, hub, cfg.RedisPubSubChannel)

	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.HandleFunc("/ws", hub.HandleWS)

	metrics.StartServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}()

	log.Info("odds-service listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
	log.Info("odds-service stopped")
}
