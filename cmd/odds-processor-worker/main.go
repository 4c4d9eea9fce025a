package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"

	"github.com/vbetlab/valuebet-pipeline/internal/odds-processor/cache"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-processor/consumer"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-processor/pubsub"
	"github.com/vbetlab/valuebet-pipeline/internal/odds-processor/repository"
	sharedcache "github.com/vbetlab/valuebet-pipeline/internal/shared/cache"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/config"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/db"
	sharedkafka "github.com/vbetlab/valuebet-pipeline/internal/shared/kafka"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/logger"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
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

	// Cache Redis e repositório Postgres dos lay odds
	ttl := 60 * time.Second
	rcache := cache.NewRedisCache(redisClient, ttl)
	repo := repository.NewPostgresRepo(pg)

	// Consumer Kafka (consumer group odds-processor)
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicLayOddsScraped, "odds-processor")
	defer reader.Close()

	// Métricas Prometheus para monitoramento do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "lay_proc_messages_consumed_total", Help: "mensagens consumidas"})
	cached := prometheus.NewCounter(prometheus.CounterOpts{Name: "lay_proc_cache_sets_total", Help: "sets no cache"})
	persist := prometheus.NewCounter(prometheus.CounterOpts{Name: "lay_proc_db_writes_total", Help: "escritas no banco (upsert+history)"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "lay_proc_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, cached, persist, errorsBy)

	// Broadcaster para publicar atualizações no Redis Pub/Sub (usado pelo odds-service/ws)
	broadcaster := pubsub.NewRedisBroadcaster(redisClient)

	proc := &consumer.Processor{
		Log:        log,
		Reader:     reader,
		Repo:       repo,
		Cache:      rcache,
		OnConsumed: func() { consumed.Inc() },
		OnCached:   func() { cached.Inc() },
		OnPersist:  func() { persist.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },

		// Após persistir, envia update pro WebSocket via Redis Pub/Sub
		OnAfterPersist: func(rec events.LayOddsRecord) {
			msg := pubsub.WSUpdate{MarketID: rec.MarketID, Payload: rec}
			b, _ := json.Marshal(msg)

			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := broadcaster.Publish(ctx, cfg.RedisPubSubChannel, b); err != nil {
				log.Warn("ws broadcast publish failed", zap.Error(err))
			}
		},
	}

	// Servidor HTTP de métricas e health (valida Postgres e Redis)
	metrics.StartServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("odds-processor started")
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("odds-processor stopped")
}
