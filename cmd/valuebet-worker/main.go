package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	sharedcache "github.com/vbetlab/valuebet-pipeline/internal/shared/cache"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/config"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/db"
	sharedkafka "github.com/vbetlab/valuebet-pipeline/internal/shared/kafka"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/logger"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/metrics"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/alias"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/betparse"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/consumer"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/evaluator"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/odds"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/repo"
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

	// Cadastro de aliases carregado na subida; mudar o cadastro pede restart
	ctxLoad, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := alias.NewRepo(pg).LoadStore(ctxLoad)
	cancelLoad()
	if err != nil {
		log.Fatal("load alias store", zap.Error(err))
	}
	log.Info("alias store loaded",
		zap.Int("teams", len(store.Teams)),
		zap.Int("markets", len(store.Markets)),
		zap.Int("players", len(store.Players)),
	)

	eval := &evaluator.Evaluator{
		Log:    log,
		Source: odds.NewSource(pg, redisClient),
		Store:  store,
		Parser: betparse.NewParser(store, cfg.FuzzyThreshold),
	}

	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetSubmitted, "valuebet")
	defer reader.Close()

	foundWriter := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicValuebetFound)
	defer foundWriter.Close()

	dlqWriter := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSubmittedDLQ)
	defer dlqWriter.Close()

	// Métricas Prometheus da avaliação
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "valuebet_messages_consumed_total", Help: "mensagens consumidas"})
	evaluated := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "valuebet_evaluations_total", Help: "avaliações por status"}, []string{"status"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "valuebet_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, evaluated, errorsBy)

	worker := &consumer.Worker{
		Log:         log,
		Read:        reader,
		Eval:        eval,
		Repo:        repo.NewPostgres(pg),
		Found:       foundWriter,
		DLQ:         dlqWriter,
		OnConsumed:  func() { consumed.Inc() },
		OnEvaluated: func(status string) { evaluated.WithLabelValues(status).Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	metrics.StartServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("valuebet-worker started")
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("worker stopped with error", zap.Error(err))
	}
	log.Info("valuebet-worker stopped")
}
