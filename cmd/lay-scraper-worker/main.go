package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/lay-scraper/fetch"
	"github.com/vbetlab/valuebet-pipeline/internal/lay-scraper/parse"
	"github.com/vbetlab/valuebet-pipeline/internal/lay-scraper/publisher"
	"github.com/vbetlab/valuebet-pipeline/internal/lay-scraper/runner"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/config"
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

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// Fetcher conforme o modo: HTTP simples ou browser headless (páginas com JS)
	var fetcher fetch.Fetcher
	switch cfg.FetchMode {
	case "browser":
		fetcher = fetch.NewBrowserFetcher(cfg.WaitSelector)
	default:
		fetcher = fetch.NewHTTPFetcher(15 * time.Second)
	}

	parser := parse.NewPageParser(parse.DefaultSelectors())

	brokers := strings.Split(cfg.KafkaBrokers, ",")
	pub := publisher.NewKafkaPublisher(brokers, cfg.TopicLayOddsScraped, log)
	defer pub.Close()

	// Métricas Prometheus do ciclo de scraping
	scraped := prometheus.NewCounter(prometheus.CounterOpts{Name: "lay_scraper_records_published_total", Help: "registros publicados"})
	cycles := prometheus.NewCounter(prometheus.CounterOpts{Name: "lay_scraper_cycles_total", Help: "ciclos executados"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "lay_scraper_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(scraped, cycles, errorsBy)

	scr := &runner.Scraper{
		Log:       log,
		Fetcher:   fetcher,
		Parser:    parser,
		Publisher: pub,
		URL:       cfg.ScrapeURL,
		Source:    cfg.ScrapeSource,
		Interval:  cfg.ScrapeInterval,
		OnScraped: func(n int) {
			cycles.Inc()
			scraped.Add(float64(n))
		},
		OnError: func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	metrics.StartServer(cfg.MetricsPort, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("lay-scraper started",
		zap.String("url", cfg.ScrapeURL),
		zap.String("mode", cfg.FetchMode),
		zap.Duration("interval", cfg.ScrapeInterval),
	)
	if err := scr.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("scraper stopped with error", zap.Error(err))
	}
	log.Info("lay-scraper stopped")
}
