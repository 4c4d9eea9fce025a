package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/lay-scraper/fetch"
	"github.com/vbetlab/valuebet-pipeline/internal/lay-scraper/parse"
	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// Publisher é o destino dos registros raspados (Kafka em produção).
type Publisher interface {
	Publish(ctx context.Context, rec events.LayOddsRecord) error
}

// Scraper executa o ciclo fetch -> parse -> publish contra uma página de
// mercado. Sem retry interno: qualquer falha aborta o ciclo e o próximo tick
// recomeça do zero. Callbacks de métricas por estágio, como nos workers.
type Scraper struct {
	Log       *zap.Logger
	Fetcher   fetch.Fetcher
	Parser    *parse.PageParser
	Publisher Publisher

	URL      string
	Source   string
	Interval time.Duration // <= 0 roda uma única vez

	OnScraped func(n int)        // métricas: registros publicados no ciclo
	OnError   func(stage string) // métricas por estágio (fetch/parse/publish)

	Now func() time.Time // injetável pra teste; default time.Now
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Scraper) fail(stage string, err error) error {
	s.Log.Warn("scrape cycle aborted", zap.String("stage", stage), zap.Error(err))
	if s.OnError != nil {
		s.OnError(stage)
	}
	return err
}

// RunOnce executa um ciclo completo e retorna quantos registros publicou.
// Falha de fetch ou de parse não publica nada.
func (s *Scraper) RunOnce(ctx context.Context) (int, error) {
	markup, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return 0, s.fail("fetch", err)
	}

	records, err := s.Parser.Parse(markup, s.Source, s.now())
	if err != nil {
		return 0, s.fail("parse", err)
	}

	published := 0
	for _, rec := range records {
		if err := s.Publisher.Publish(ctx, rec); err != nil {
			return published, s.fail("publish", err)
		}
		published++
	}

	s.Log.Info("scrape cycle done",
		zap.String("url", s.URL),
		zap.Int("records", published),
	)
	if s.OnScraped != nil {
		s.OnScraped(published)
	}
	return published, nil
}

// Run dispara RunOnce imediatamente e depois a cada Interval, até o contexto
// ser cancelado. Com Interval <= 0 executa uma vez e retorna o erro do ciclo.
func (s *Scraper) Run(ctx context.Context) error {
	if s.Interval <= 0 {
		_, err := s.RunOnce(ctx)
		return err
	}

	if _, err := s.RunOnce(ctx); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Log.Info("context canceled, stopping scraper")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}
