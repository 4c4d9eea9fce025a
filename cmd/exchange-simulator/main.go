package main

import (
	"html/template"
	"math/rand"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/shared/config"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/logger"
	"github.com/vbetlab/valuebet-pipeline/internal/shared/metrics"
)

// Catálogo fixo de mercados simulados. As odds base sofrem um jitter a cada
// requisição pra exercitar o pipeline de ponta a ponta.
type runner struct {
	Name    string
	BaseLay float64
}

type market struct {
	ID      string
	Name    string
	Event   string
	Runners []runner
}

var marketCatalog = []market{
	{
		ID: "1.234567890", Name: "MATCH_ODDS", Event: "Arsenal v Chelsea",
		Runners: []runner{
			{Name: "Arsenal", BaseLay: 2.10},
			{Name: "Chelsea", BaseLay: 3.60},
			{Name: "The Draw", BaseLay: 3.45},
		},
	},
	{
		ID: "1.234567891", Name: "CORRECT_SCORE", Event: "Arsenal v Chelsea",
		Runners: []runner{
			{Name: "1 - 0", BaseLay: 7.40},
			{Name: "2 - 0", BaseLay: 11.00},
			{Name: "2 - 1", BaseLay: 9.80},
			{Name: "0 - 0", BaseLay: 10.50},
			{Name: "1 - 1", BaseLay: 6.60},
		},
	},
	{
		ID: "1.234567892", Name: "OVER_UNDER_25", Event: "Arsenal v Chelsea",
		Runners: []runner{
			{Name: "Over 2.5 Goals", BaseLay: 1.92},
			{Name: "Under 2.5 Goals", BaseLay: 2.08},
		},
	},
	{
		ID: "1.234567893", Name: "MATCH_ODDS", Event: "Ajax v Lazio",
		Runners: []runner{
			{Name: "Ajax", BaseLay: 1.85},
			{Name: "Lazio", BaseLay: 4.20},
			{Name: "The Draw", BaseLay: 3.80},
		},
	},
}

// Métricas Prometheus de páginas servidas
var (
	pagesServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_sim_pages_served_total",
		Help: "Páginas de mercado servidas",
	}, []string{"market_id"})
	notFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exchange_sim_not_found_total",
		Help: "Requisições pra mercados inexistentes",
	})
)

var pageTmpl = template.Must(template.New("market").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Name}} - {{.Event}}</title></head>
<body>
<div class="market-view" data-market-id="{{.ID}}">
  <h1 class="market-view__name">{{.Name}}</h1>
  <div class="market-view__event">{{.Event}}</div>
  <table class="market-view__runners">
    <tbody>
    {{range .Runners}}
      <tr class="runner-line">
        <td class="runner-line__name">{{.Name}}</td>
        <td class="runner-line__back"><span class="price">{{printf "%.2f" .Back}}</span></td>
        <td class="runner-line__lay"><span class="price">{{printf "%.2f" .Lay}}</span> <span class="size">£{{printf "%.0f" .Size}}</span></td>
      </tr>
    {{end}}
    </tbody>
  </table>
</div>
</body>
</html>
`))

type renderRunner struct {
	Name string
	Back float64
	Lay  float64
	Size float64
}

type renderMarket struct {
	ID      string
	Name    string
	Event   string
	Runners []renderRunner
}

type server struct {
	log *zap.Logger
	mu  sync.Mutex
	rng *rand.Rand
}

// jitter aplica uma variação de até ±5% sobre a odd base
func (s *server) jitter(base float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return base * (0.95 + s.rng.Float64()*0.10)
}

func (s *server) marketPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var mk *market
	for i := range marketCatalog {
		if marketCatalog[i].ID == id {
			mk = &marketCatalog[i]
			break
		}
	}
	if mk == nil {
		notFound.Inc()
		http.Error(w, "market not found", http.StatusNotFound)
		return
	}

	out := renderMarket{ID: mk.ID, Name: mk.Name, Event: mk.Event}
	for _, rn := range mk.Runners {
		lay := s.jitter(rn.BaseLay)
		out.Runners = append(out.Runners, renderRunner{
			Name: rn.Name,
			Back: lay * 0.97,
			Lay:  lay,
			Size: 50 + s.jitter(300),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, out); err != nil {
		s.log.Warn("render market page failed", zap.Error(err))
		return
	}
	pagesServed.WithLabelValues(mk.ID).Inc()
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(pagesServed, notFound)

	srv := &server{log: log, rng: rand.New(rand.NewSource(42))}

	r := chi.NewRouter()
	r.Get("/markets/{id}", srv.marketPage)

	metrics.StartServer(cfg.MetricsPort, nil)

	addr := ":" + cfg.HTTPPort
	log.Info("exchange-simulator listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("http server failed", zap.Error(err))
	}
}
