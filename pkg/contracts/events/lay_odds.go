package events

import "time"

// Evento publicado no tópico "lay_odds_scraped"
// Uma mensagem por seleção raspada; imutável depois de gravado no histórico
type LayOddsRecord struct {
	RecordID   string    `json:"record_id"`
	MarketID   string    `json:"market_id"`
	MarketName string    `json:"market_name"` // "Match Odds", "Correct Score", ...
	EventName  string    `json:"event_name"`  // "Ajax v Lazio"
	Selection  string    `json:"selection"`
	LayOdds    float64   `json:"lay_odds"`
	LaySize    float64   `json:"lay_size"` // volume disponível no melhor lay
	ScrapedAt  time.Time `json:"scraped_at"`
	Source     string    `json:"source"` // "betfair", "exchange-simulator"
}
