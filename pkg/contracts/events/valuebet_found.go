package events

import "time"

// Evento publicado no tópico "valuebet_found" quando a avaliação fecha em VALUE ou 2PC
type ValuebetFound struct {
	BetID       string    `json:"bet_id"`
	Bookmaker   string    `json:"bookmaker"`
	Sport       string    `json:"sport"`
	Bet         string    `json:"bet"`
	Odds        float64   `json:"odds"`
	LayProduct  float64   `json:"lay_product"` // produto dos lay prices encontrados
	Status      string    `json:"status"`      // "VALUE" ou "2PC"
	Line        string    `json:"line"`        // "bookmaker - Sport - bet - odds / produto"
	EvaluatedAt time.Time `json:"evaluated_at"`
}
