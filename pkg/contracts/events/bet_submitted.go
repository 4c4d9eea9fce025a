package events

import "time"

// Evento publicado no tópico "bet_submitted" quando uma aposta chega pela API
type BetSubmitted struct {
	BetID       string    `json:"bet_id"`
	Bookmaker   string    `json:"bookmaker"`
	Sport       string    `json:"sport"` // pode vir vazio; inferido na avaliação
	Bet         string    `json:"bet"`   // texto livre: "ajax v lazio match odds"
	Odds        float64   `json:"odds"`  // odd oferecida pelo bookmaker
	SubmittedAt time.Time `json:"submitted_at"`
}
