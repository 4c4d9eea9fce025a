package dto

// SubmitBetResponse confirma o enfileiramento de uma aposta pra avaliação.
type SubmitBetResponse struct {
	BetID  string `json:"betId"`
	Status string `json:"status"`
}

// BetStatusResponse é o estado corrente de uma aposta submetida.
type BetStatusResponse struct {
	BetID      string   `json:"betId"`
	Bookmaker  string   `json:"bookmaker"`
	Sport      string   `json:"sport"`
	Bet        string   `json:"bet"`
	Odds       float64  `json:"odds"`
	Status     string   `json:"status"`
	LayProduct *float64 `json:"layProduct,omitempty"`
	Line       string   `json:"line,omitempty"`
}

// Valuebet é uma aposta avaliada como valorosa (VALUE ou 2PC).
type Valuebet struct {
	BetID       string  `json:"betId"`
	Status      string  `json:"status"`
	Line        string  `json:"line"`
	LayProduct  float64 `json:"layProduct"`
	EvaluatedAt string  `json:"evaluatedAt"`
}
