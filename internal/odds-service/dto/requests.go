package dto

// SubmitBetRequest é o corpo de POST /v1/bets. Aceita a linha completa no
// formato "bookmaker - esporte - aposta - odds" ou os campos separados.
type SubmitBetRequest struct {
	Line      string  `json:"line,omitempty"`
	Bookmaker string  `json:"bookmaker,omitempty"`
	Sport     string  `json:"sport,omitempty"`
	Bet       string  `json:"bet,omitempty"`
	Odds      float64 `json:"odds,omitempty"`
}

// AddTeamRequest cadastra um time no registro de aliases (POST /v1/admin/teams).
type AddTeamRequest struct {
	Name    string   `json:"name"`
	Sport   string   `json:"sport,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// AddAliasRequest acrescenta um alias a um time já cadastrado.
type AddAliasRequest struct {
	Alias string `json:"alias"`
}

// AddMarketRequest cadastra um mercado no registro de aliases.
type AddMarketRequest struct {
	Name    string   `json:"name"`
	Sport   string   `json:"sport,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// AddPlayerRequest cadastra um jogador vinculado a um time.
type AddPlayerRequest struct {
	Name    string   `json:"name"`
	Sport   string   `json:"sport,omitempty"`
	Team    string   `json:"team,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}
