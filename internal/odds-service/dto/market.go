package dto

// Market representa um mercado corrente disponível pra consulta.
type Market struct {
	MarketID   string `json:"marketId"`
	MarketName string `json:"marketName"`
	EventName  string `json:"eventName"`
}

// LayOdds é o lay corrente de uma seleção de um mercado.
type LayOdds struct {
	MarketID  string  `json:"marketId"`
	Selection string  `json:"selection"`
	LayOdds   float64 `json:"layOdds"`
	LaySize   float64 `json:"laySize"`
	ScrapedAt string  `json:"scrapedAt"`
}
