package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// MarketID: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type     string `json:"type"`     // subscribe | unsubscribe | ping
	MarketID string `json:"marketId"` // requerido em subscribe/unsubscribe
}

// OddsUpdate representa uma atualização de lay odds enviada para clientes WebSocket
type OddsUpdate struct {
	MarketID string      `json:"marketId"`
	Payload  interface{} `json:"payload"`
}
