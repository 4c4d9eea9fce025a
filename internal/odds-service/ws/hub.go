package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// client embrulha a conexão com um lock de escrita: o pong do read loop e o
// Broadcast do subscriber escrevem na mesma conexão, e gorilla/websocket não
// suporta escrita concorrente.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) writeText(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Hub gerencia conexões WebSocket e assinaturas de mercados
// subs: mapeia marketID para o conjunto de clientes inscritos
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// marketID -> set of clients
	subs map[string]map[*client]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[string]map[*client]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
// Permite subscribe/unsubscribe em mercados e responde a pings
// Cada cliente pode se inscrever em múltiplos marketIDs
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	cl := &client{conn: conn}

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			h.mu.Lock()
			if _, ok := h.subs[msg.MarketID]; !ok {
				h.subs[msg.MarketID] = make(map[*client]struct{})
			}
			h.subs[msg.MarketID][cl] = struct{}{}
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			if m, ok := h.subs[msg.MarketID]; ok {
				delete(m, cl)
				if len(m) == 0 {
					delete(h.subs, msg.MarketID)
				}
			}
			h.mu.Unlock()
		case "ping":
			_ = cl.writeJSON(map[string]string{"type": "pong"})
		}
	}
	// Remove o cliente de todas as assinaturas ao desconectar
	h.mu.Lock()
	for _, set := range h.subs {
		delete(set, cl)
	}
	h.mu.Unlock()
}

// Broadcast envia uma atualização de lay odds para todos os clientes inscritos no marketID correspondente
func (h *Hub) Broadcast(update OddsUpdate) {
	h.mu.RLock()
	set := h.subs[update.MarketID]
	clients := make([]*client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	if len(clients) == 0 {
		return
	}

	b, _ := json.Marshal(update)
	for _, c := range clients {
		_ = c.writeText(b)
	}
}
