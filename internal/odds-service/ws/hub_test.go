package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// awaitPong confirma que as mensagens anteriores do cliente já foram
// processadas pelo read loop do hub.
func awaitPong(t *testing.T, conn *websocket.Conn) {
	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "ping"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var pong map[string]string
	require.NoError(t, conn.ReadJSON(&pong))
	require.Equal(t, "pong", pong["type"])
}

func TestHubBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub(func(*http.Request) bool { return true })
	conn := dialHub(t, hub)

	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "subscribe", MarketID: "1.1"}))
	awaitPong(t, conn)

	hub.Broadcast(OddsUpdate{MarketID: "1.1", Payload: map[string]string{"selection": "Arsenal"}})

	var upd OddsUpdate
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&upd))
	require.Equal(t, "1.1", upd.MarketID)
}

func TestHubPongAndBroadcastConcurrently(t *testing.T) {
	// o pong sai do read loop e o broadcast do subscriber: as duas escritas
	// disputam a mesma conexão e precisam ser serializadas
	hub := NewHub(func(*http.Request) bool { return true })
	conn := dialHub(t, hub)

	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "subscribe", MarketID: "1.1"}))
	awaitPong(t, conn)

	const rounds = 50
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < rounds; i++ {
			hub.Broadcast(OddsUpdate{MarketID: "1.1", Payload: i})
		}
	}()
	for i := 0; i < rounds; i++ {
		require.NoError(t, conn.WriteJSON(ClientMsg{Type: "ping"}))
	}
	<-done

	// 50 pongs e 50 updates chegam íntegros, sem frame corrompido
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for i := 0; i < 2*rounds; i++ {
		_, _, err := conn.ReadMessage()
		require.NoError(t, err)
	}
}

func TestHubUnsubscribeStopsUpdates(t *testing.T) {
	hub := NewHub(func(*http.Request) bool { return true })
	conn := dialHub(t, hub)

	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "subscribe", MarketID: "1.1"}))
	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "unsubscribe", MarketID: "1.1"}))
	awaitPong(t, conn)

	hub.Broadcast(OddsUpdate{MarketID: "1.1", Payload: "ignored"})

	// só o pong do ping abaixo deve chegar
	awaitPong(t, conn)
}
