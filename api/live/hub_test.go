package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiveServer(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), hub)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	t.Cleanup(hub.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/live"
	return hub, url
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Fail(t, "client count never reached expectation")
}

func TestHubBroadcast(t *testing.T) {
	hub, url := newLiveServer(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	hub.Broadcast(Event{Type: "state", Payload: map[string]string{"state": "running"}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, "state", event.Type)
	payload, ok := event.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "running", payload["state"])
}

func TestHubMultipleClients(t *testing.T) {
	hub, url := newLiveServer(t)

	first := dial(t, url)
	second := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Broadcast(Event{Type: "error", Payload: map[string]string{"message": "queue full"}})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var event Event
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, "error", event.Type)
	}
}

func TestHubConcurrentBroadcasts(t *testing.T) {
	hub, url := newLiveServer(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	// Worker results and control-plane state changes broadcast from
	// separate goroutines; every frame must arrive intact.
	const writers = 4
	const perWriter = 10

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast(Event{Type: "transcription", Payload: map[string]int{"writer": n}})
			}
		}(i)
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for i := 0; i < writers*perWriter; i++ {
		var event Event
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, "transcription", event.Type)
	}

	wg.Wait()
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHubRemovesDisconnectedClient(t *testing.T) {
	hub, url := newLiveServer(t)

	conn := dial(t, url)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	// Broadcasting into an empty hub must not block or panic.
	hub.Broadcast(Event{Type: "state", Payload: map[string]string{"state": "stopped"}})
}

func TestHubRejectsPlainHTTP(t *testing.T) {
	_, url := newLiveServer(t)

	httpURL := "http" + strings.TrimPrefix(url, "ws")
	resp, err := http.Get(httpURL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
