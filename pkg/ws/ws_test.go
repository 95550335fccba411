package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/ws"
)

func dial(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?room=" + room
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	return conn
}

func TestChangesReachOnlyTheOwningRoom(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	notifier := kv.NewNotifier()
	detach := hub.Attach(notifier)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub, r.URL.Query().Get("room"))
	}))

	tab1 := dial(t, srv, "revoshop:alice")
	tab2 := dial(t, srv, "revoshop:alice")
	other := dial(t, srv, "revoshop:bob")

	require.Eventually(t, func() bool {
		return hub.ClientCount("revoshop:alice") == 2 && hub.ClientCount("revoshop:bob") == 1
	}, 2*time.Second, 10*time.Millisecond)

	store := kv.Observe(kv.Namespace(kv.NewMemory(), "revoshop:alice"), notifier)
	require.NoError(t, store.Set(ctx, "revoshop_cart", "[]"))

	for _, conn := range []*websocket.Conn{tab1, tab2} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var ev ws.Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, "storage", ev.Type)
		assert.Equal(t, "revoshop_cart", ev.Key)
		assert.False(t, ev.Removed)
	}

	require.NoError(t, other.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "bob must not see alice's change")

	tab1.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("revoshop:alice") == 1 }, 2*time.Second, 10*time.Millisecond)

	detach()
	cancel()
	<-stopped

	tab2.Close()
	other.Close()
	srv.Close()
}

func TestPublishWithoutNamespaceIsIgnored(t *testing.T) {
	hub := ws.NewHub()
	assert.NotPanics(t, func() {
		hub.Publish(kv.Change{Key: "revoshop_cart"})
	})
	assert.Equal(t, 0, hub.ClientCount(""))
}
