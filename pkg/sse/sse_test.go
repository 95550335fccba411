package sse_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/sse"
	"github.com/shashiranjanraj/revoshop/pkg/ws"
)

func TestFollowStreamsOnlyItsRoom(t *testing.T) {
	n := kv.NewNotifier()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sse.Follow(w, r, n, "revoshop:alice")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// The handler subscribes after the headers are flushed, so keep
	// publishing until the first frame arrives.
	done := make(chan struct{})
	defer close(done)
	go func() {
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				n.Publish(kv.Change{Namespace: "revoshop:bob", Key: "revoshop_cart"})
				n.Publish(kv.Change{Namespace: "revoshop:alice", Key: "revoshop_auth", Removed: true})
			}
		}
	}()

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: storage", lines.Text())
	require.True(t, lines.Scan())

	var ev ws.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines.Text(), "data: ")), &ev))
	assert.Equal(t, "revoshop_auth", ev.Key)
	assert.True(t, ev.Removed)
}

func TestNewRejectsWritersWithoutFlush(t *testing.T) {
	w := struct{ http.ResponseWriter }{httptest.NewRecorder()}
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, sse.New(w, r))
}
