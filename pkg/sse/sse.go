// Package sse streams storage change events as Server-Sent Events, for
// clients that cannot hold a WebSocket open.
//
// Usage:
//
//	router.Get("/api/events/sse", "events.sse", func(w http.ResponseWriter, r *http.Request) {
//	    room := kv.NamespaceOf(middleware.ClientStore(r.Context()))
//	    sse.Follow(w, r, notifier, room)
//	})
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/ws"
)

// Heartbeat is how often Follow writes a keepalive comment.
var Heartbeat = 25 * time.Second

const backlog = 32

// Stream represents an active SSE connection to one client.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	closed  bool
}

// New creates an SSE stream and sets the required headers.
// Returns nil if the ResponseWriter does not support flushing.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Stream{w: w, r: r, flusher: flusher}
}

// Send writes a named event with a JSON-encoded data payload.
func (s *Stream) Send(event string, data any) error {
	if s.IsClosed() {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		s.closed = true
		return err
	}
	s.flusher.Flush()
	return nil
}

// Comment writes an SSE comment line, used as a heartbeat.
func (s *Stream) Comment(msg string) {
	if s.IsClosed() {
		return
	}
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", msg); err != nil {
		s.closed = true
		return
	}
	s.flusher.Flush()
}

// IsClosed reports whether the client has disconnected.
func (s *Stream) IsClosed() bool {
	if s == nil {
		return true
	}
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
	return s.closed
}

// Follow streams every change published for room until the client goes
// away. Changes are dropped when the client falls more than a small backlog
// behind.
func Follow(w http.ResponseWriter, r *http.Request, n *kv.Notifier, room string) {
	stream := New(w, r)
	if stream == nil {
		return
	}

	changes := make(chan kv.Change, backlog)
	unsubscribe := n.Subscribe(func(c kv.Change) {
		if c.Namespace != room {
			return
		}
		select {
		case changes <- c:
		default:
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case c := <-changes:
			ev := ws.EventOf(c)
			if err := stream.Send(ev.Type, ev); err != nil {
				return
			}
		case <-ticker.C:
			stream.Comment("ping")
		}
		if stream.IsClosed() {
			return
		}
	}
}
