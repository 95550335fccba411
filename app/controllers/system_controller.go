package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
	"github.com/shashiranjanraj/revoshop/pkg/response"
	"github.com/shashiranjanraj/revoshop/pkg/sse"
	"github.com/shashiranjanraj/revoshop/pkg/ws"
)

// SystemController serves the health probe and the change feeds.
type SystemController struct {
	store    kv.Store
	hub      *ws.Hub
	notifier *kv.Notifier
}

func NewSystemController(store kv.Store, hub *ws.Hub, notifier *kv.Notifier) *SystemController {
	return &SystemController{store: store, hub: hub, notifier: notifier}
}

// Health answers 200 while the key-value store pings, else 503.
func (c *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := kv.Ping(ctx, c.store); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}

// Events upgrades to a WebSocket that receives this client's storage changes.
func (c *SystemController) Events(w http.ResponseWriter, r *http.Request) {
	room := kv.NamespaceOf(middleware.ClientStore(r.Context()))
	ws.Upgrade(w, r, c.hub, room)
}

// EventStream is Events over Server-Sent Events.
func (c *SystemController) EventStream(w http.ResponseWriter, r *http.Request) {
	room := kv.NamespaceOf(middleware.ClientStore(r.Context()))
	sse.Follow(w, r, c.notifier, room)
}
