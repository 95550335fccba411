package kv

import (
	"context"
	"time"

	"github.com/shashiranjanraj/revoshop/pkg/metrics"
)

// Instrumented records the latency of every operation under driver.
type Instrumented struct {
	inner  Store
	driver string
}

func Instrument(s Store, driver string) *Instrumented {
	return &Instrumented{inner: s, driver: driver}
}

func (i *Instrumented) Get(ctx context.Context, key string) (string, error) {
	defer metrics.ObserveStoreOp(i.driver, "get", time.Now())
	return i.inner.Get(ctx, key)
}

func (i *Instrumented) Set(ctx context.Context, key, value string) error {
	defer metrics.ObserveStoreOp(i.driver, "set", time.Now())
	return i.inner.Set(ctx, key, value)
}

func (i *Instrumented) Remove(ctx context.Context, key string) error {
	defer metrics.ObserveStoreOp(i.driver, "remove", time.Now())
	return i.inner.Remove(ctx, key)
}

func (i *Instrumented) Ping(ctx context.Context) error { return Ping(ctx, i.inner) }

func (i *Instrumented) Close() error { return Close(i.inner) }

// Driver returns the driver label.
func (i *Instrumented) Driver() string { return i.driver }
