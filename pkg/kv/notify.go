package kv

import (
	"context"
	"sync"
	"time"
)

// Change describes one successful write to a store.
type Change struct {
	Namespace string    `json:"namespace"`
	Key       string    `json:"key"`
	Removed   bool      `json:"removed"`
	At        time.Time `json:"at"`
}

// Listener receives published changes.
type Listener func(Change)

// Notifier fans changes out to listeners synchronously, in the publishing
// goroutine. Listeners must not block.
type Notifier struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns a function that removes it.
func (n *Notifier) Subscribe(l Listener) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

// Publish delivers c to every current listener.
func (n *Notifier) Publish(c Change) {
	n.mu.RLock()
	ls := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		ls = append(ls, l)
	}
	n.mu.RUnlock()

	for _, l := range ls {
		l(c)
	}
}

// Observed publishes a Change after every successful Set or Remove.
type Observed struct {
	inner    Store
	notifier *Notifier
	ns       string
}

// Observe wraps s so writes are reported to n. The namespace of s, if any,
// is carried on each Change.
func Observe(s Store, n *Notifier) *Observed {
	return &Observed{inner: s, notifier: n, ns: NamespaceOf(s)}
}

func (o *Observed) Namespace() string { return o.ns }

func (o *Observed) Get(ctx context.Context, key string) (string, error) {
	return o.inner.Get(ctx, key)
}

func (o *Observed) Set(ctx context.Context, key, value string) error {
	if err := o.inner.Set(ctx, key, value); err != nil {
		return err
	}
	o.notifier.Publish(Change{Namespace: o.ns, Key: key, At: time.Now().UTC()})
	return nil
}

func (o *Observed) Remove(ctx context.Context, key string) error {
	if err := o.inner.Remove(ctx, key); err != nil {
		return err
	}
	o.notifier.Publish(Change{Namespace: o.ns, Key: key, Removed: true, At: time.Now().UTC()})
	return nil
}

func (o *Observed) Ping(ctx context.Context) error { return Ping(ctx, o.inner) }
