package kv

import "context"

// Namespaced prefixes every key with "<ns>:" so several clients can share one
// backend without seeing each other's entries.
type Namespaced struct {
	inner Store
	ns    string
}

// Namespace scopes s to ns.
func Namespace(s Store, ns string) *Namespaced {
	return &Namespaced{inner: s, ns: ns}
}

// Namespace returns the scope name.
func (n *Namespaced) Namespace() string { return n.ns }

func (n *Namespaced) key(k string) string { return n.ns + ":" + k }

func (n *Namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.inner.Get(ctx, n.key(key))
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.key(key), value)
}

func (n *Namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.key(key))
}

func (n *Namespaced) Ping(ctx context.Context) error { return Ping(ctx, n.inner) }

// NamespaceOf reports the namespace of s, or "" for an unscoped store.
func NamespaceOf(s Store) string {
	if n, ok := s.(interface{ Namespace() string }); ok {
		return n.Namespace()
	}
	return ""
}
