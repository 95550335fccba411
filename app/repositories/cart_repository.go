package repositories

import (
	"context"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
	"github.com/shashiranjanraj/revoshop/pkg/metrics"
)

// CartKey holds the JSON array of cart lines.
const CartKey = "revoshop_cart"

// CartRepository persists one client's cart. Every mutator writes the whole
// resulting cart and returns it.
type CartRepository struct {
	store kv.Store
}

func NewCartRepository(store kv.Store) *CartRepository {
	return &CartRepository{store: store}
}

// Cart is the strict read: malformed data surfaces as *ParseError. Lines
// with a non-positive qty are dropped.
func (r *CartRepository) Cart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := load(ctx, r.store, CartKey, &items); err != nil {
		return []models.CartItem{}, err
	}

	out := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.Qty >= 1 {
			out = append(out, it)
		}
	}
	return out, nil
}

// Items returns the cart, or an empty cart when the stored one is unreadable.
func (r *CartRepository) Items(ctx context.Context) []models.CartItem {
	items, err := r.Cart(ctx)
	if err != nil {
		logger.WithCtx(ctx).Warn("cart unreadable, using empty cart", "error", err)
	}
	return items
}

// Add puts qty units of p in the cart, summing with an existing line.
func (r *CartRepository) Add(ctx context.Context, p models.Product, qty int) ([]models.CartItem, error) {
	return r.add(ctx, p, qty, nil)
}

// AddCapped is Add with the resulting line qty limited to maxQty. The cap is
// whatever the caller believes the stock to be; nothing here enforces it.
func (r *CartRepository) AddCapped(ctx context.Context, p models.Product, qty, maxQty int) ([]models.CartItem, error) {
	return r.add(ctx, p, qty, &maxQty)
}

func (r *CartRepository) add(ctx context.Context, p models.Product, qty int, maxQty *int) ([]models.CartItem, error) {
	items := r.Items(ctx)

	idx := indexOf(items, p.ID)
	if idx >= 0 {
		next := capQty(items[idx].Qty+qty, maxQty)
		if next <= 0 {
			items = append(items[:idx], items[idx+1:]...)
		} else {
			items[idx].Qty = next
		}
	} else {
		initial := capQty(qty, maxQty)
		if initial <= 0 {
			return items, nil
		}
		items = append(items, models.LineOf(p, initial))
	}

	return r.write(ctx, "add", items)
}

// ChangeQty moves the line for id by delta. A result of zero or less removes
// the line. An unknown id returns the cart untouched without writing.
func (r *CartRepository) ChangeQty(ctx context.Context, id, delta int) ([]models.CartItem, error) {
	items := r.Items(ctx)

	idx := indexOf(items, id)
	if idx < 0 {
		return items, nil
	}

	next := items[idx].Qty + delta
	if next <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Qty = next
	}

	return r.write(ctx, "change", items)
}

// Remove deletes the line for id.
func (r *CartRepository) Remove(ctx context.Context, id int) ([]models.CartItem, error) {
	items := r.Items(ctx)

	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}

	return r.write(ctx, "remove", kept)
}

// Clear empties the cart.
func (r *CartRepository) Clear(ctx context.Context) ([]models.CartItem, error) {
	return r.write(ctx, "clear", []models.CartItem{})
}

func (r *CartRepository) write(ctx context.Context, op string, items []models.CartItem) ([]models.CartItem, error) {
	if err := save(ctx, r.store, CartKey, items); err != nil {
		return nil, err
	}
	metrics.CartMutations.WithLabelValues(op).Inc()
	return items, nil
}

func indexOf(items []models.CartItem, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func capQty(qty int, maxQty *int) int {
	if maxQty != nil && qty > *maxQty {
		return *maxQty
	}
	return qty
}
