package repositories

import (
	"context"
	"strconv"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
)

// OverrideKey holds the JSON object product id -> ProductOverride.
const OverrideKey = "revoshop_product_overrides"

// OverrideRepository persists admin product overrides in one client's store.
type OverrideRepository struct {
	store kv.Store
}

func NewOverrideRepository(store kv.Store) *OverrideRepository {
	return &OverrideRepository{store: store}
}

// Overrides is the strict read: malformed data surfaces as *ParseError.
// Entries whose key is not a product id are dropped; the rest survive.
func (r *OverrideRepository) Overrides(ctx context.Context) (map[int]models.ProductOverride, error) {
	var raw map[string]models.ProductOverride
	if err := load(ctx, r.store, OverrideKey, &raw); err != nil {
		return map[int]models.ProductOverride{}, err
	}

	m := make(map[int]models.ProductOverride, len(raw))
	for key, o := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			logger.WithCtx(ctx).Warn("dropping override with bad product id", "key", key)
			continue
		}
		m[id] = o
	}
	return m, nil
}

// read never fails; overrides are best effort and must not block a listing.
func (r *OverrideRepository) read(ctx context.Context) map[int]models.ProductOverride {
	m, err := r.Overrides(ctx)
	if err != nil {
		logger.WithCtx(ctx).Warn("overrides unreadable, using none", "error", err)
	}
	return m
}

// Apply merges each product's override, if any, over the product.
func (r *OverrideRepository) Apply(ctx context.Context, products []models.Product) []models.Product {
	overrides := r.read(ctx)

	out := make([]models.Product, len(products))
	for i, p := range products {
		if o, ok := overrides[p.ID]; ok {
			p = o.ApplyTo(p)
		}
		out[i] = p
	}
	return out
}

// Get returns the stored override for id.
func (r *OverrideRepository) Get(ctx context.Context, id int) (models.ProductOverride, bool) {
	o, ok := r.read(ctx)[id]
	return o, ok
}

// Update merges patch into the override for id, creating it when absent, and
// returns the stored result. Fields patch leaves nil keep their prior value.
func (r *OverrideRepository) Update(ctx context.Context, id int, patch models.ProductOverride) (models.ProductOverride, error) {
	overrides := r.read(ctx)
	merged := overrides[id].Merge(patch)
	overrides[id] = merged

	if err := save(ctx, r.store, OverrideKey, overrides); err != nil {
		return models.ProductOverride{}, err
	}
	return merged, nil
}

// Delete drops the whole entry for id so the product falls back to source data.
func (r *OverrideRepository) Delete(ctx context.Context, id int) error {
	overrides := r.read(ctx)
	delete(overrides, id)
	return save(ctx, r.store, OverrideKey, overrides)
}

// ClearAll replaces the stored map with an empty one.
func (r *OverrideRepository) ClearAll(ctx context.Context) error {
	return save(ctx, r.store, OverrideKey, map[int]models.ProductOverride{})
}

// StockQty returns the overridden stock for id, or defaultQty.
func (r *OverrideRepository) StockQty(ctx context.Context, id, defaultQty int) int {
	if o, ok := r.Get(ctx, id); ok && o.Qty != nil {
		return *o.Qty
	}
	return defaultQty
}
