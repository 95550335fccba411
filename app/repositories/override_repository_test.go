package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

func ptr[T any](v T) *T { return &v }

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Description: "Fits a laptop", Category: "men's clothing", Image: "a.png"},
		{ID: 2, Title: "Slim Fit T-Shirt", Price: 22.3, Description: "Cotton", Category: "men's clothing", Image: "b.png", Qty: ptr(4)},
		{ID: 3, Title: "Gold Ring", Price: 168, Description: "Ring", Category: "jewelery", Image: "c.png"},
	}
}

func TestApplyTouchesOnlyOverriddenFields(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOverrideRepository(kv.NewMemory())

	_, err := repo.Update(ctx, 2, models.ProductOverride{Price: ptr(19.99)})
	require.NoError(t, err)

	src := sampleProducts()
	got := repo.Apply(ctx, src)

	require.Len(t, got, 3)
	assert.Equal(t, src[0], got[0])
	assert.Equal(t, src[2], got[2])

	want := src[1]
	want.Price = 19.99
	assert.Equal(t, want, got[1])
}

func TestUpdateMergesWithPriorPatch(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOverrideRepository(kv.NewMemory())

	_, err := repo.Update(ctx, 1, models.ProductOverride{Price: ptr(50.0), Qty: ptr(2)})
	require.NoError(t, err)
	merged, err := repo.Update(ctx, 1, models.ProductOverride{Description: ptr("On sale")})
	require.NoError(t, err)

	assert.Equal(t, 50.0, *merged.Price)
	assert.Equal(t, 2, *merged.Qty)
	assert.Equal(t, "On sale", *merged.Description)

	p := repo.Apply(ctx, sampleProducts())[0]
	assert.Equal(t, 50.0, p.Price)
	assert.Equal(t, "On sale", p.Description)
	assert.Equal(t, 2, p.StockQty(10))
	assert.Equal(t, "Backpack", p.Title)
}

func TestDeleteRestoresSourceProduct(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOverrideRepository(kv.NewMemory())

	_, err := repo.Update(ctx, 3, models.ProductOverride{Price: ptr(1.0), Description: ptr("x"), Qty: ptr(0)})
	require.NoError(t, err)
	_, err = repo.Update(ctx, 1, models.ProductOverride{Price: ptr(2.0)})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 3))

	src := sampleProducts()
	got := repo.Apply(ctx, src)
	assert.Equal(t, src[2], got[2])
	assert.Equal(t, 2.0, got[0].Price, "other overrides survive")
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := repositories.NewOverrideRepository(store)

	_, err := repo.Update(ctx, 1, models.ProductOverride{Price: ptr(2.0)})
	require.NoError(t, err)
	require.NoError(t, repo.ClearAll(ctx))

	raw, err := store.Get(ctx, repositories.OverrideKey)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
	assert.Equal(t, sampleProducts(), repo.Apply(ctx, sampleProducts()))
}

func TestStoredLayout(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := repositories.NewOverrideRepository(store)

	_, err := repo.Update(ctx, 7, models.ProductOverride{Qty: ptr(3)})
	require.NoError(t, err)

	raw, err := store.Get(ctx, repositories.OverrideKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"7":{"qty":3}}`, raw)
}

func TestMalformedOverridesAreDefaulted(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, repositories.OverrideKey, "{broken"))
	repo := repositories.NewOverrideRepository(store)

	_, err := repo.Overrides(ctx)
	var perr *repositories.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, repositories.OverrideKey, perr.Key)

	assert.Equal(t, sampleProducts(), repo.Apply(ctx, sampleProducts()))

	_, err = repo.Update(ctx, 1, models.ProductOverride{Price: ptr(5.0)})
	require.NoError(t, err)
	all, err := repo.Overrides(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNullFieldsAreAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, repositories.OverrideKey, `{"1":{"price":null,"qty":4}}`))
	repo := repositories.NewOverrideRepository(store)

	p := repo.Apply(ctx, sampleProducts())[0]
	assert.Equal(t, 109.95, p.Price)
	assert.Equal(t, 4, p.StockQty(10))
}

func TestStockQty(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOverrideRepository(kv.NewMemory())

	assert.Equal(t, 10, repo.StockQty(ctx, 1, 10))

	_, err := repo.Update(ctx, 1, models.ProductOverride{Price: ptr(3.0)})
	require.NoError(t, err)
	assert.Equal(t, 10, repo.StockQty(ctx, 1, 10), "price-only override keeps default stock")

	_, err = repo.Update(ctx, 1, models.ProductOverride{Qty: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.StockQty(ctx, 1, 10))
}

func TestOverridesDropOnlyBadKeys(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, repositories.OverrideKey, `{"2":{"price":9.5},"abc":{"qty":1}}`))
	repo := repositories.NewOverrideRepository(store)

	all, err := repo.Overrides(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 9.5, *all[2].Price)

	got := repo.Apply(ctx, sampleProducts())
	assert.Equal(t, 9.5, got[1].Price)
}
