package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

func ptr[T any](v T) *T { return &v }

func newStorefront(t *testing.T) *services.Storefront {
	t.Helper()
	return services.NewStorefront(services.NewCatalog(fakeCatalog(t).URL), 10)
}

func TestProductsGetDefaultStockAndOverrides(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	sf := newStorefront(t)

	_, err := repositories.NewOverrideRepository(store).Update(ctx, 2, models.ProductOverride{Price: ptr(5.0), Qty: ptr(1)})
	require.NoError(t, err)

	products, err := sf.Products(ctx, store)
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, 10, products[0].StockQty(-1))
	assert.Equal(t, 5.0, products[1].Price)
	assert.Equal(t, 1, products[1].StockQty(-1))

	p, err := sf.Product(ctx, store, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Price)

	listing, err := sf.Listing(ctx, store, services.CategoryClothing, services.SortPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, ids(listing))
}

func TestOverridesAreScopedToTheirStore(t *testing.T) {
	ctx := context.Background()
	base := kv.NewMemory()
	alice := kv.Namespace(base, "revoshop:alice")
	bob := kv.Namespace(base, "revoshop:bob")
	sf := newStorefront(t)

	_, err := repositories.NewOverrideRepository(alice).Update(ctx, 1, models.ProductOverride{Price: ptr(1.0)})
	require.NoError(t, err)

	p, err := sf.Product(ctx, bob, 1)
	require.NoError(t, err)
	assert.Equal(t, 109.95, p.Price)
}

func TestAddToCartRespectsRoom(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	sf := newStorefront(t)

	_, err := repositories.NewOverrideRepository(store).Update(ctx, 4, models.ProductOverride{Qty: ptr(5)})
	require.NoError(t, err)

	items, err := sf.AddToCart(ctx, store, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, items[0].Qty)

	items, err = sf.AddToCart(ctx, store, 4, 9)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Qty, "clamped to remaining room")

	_, err = sf.AddToCart(ctx, store, 4, 1)
	assert.ErrorIs(t, err, services.ErrOutOfStock)
}

func TestAddToCartClampsToOne(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	items, err := newStorefront(t).AddToCart(ctx, store, 3, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Qty)
	assert.Equal(t, 168.0, items[0].Price)
}

func TestAddToCartZeroStock(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	_, err := repositories.NewOverrideRepository(store).Update(ctx, 3, models.ProductOverride{Qty: ptr(0)})
	require.NoError(t, err)

	_, err = newStorefront(t).AddToCart(ctx, store, 3, 1)
	assert.ErrorIs(t, err, services.ErrOutOfStock)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	_, err := newStorefront(t).AddToCart(context.Background(), kv.NewMemory(), 999, 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestFallbackProductsCanBeAddedToCart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	sf := services.NewStorefront(services.NewCatalog(downCatalog(t).URL, services.WithFallback(true)), 10)

	products, err := sf.Products(ctx, store)
	require.NoError(t, err)
	require.Len(t, products, 3)

	p, err := sf.Product(ctx, store, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0].Title, p.Title)

	items, err := sf.AddToCart(ctx, store, products[0].ID, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, products[0].ID, items[0].ID)
	assert.Equal(t, 2, items[0].Qty)
}
