package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/pkg/collection"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

// ErrOutOfStock means the cart already holds every unit in stock.
var ErrOutOfStock = errors.New("out of stock")

// ProductSource is the read side of the catalog.
type ProductSource interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int) (models.Product, error)
}

// Storefront combines the catalog with one client's overrides and cart.
// The store passed to each call is that client's namespace.
type Storefront struct {
	catalog      ProductSource
	defaultStock int
}

func NewStorefront(catalog ProductSource, defaultStock int) *Storefront {
	return &Storefront{catalog: catalog, defaultStock: defaultStock}
}

// DefaultStock is the qty assumed for products nobody has overridden.
func (s *Storefront) DefaultStock() int { return s.defaultStock }

// Products returns the catalog with default stock and overrides applied.
func (s *Storefront) Products(ctx context.Context, store kv.Store) ([]models.Product, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	products = models.WithDefaultQty(products, s.defaultStock)
	return repositories.NewOverrideRepository(store).Apply(ctx, products), nil
}

// Listing is Products narrowed to a category tab and ordered by price.
func (s *Storefront) Listing(ctx context.Context, store kv.Store, c Category, o SortOrder) ([]models.Product, error) {
	products, err := s.Products(ctx, store)
	if err != nil {
		return nil, err
	}
	return SortByPrice(FilterByCategory(products, c), o), nil
}

// Product returns one product with default stock and its override applied.
func (s *Storefront) Product(ctx context.Context, store kv.Store, id int) (models.Product, error) {
	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	p = models.WithDefaultQty([]models.Product{p}, s.defaultStock)[0]
	return repositories.NewOverrideRepository(store).Apply(ctx, []models.Product{p})[0], nil
}

// Stock is the override qty for id, or the default stock.
func (s *Storefront) Stock(ctx context.Context, store kv.Store, id int) int {
	return repositories.NewOverrideRepository(store).StockQty(ctx, id, s.defaultStock)
}

// AddToCart adds qty units of product id, clamped to [1, room] where room is
// stock minus what the cart already holds.
func (s *Storefront) AddToCart(ctx context.Context, store kv.Store, id, qty int) ([]models.CartItem, error) {
	p, err := s.Product(ctx, store, id)
	if err != nil {
		return nil, err
	}

	carts := repositories.NewCartRepository(store)
	stock := s.Stock(ctx, store, id)

	inCart := 0
	if line, ok := collection.First(carts.Items(ctx), func(it models.CartItem) bool { return it.ID == id }); ok {
		inCart = line.Qty
	}

	room := stock - inCart
	if room <= 0 {
		return nil, ErrOutOfStock
	}

	if qty < 1 {
		qty = 1
	}
	if qty > room {
		qty = room
	}
	return carts.AddCapped(ctx, p, qty, stock)
}
