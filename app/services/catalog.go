package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/config"
	"github.com/shashiranjanraj/revoshop/pkg/cache"
	"github.com/shashiranjanraj/revoshop/pkg/collection"
	"github.com/shashiranjanraj/revoshop/pkg/http"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
	"github.com/shashiranjanraj/revoshop/pkg/metrics"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrProductNotFound    = errors.New("product not found")
)

const fallbackImage = "https://placehold.co/600x400?text=Fallback+Product"

// FallbackProducts is served instead of an error when the catalog is down
// and fallback is enabled.
func FallbackProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Backpack (Fallback)", Price: 39.99, Description: "Backup product shown while the product API is blocked.", Category: "bags", Image: fallbackImage},
		{ID: 2, Title: "T-Shirt (Fallback)", Price: 19.99, Description: "Backup product shown while the product API is failing.", Category: "fashion", Image: fallbackImage},
		{ID: 3, Title: "Jacket (Fallback)", Price: 59.99, Description: "Backup product that keeps the store usable offline.", Category: "fashion", Image: fallbackImage},
	}
}

// Catalog reads products from a fakestoreapi-shaped HTTP API. Every call is
// a single attempt bounded by the timeout.
type Catalog struct {
	baseURL  string
	timeout  time.Duration
	fallback bool
	cache    *cache.Cache
	cacheTTL time.Duration
}

const productsCacheKey = "catalog:products"

type CatalogOption func(*Catalog)

func WithTimeout(d time.Duration) CatalogOption {
	return func(c *Catalog) { c.timeout = d }
}

// WithFallback makes Products answer FallbackProducts instead of failing.
func WithFallback(enabled bool) CatalogOption {
	return func(c *Catalog) { c.fallback = enabled }
}

// WithCache keeps a successful product list in c for ttl. Fallback
// products are never cached. A ttl of zero disables caching.
func WithCache(c *cache.Cache, ttl time.Duration) CatalogOption {
	return func(cat *Catalog) {
		if ttl > 0 {
			cat.cache, cat.cacheTTL = c, ttl
		}
	}
}

func NewCatalog(baseURL string, opts ...CatalogOption) *Catalog {
	c := &Catalog{baseURL: baseURL, timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCatalogFromConfig builds the catalog from CATALOG_* settings; opts
// are applied after them.
func NewCatalogFromConfig(opts ...CatalogOption) *Catalog {
	return NewCatalog(config.CatalogURL(), append([]CatalogOption{
		WithTimeout(config.CatalogTimeout()),
		WithFallback(config.CatalogFallback()),
	}, opts...)...)
}

// Products fetches the full list, from the cache when one is configured.
func (c *Catalog) Products(ctx context.Context) ([]models.Product, error) {
	var (
		products []models.Product
		hit      bool
		err      error
	)
	if c.cache != nil {
		products, hit, err = cache.Remember(ctx, c.cache, productsCacheKey, c.cacheTTL, func() ([]models.Product, error) {
			return c.products(ctx)
		})
	} else {
		products, err = c.products(ctx)
	}

	if err == nil {
		outcome := "ok"
		if hit {
			outcome = "cache"
		}
		metrics.CatalogFetches.WithLabelValues(outcome).Inc()
		return products, nil
	}

	if c.fallback {
		metrics.CatalogFetches.WithLabelValues("fallback").Inc()
		logger.WithCtx(ctx).Warn("catalog unavailable, serving fallback products", "error", err)
		return FallbackProducts(), nil
	}

	metrics.CatalogFetches.WithLabelValues("error").Inc()
	return nil, err
}

func (c *Catalog) products(ctx context.Context) ([]models.Product, error) {
	resp, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: GET /products: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	products := []models.Product{}
	if err := resp.JSON(&products); err != nil {
		return nil, fmt.Errorf("%w: GET /products: %v", ErrCatalogUnavailable, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Product fetches one product. The upstream answers a missing id with an
// empty 200 body, which is reported as ErrProductNotFound like a 404.
// With fallback enabled an unreachable upstream is answered from
// FallbackProducts, so every listed fallback product can be opened.
func (c *Catalog) Product(ctx context.Context, id int) (models.Product, error) {
	p, err := c.product(ctx, id)
	switch {
	case err == nil:
		metrics.CatalogFetches.WithLabelValues("ok").Inc()
		return p, nil
	case errors.Is(err, ErrProductNotFound):
		metrics.CatalogFetches.WithLabelValues("not_found").Inc()
		return models.Product{}, err
	case c.fallback:
		metrics.CatalogFetches.WithLabelValues("fallback").Inc()
		logger.WithCtx(ctx).Warn("catalog unavailable, serving fallback product", "id", id, "error", err)
		if fp, ok := collection.First(FallbackProducts(), func(it models.Product) bool { return it.ID == id }); ok {
			return fp, nil
		}
		return models.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	metrics.CatalogFetches.WithLabelValues("error").Inc()
	return models.Product{}, err
}

func (c *Catalog) product(ctx context.Context, id int) (models.Product, error) {
	path := "/products/" + strconv.Itoa(id)
	resp, err := c.get(ctx, path)
	if err != nil {
		return models.Product{}, err
	}

	switch {
	case resp.StatusCode == 404:
		return models.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	case !resp.OK():
		return models.Product{}, fmt.Errorf("%w: GET %s: status %d", ErrCatalogUnavailable, path, resp.StatusCode)
	}

	raw := bytes.TrimSpace(resp.Raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}

	var p models.Product
	if err := resp.JSON(&p); err != nil {
		return models.Product{}, fmt.Errorf("%w: GET %s: %v", ErrCatalogUnavailable, path, err)
	}
	return p, nil
}

func (c *Catalog) get(ctx context.Context, path string) (*http.Response, error) {
	resp, err := http.Get(c.baseURL + path).
		Timeout(c.timeout).
		WithContext(ctx).
		Send()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return resp, nil
}
