package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
	"github.com/shashiranjanraj/revoshop/pkg/response"
)

type ProductController struct {
	storefront *services.Storefront
}

func NewProductController(sf *services.Storefront) *ProductController {
	return &ProductController{storefront: sf}
}

// Index lists products, optionally narrowed by ?category= and ordered by ?sort=.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	errs := map[string]string{}

	category, ok := services.ParseCategory(q.Get("category"))
	if !ok {
		errs["category"] = "The category must be one of all, bags, clothing, electronics, jewelery."
	}
	order, ok := services.ParseSortOrder(q.Get("sort"))
	if !ok {
		errs["sort"] = "The sort must be one of default, price_asc, price_desc."
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	products, err := c.storefront.Listing(r.Context(), middleware.ClientStore(r.Context()), category, order)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	p, err := c.storefront.Product(r.Context(), middleware.ClientStore(r.Context()), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, p)
}

// Stock reports the sellable qty for a product id without calling the catalog.
func (c *ProductController) Stock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	qty := c.storefront.Stock(r.Context(), middleware.ClientStore(r.Context()), id)
	response.Success(w, map[string]int{"product_id": id, "qty": qty})
}
