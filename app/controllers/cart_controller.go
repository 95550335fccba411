package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
	"github.com/shashiranjanraj/revoshop/pkg/response"
)

type CartController struct {
	storefront *services.Storefront
}

func NewCartController(sf *services.Storefront) *CartController {
	return &CartController{storefront: sf}
}

type addItemInput struct {
	ProductID int `json:"product_id" validate:"required,gte=1"`
	Qty       int `json:"qty"`
}

type changeQtyInput struct {
	Delta *int `json:"delta" validate:"required"`
}

type summaryInput struct {
	Coupon string `json:"coupon" validate:"max=64"`
}

func carts(r *http.Request) *repositories.CartRepository {
	return repositories.NewCartRepository(middleware.ClientStore(r.Context()))
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, cartView(carts(r).Items(r.Context())))
}

// Add puts a product in the cart, limited by the stock left after what the
// cart already holds. A missing qty adds one unit.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in addItemInput
	if !decode(w, r, &in) {
		return
	}

	items, err := c.storefront.AddToCart(r.Context(), middleware.ClientStore(r.Context()), in.ProductID, in.Qty)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cartView(items))
}

func (c *CartController) Change(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in changeQtyInput
	if !decode(w, r, &in) {
		return
	}

	items, err := carts(r).ChangeQty(r.Context(), id, *in.Delta)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cartView(items))
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	items, err := carts(r).Remove(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cartView(items))
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	items, err := carts(r).Clear(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cartView(items))
}

// Summary prices the current cart with an optional coupon.
func (c *CartController) Summary(w http.ResponseWriter, r *http.Request) {
	var in summaryInput
	if !decode(w, r, &in) {
		return
	}
	response.Success(w, services.Summarize(carts(r).Items(r.Context()), in.Coupon))
}
