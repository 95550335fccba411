package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
	"github.com/shashiranjanraj/revoshop/pkg/response"
)

// AdminController edits the client's product overrides.
type AdminController struct {
	storefront *services.Storefront
}

func NewAdminController(sf *services.Storefront) *AdminController {
	return &AdminController{storefront: sf}
}

type overrideInput struct {
	Price       *float64 `json:"price"       validate:"nullable,gte=0"`
	Description *string  `json:"description" validate:"nullable,max=2000"`
	Qty         *int     `json:"qty"         validate:"nullable,gte=0"`
}

func (in overrideInput) patch() models.ProductOverride {
	return models.ProductOverride{Price: in.Price, Description: in.Description, Qty: in.Qty}
}

func overrides(r *http.Request) *repositories.OverrideRepository {
	return repositories.NewOverrideRepository(middleware.ClientStore(r.Context()))
}

// Products returns the merged products next to the raw override map.
func (c *AdminController) Products(w http.ResponseWriter, r *http.Request) {
	store := middleware.ClientStore(r.Context())

	products, err := c.storefront.Products(r.Context(), store)
	if err != nil {
		fail(w, r, err)
		return
	}

	raw, err := overrides(r).Overrides(r.Context())
	if err != nil {
		raw = map[int]models.ProductOverride{}
	}
	response.Success(w, map[string]interface{}{
		"products":  products,
		"overrides": raw,
	})
}

// UpdateOverride merges the given fields into the product's override.
// Fields left out keep their previous override value.
func (c *AdminController) UpdateOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in overrideInput
	if !decode(w, r, &in) {
		return
	}

	patch := in.patch()
	if patch.IsEmpty() {
		response.ValidationError(w, map[string]string{"override": "Provide at least one of price, description, qty."})
		return
	}

	merged, err := overrides(r).Update(r.Context(), id, patch)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"product_id": id, "override": merged})
}

func (c *AdminController) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := overrides(r).Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]int{"product_id": id})
}

func (c *AdminController) ClearOverrides(w http.ResponseWriter, r *http.Request) {
	if err := overrides(r).ClearAll(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"overrides": map[int]models.ProductOverride{}})
}
