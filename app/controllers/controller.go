package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/pkg/bind"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
	"github.com/shashiranjanraj/revoshop/pkg/response"
)

// CartView is the cart as the API returns it.
type CartView struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

func cartView(items []models.CartItem) CartView {
	if items == nil {
		items = []models.CartItem{}
	}
	return CartView{Items: items, Count: services.CartCount(items), Total: services.CartTotal(items)}
}

// idParam reads the positive integer {id} URL parameter. On failure it has
// already answered 422.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		response.ValidationError(w, map[string]string{"id": "The id must be a positive integer."})
		return 0, false
	}
	return id, true
}

// decode binds the JSON body into dest. On failure it has already answered.
func decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	errs, err := bind.JSON(r, dest)
	if err != nil {
		response.BadRequest(w, err)
		return false
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return false
	}
	return true
}

// fail maps service errors to HTTP statuses.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCatalogUnavailable):
		response.Error(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, services.ErrOutOfStock):
		response.Error(w, http.StatusConflict, "Out of stock")
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.ServerError(w)
	}
}
