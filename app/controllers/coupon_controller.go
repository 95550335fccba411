package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/pkg/response"
)

type CouponController struct{}

func NewCouponController() *CouponController {
	return &CouponController{}
}

type validateCouponInput struct {
	Code string `json:"code" validate:"required,max=64"`
}

// CouponCheck is the answer of coupons.validate.
type CouponCheck struct {
	Code         string  `json:"code"`
	Valid        bool    `json:"valid"`
	DiscountRate float64 `json:"discount_rate"`
}

func checkCoupon(code string) CouponCheck {
	check := CouponCheck{Code: services.NormalizeCoupon(code), Valid: services.IsValidCoupon(code)}
	if check.Valid {
		check.DiscountRate = services.DiscountRate
	}
	return check
}

func (c *CouponController) Generate(w http.ResponseWriter, r *http.Request) {
	response.Created(w, map[string]string{"code": services.GenerateUniqueCoupon()})
}

func (c *CouponController) Validate(w http.ResponseWriter, r *http.Request) {
	var in validateCouponInput
	if !decode(w, r, &in) {
		return
	}
	response.Success(w, checkCoupon(in.Code))
}
