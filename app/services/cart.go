package services

import (
	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/pkg/collection"
)

const (
	FreeShippingThreshold = 100.0
	FlatShipping          = 9.99
)

// CartTotal is the sum of qty*price over items, unrounded.
func CartTotal(items []models.CartItem) float64 {
	return collection.Sum(items, func(it models.CartItem) float64 {
		return float64(it.Qty) * it.Price
	})
}

// CartCount is the number of units in items.
func CartCount(items []models.CartItem) int {
	return collection.Sum(items, func(it models.CartItem) int { return it.Qty })
}

// Shipping is free for an empty cart and from FreeShippingThreshold up.
func Shipping(items []models.CartItem, subtotal float64) float64 {
	if len(items) == 0 || subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShipping
}

// Summarize builds the checkout view. An empty coupon is ignored; any other
// value is validated and reported in CouponValid.
func Summarize(items []models.CartItem, coupon string) models.OrderSummary {
	if items == nil {
		items = []models.CartItem{}
	}

	subtotal := CartTotal(items)
	s := models.OrderSummary{
		Items:    items,
		Count:    CartCount(items),
		Subtotal: subtotal,
		Shipping: Shipping(items, subtotal),
	}

	if code := NormalizeCoupon(coupon); code != "" {
		s.Coupon = code
		s.CouponValid = IsValidCoupon(code)
		if s.CouponValid {
			s.Discount = subtotal * DiscountRate
		}
	}

	s.Total = s.Subtotal - s.Discount + s.Shipping
	return s
}
