package models

// CartItem is one cart line. Qty is always at least 1 while stored.
type CartItem struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Qty   int     `json:"qty"`
}

// LineOf builds a cart line for p with the given quantity.
func LineOf(p Product, qty int) CartItem {
	return CartItem{ID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image, Qty: qty}
}

// OrderSummary is the checkout view of a cart.
type OrderSummary struct {
	Items       []CartItem `json:"items"`
	Count       int        `json:"count"`
	Subtotal    float64    `json:"subtotal"`
	Discount    float64    `json:"discount"`
	Shipping    float64    `json:"shipping"`
	Total       float64    `json:"total"`
	Coupon      string     `json:"coupon,omitempty"`
	CouponValid bool       `json:"coupon_valid"`
}
