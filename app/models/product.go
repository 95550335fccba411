package models

// Product is a catalog entry as served by the upstream product API.
// Qty is local stock, absent upstream; see WithDefaultQty.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Qty         *int    `json:"qty,omitempty"`
}

// StockQty returns Qty, or fallback when the product carries none.
func (p Product) StockQty(fallback int) int {
	if p.Qty == nil {
		return fallback
	}
	return *p.Qty
}

// WithDefaultQty returns a copy of products where every missing Qty is set
// to qty. Products that already carry a Qty are left alone.
func WithDefaultQty(products []Product, qty int) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		if p.Qty == nil {
			q := qty
			p.Qty = &q
		}
		out[i] = p
	}
	return out
}

// ProductOverride is an admin patch over the source product. Nil fields are
// inherited from the catalog.
type ProductOverride struct {
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Qty         *int     `json:"qty,omitempty"`
}

// IsEmpty reports whether the patch sets no field.
func (o ProductOverride) IsEmpty() bool {
	return o.Price == nil && o.Description == nil && o.Qty == nil
}

// Merge returns o with every field set in patch replaced.
func (o ProductOverride) Merge(patch ProductOverride) ProductOverride {
	if patch.Price != nil {
		o.Price = patch.Price
	}
	if patch.Description != nil {
		o.Description = patch.Description
	}
	if patch.Qty != nil {
		o.Qty = patch.Qty
	}
	return o
}

// ApplyTo shallow-merges the defined fields of o onto p.
func (o ProductOverride) ApplyTo(p Product) Product {
	if o.Price != nil {
		p.Price = *o.Price
	}
	if o.Description != nil {
		p.Description = *o.Description
	}
	if o.Qty != nil {
		q := *o.Qty
		p.Qty = &q
	}
	return p
}
