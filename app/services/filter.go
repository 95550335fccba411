package services

import (
	"strings"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/pkg/collection"
)

// Category is a storefront tab. It is broader than the upstream category:
// bags are recognised by title.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryBags        Category = "bags"
	CategoryClothing    Category = "clothing"
	CategoryElectronics Category = "electronics"
	CategoryJewelery    Category = "jewelery"
)

// SortOrder orders a product listing by price.
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

var bagKeywords = []string{"bag", "backpack", "packsack", "pack"}

// ParseCategory maps a query value to a Category. Empty means all.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryAll, true
	case CategoryAll, CategoryBags, CategoryClothing, CategoryElectronics, CategoryJewelery:
		return c, true
	default:
		return "", false
	}
}

// ParseSortOrder maps a query value to a SortOrder. Empty means default.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortDefault, true
	case SortDefault, SortPriceAsc, SortPriceDesc:
		return o, true
	default:
		return "", false
	}
}

func isBag(p models.Product) bool {
	t := strings.ToLower(p.Title)
	return collection.Contains(bagKeywords, func(k string) bool { return strings.Contains(t, k) })
}

func isClothing(p models.Product) bool {
	return p.Category == "men's clothing" || p.Category == "women's clothing"
}

// FilterByCategory keeps the products that belong on the tab.
func FilterByCategory(products []models.Product, c Category) []models.Product {
	switch c {
	case CategoryBags:
		return collection.Filter(products, isBag)
	case CategoryClothing:
		return collection.Filter(products, func(p models.Product) bool { return isClothing(p) && !isBag(p) })
	case CategoryElectronics, CategoryJewelery:
		return collection.Filter(products, func(p models.Product) bool { return p.Category == string(c) })
	default:
		return products
	}
}

// SortByPrice returns a price-ordered copy. Ties keep catalog order.
func SortByPrice(products []models.Product, o SortOrder) []models.Product {
	switch o {
	case SortPriceAsc:
		return collection.SortStableBy(products, func(a, b models.Product) bool { return a.Price < b.Price })
	case SortPriceDesc:
		return collection.SortStableBy(products, func(a, b models.Product) bool { return a.Price > b.Price })
	default:
		return products
	}
}
