package controllers

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/app/services"
	revographql "github.com/shashiranjanraj/revoshop/pkg/graphql"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
)

var (
	productType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":       &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"description": &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"image":       &graphql.Field{Type: graphql.String},
			"qty":         &graphql.Field{Type: graphql.Int},
		},
	})

	cartItemType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title": &graphql.Field{Type: graphql.String},
			"price": &graphql.Field{Type: graphql.Float},
			"image": &graphql.Field{Type: graphql.String},
			"qty":   &graphql.Field{Type: graphql.Int},
		},
	})

	cartType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Cart",
		Fields: graphql.Fields{
			"items": &graphql.Field{Type: graphql.NewList(cartItemType)},
			"count": &graphql.Field{Type: graphql.Int},
			"total": &graphql.Field{Type: graphql.Float},
		},
	})

	summaryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderSummary",
		Fields: graphql.Fields{
			"items":       &graphql.Field{Type: graphql.NewList(cartItemType)},
			"count":       &graphql.Field{Type: graphql.Int},
			"subtotal":    &graphql.Field{Type: graphql.Float},
			"discount":    &graphql.Field{Type: graphql.Float},
			"shipping":    &graphql.Field{Type: graphql.Float},
			"total":       &graphql.Field{Type: graphql.Float},
			"coupon":      &graphql.Field{Type: graphql.String},
			"couponValid": &graphql.Field{Type: graphql.Boolean},
		},
	})

	couponCheckType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CouponCheck",
		Fields: graphql.Fields{
			"code":         &graphql.Field{Type: graphql.String},
			"valid":        &graphql.Field{Type: graphql.Boolean},
			"discountRate": &graphql.Field{Type: graphql.Float},
		},
	})
)

func productMap(p models.Product) map[string]interface{} {
	m := map[string]interface{}{
		"id":          p.ID,
		"title":       p.Title,
		"price":       p.Price,
		"description": p.Description,
		"category":    p.Category,
		"image":       p.Image,
	}
	if p.Qty != nil {
		m["qty"] = *p.Qty
	}
	return m
}

func cartItemMaps(items []models.CartItem) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = map[string]interface{}{
			"id": it.ID, "title": it.Title, "price": it.Price, "image": it.Image, "qty": it.Qty,
		}
	}
	return out
}

// NewGraphQLSchema builds the read-only storefront schema. Resolvers read the
// requesting client's store from the context set by ClientScope.
func NewGraphQLSchema(sf *services.Storefront) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, _ := p.Args["category"].(string)
					sort, _ := p.Args["sort"].(string)

					c, ok := services.ParseCategory(category)
					if !ok {
						return nil, errors.New("unknown category " + category)
					}
					o, ok := services.ParseSortOrder(sort)
					if !ok {
						return nil, errors.New("unknown sort " + sort)
					}

					products, err := sf.Listing(p.Context, middleware.ClientStore(p.Context), c, o)
					if err != nil {
						return nil, err
					}
					out := make([]interface{}, len(products))
					for i, prod := range products {
						out[i] = productMap(prod)
					}
					return out, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					prod, err := sf.Product(p.Context, middleware.ClientStore(p.Context), id)
					if errors.Is(err, services.ErrProductNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return productMap(prod), nil
				},
			},
			"stock": &graphql.Field{
				Type: graphql.Int,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return sf.Stock(p.Context, middleware.ClientStore(p.Context), id), nil
				},
			},
			"cart": &graphql.Field{
				Type: cartType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items := repositories.NewCartRepository(middleware.ClientStore(p.Context)).Items(p.Context)
					return map[string]interface{}{
						"items": cartItemMaps(items),
						"count": services.CartCount(items),
						"total": services.CartTotal(items),
					}, nil
				},
			},
			"summary": &graphql.Field{
				Type: summaryType,
				Args: graphql.FieldConfigArgument{
					"coupon": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					coupon, _ := p.Args["coupon"].(string)
					items := repositories.NewCartRepository(middleware.ClientStore(p.Context)).Items(p.Context)
					s := services.Summarize(items, coupon)
					return map[string]interface{}{
						"items":       cartItemMaps(s.Items),
						"count":       s.Count,
						"subtotal":    s.Subtotal,
						"discount":    s.Discount,
						"shipping":    s.Shipping,
						"total":       s.Total,
						"coupon":      s.Coupon,
						"couponValid": s.CouponValid,
					}, nil
				},
			},
			"validateCoupon": &graphql.Field{
				Type: couponCheckType,
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					code, _ := p.Args["code"].(string)
					check := checkCoupon(code)
					return map[string]interface{}{
						"code":         check.Code,
						"valid":        check.Valid,
						"discountRate": check.DiscountRate,
					}, nil
				},
			},
		},
	})

	return revographql.NewSchema(query)
}

// GraphQL returns the /graphql handler for schema.
func GraphQL(schema graphql.Schema) http.HandlerFunc {
	return revographql.Handler(schema)
}
