package routes

import (
	"time"

	"github.com/shashiranjanraj/revoshop/app/controllers"
	"github.com/shashiranjanraj/revoshop/app/services"
	"github.com/shashiranjanraj/revoshop/config"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/metrics"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
	"github.com/shashiranjanraj/revoshop/pkg/router"
	"github.com/shashiranjanraj/revoshop/pkg/ws"
)

// Deps are the long-lived objects the handlers share.
type Deps struct {
	Store      kv.Store // unscoped base store
	Notifier   *kv.Notifier
	Hub        *ws.Hub
	Storefront *services.Storefront
}

func RegisterAPI(r *router.Router, d Deps) error {
	system := controllers.NewSystemController(d.Store, d.Hub, d.Notifier)
	products := controllers.NewProductController(d.Storefront)
	cart := controllers.NewCartController(d.Storefront)
	coupons := controllers.NewCouponController()
	auth := controllers.NewAuthController()
	admin := controllers.NewAdminController(d.Storefront)

	schema, err := controllers.NewGraphQLSchema(d.Storefront)
	if err != nil {
		return err
	}

	r.Get("/healthz", "health", system.Health)
	r.Get("/metrics", "metrics", metrics.Handler())

	scoped := r.Group("/", middleware.ClientScope(d.Store, d.Notifier))
	scoped.Post("/graphql", "graphql", controllers.GraphQL(schema))

	throttled := middleware.RateLimit(config.Int("RATE_LIMIT_PER_MINUTE", 30), time.Minute)

	api := scoped.Group("/api")
	api.Get("/events", "events.stream", system.Events)
	api.Get("/events/sse", "events.sse", system.EventStream)

	api.Get("/products", "products.index", products.Index)
	api.Get("/products/{id}", "products.show", products.Show)
	api.Get("/products/{id}/stock", "products.stock", products.Stock)

	api.Get("/cart", "cart.show", cart.Show)
	api.Post("/cart/items", "cart.add", cart.Add)
	api.Patch("/cart/items/{id}", "cart.change", cart.Change)
	api.Delete("/cart/items/{id}", "cart.remove", cart.Remove)
	api.Delete("/cart", "cart.clear", cart.Clear)
	api.Post("/cart/summary", "cart.summary", cart.Summary)

	api.Post("/coupons", "coupons.generate", coupons.Generate, throttled)
	api.Post("/coupons/validate", "coupons.validate", coupons.Validate)

	api.Post("/auth/signin", "auth.signin", auth.SignIn, throttled)
	api.Post("/auth/logout", "auth.logout", auth.Logout)
	api.Get("/auth/me", "auth.me", auth.Me)

	adminGroup := api.Group("/admin", auth.RequireAdmin)
	adminGroup.Get("/products", "admin.products", admin.Products)
	adminGroup.Patch("/overrides/{id}", "admin.overrides.update", admin.UpdateOverride)
	adminGroup.Delete("/overrides/{id}", "admin.overrides.delete", admin.DeleteOverride)
	adminGroup.Delete("/overrides", "admin.overrides.clear", admin.ClearOverrides)

	return nil
}
