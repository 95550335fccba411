// Package kernel assembles the HTTP handler: global middleware first, then
// the application routes.
package kernel

import (
	"net/http"

	"github.com/shashiranjanraj/revoshop/app/routes"
	"github.com/shashiranjanraj/revoshop/pkg/metrics"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
	"github.com/shashiranjanraj/revoshop/pkg/reqid"
	"github.com/shashiranjanraj/revoshop/pkg/response"
	"github.com/shashiranjanraj/revoshop/pkg/router"
)

type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(deps routes.Deps) (*HTTPKernel, error) {
	r := router.New()

	// Global middleware, outermost first:
	//  1. metrics: sees total latency
	//  2. request id: set before anything logs
	//  3. logger: logs request_id from context
	//  4. recovery: panics go through the request logger
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if err := routes.RegisterAPI(r, deps); err != nil {
		return nil, err
	}
	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists the named routes for route:list.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }
