// Package routes declares the HTTP surface of the ordering service.
package routes

import (
	"net/http"
	"time"

	"github.com/mahimDev/bistro-boss-server/app/controllers"
	"github.com/mahimDev/bistro-boss-server/app/guard"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
	"github.com/mahimDev/bistro-boss-server/pkg/middleware"
	"github.com/mahimDev/bistro-boss-server/pkg/router"
)

// Controllers bundles everything RegisterAPI mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Menu    *controllers.MenuController
	Cart    *controllers.CartController
	Payment *controllers.PaymentController
	Admin   *controllers.AdminController
}

// RegisterAPI mounts every route. Paths and response shapes are frozen:
// the browser storefront consumes them as-is.
func RegisterAPI(r *router.Router, g *guard.Guard, c Controllers) {
	// Payment endpoints talk to the external processor; cap per-client
	// throughput so a misbehaving client cannot hammer it.
	payRate := middleware.RateLimit(30, time.Minute)

	// Public surface.
	r.Post("/jwt", "auth.token", c.Auth.IssueToken)
	r.Post("/user", "users.create", c.User.Create)
	r.Get("/menu", "menu.list", c.Menu.Menu)
	r.Get("/reviews", "reviews.list", c.Menu.Reviews)
	r.Get("/cart", "cart.list", c.Cart.List)
	r.Post("/cart", "cart.create", c.Cart.Create)
	r.Delete("/cart/{id}", "cart.delete", c.Cart.Delete)
	r.Post("/create-payment-intent", "payments.intent", c.Payment.CreateIntent, payRate)
	r.Post("/payment", "payments.settle", c.Payment.Settle, payRate)

	// Authenticated surface. Self-scoped reads verify the path email
	// against the token principal.
	authed := r.Group("", g.Authenticate)
	authed.Get("/user/admin/{email}", "auth.check_admin", c.Auth.CheckAdmin, g.RequireSelf("email"))
	authed.Get("/payment/{email}", "payments.history", c.Payment.History, g.RequireSelf("email"))

	// Admin surface. Role is checked against the stored record on every
	// request, so a demoted admin is locked out immediately.
	admin := r.Group("", g.Authenticate, g.RequireAdmin)
	admin.Get("/users", "users.list", c.User.List)
	admin.Patch("/user/admin/{id}", "users.promote", c.User.Promote)
	admin.Delete("/user/{id}", "users.delete", c.User.Delete)
	admin.Post("/payment/{id}/reconcile", "payments.reconcile", c.Payment.Reconcile)
	admin.Get("/admin-stats", "admin.stats", c.Admin.Stats)
	admin.Get("/order-stats", "admin.order_stats", c.Admin.OrderStats)

	// Operational endpoints.
	r.Get("/metrics", "ops.metrics", metrics.Handler())
	r.Get("/healthz", "ops.health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
}
