// Package server boots the ordering service: configuration, storage,
// cache, background workers and the HTTP surface.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stripe/stripe-go/v76"

	"github.com/mahimDev/bistro-boss-server/app/controllers"
	"github.com/mahimDev/bistro-boss-server/app/guard"
	"github.com/mahimDev/bistro-boss-server/app/listeners"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/app/routes"
	"github.com/mahimDev/bistro-boss-server/app/services"
	"github.com/mahimDev/bistro-boss-server/config"
	"github.com/mahimDev/bistro-boss-server/pkg/cache"
	"github.com/mahimDev/bistro-boss-server/pkg/database"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
	"github.com/mahimDev/bistro-boss-server/pkg/middleware"
	"github.com/mahimDev/bistro-boss-server/pkg/reqid"
	"github.com/mahimDev/bistro-boss-server/pkg/router"
	"github.com/mahimDev/bistro-boss-server/pkg/schedule"
	"github.com/mahimDev/bistro-boss-server/pkg/workerpool"
)

const shutdownGrace = 10 * time.Second

// reconcileWindow bounds the periodic sweep that retires cart entries a
// failed settlement delete left behind.
const reconcileWindow = 24 * time.Hour

// Start boots the service and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Close(context.Background()) //nolint:errcheck

	if err := cache.Connect(); err != nil {
		// Cache is optional; listings fall through to the store.
		logger.Warn("redis unavailable, serving uncached", "error", err)
	}

	stripe.Key = config.StripeSecret()

	if config.AppEnv() == "production" || config.AppEnv() == "prod" {
		h := logger.AttachMongo(database.Collection("logs"))
		defer h.Close()
	}

	// Wiring: repositories, services, controllers.
	users := repositories.NewUserRepository()
	menu := repositories.NewMenuRepository()
	reviews := repositories.NewReviewRepository()
	carts := repositories.NewCartRepository()
	payments := repositories.NewPaymentRepository()

	paymentSvc := services.NewPaymentService()
	settlementSvc := services.NewSettlementService(payments, carts)
	analyticsSvc := services.NewAnalyticsService(users, menu, payments)

	pool := workerpool.New(4)
	defer pool.Shutdown()
	listeners.Register(pool)

	schedule.Every(6).Hours().WithoutOverlapping().Name("cart-reconcile").Run(func() {
		sctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		deleted, err := settlementSvc.ReconcileWindow(sctx, reconcileWindow)
		if err != nil {
			logger.Error("reconcile sweep failed", "error", err)
			return
		}
		if deleted > 0 {
			logger.Info("reconcile sweep retired stale cart entries", "deleted", deleted)
		}
	})
	schedule.Start(ctx)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
	)

	g := guard.New(users)
	routes.RegisterAPI(r, g, routes.Controllers{
		Auth:    controllers.NewAuthController(users),
		User:    controllers.NewUserController(users),
		Menu:    controllers.NewMenuController(menu, reviews),
		Cart:    controllers.NewCartController(carts),
		Payment: controllers.NewPaymentController(paymentSvc, settlementSvc, payments),
		Admin:   controllers.NewAdminController(analyticsSvc),
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bistro boss server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
