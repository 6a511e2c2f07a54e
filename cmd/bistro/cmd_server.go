package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mahimDev/bistro-boss-server/app/controllers"
	"github.com/mahimDev/bistro-boss-server/app/guard"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/app/routes"
	"github.com/mahimDev/bistro-boss-server/app/services"
	"github.com/mahimDev/bistro-boss-server/internal/server"
	"github.com/mahimDev/bistro-boss-server/pkg/router"
)

// bistro serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// bistro route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Registration only; no store connection is made and no handler runs.
		users := repositories.NewUserRepository()
		menu := repositories.NewMenuRepository()
		reviews := repositories.NewReviewRepository()
		carts := repositories.NewCartRepository()
		payments := repositories.NewPaymentRepository()

		r := router.New()
		routes.RegisterAPI(r, guard.New(users), routes.Controllers{
			Auth:    controllers.NewAuthController(users),
			User:    controllers.NewUserController(users),
			Menu:    controllers.NewMenuController(menu, reviews),
			Cart:    controllers.NewCartController(carts),
			Payment: controllers.NewPaymentController(nil, services.NewSettlementService(payments, carts), payments),
			Admin:   controllers.NewAdminController(services.NewAnalyticsService(users, menu, payments)),
		})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
