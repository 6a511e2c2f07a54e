package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahimDev/bistro-boss-server/config"
	"github.com/mahimDev/bistro-boss-server/database/seeders"
	"github.com/mahimDev/bistro-boss-server/pkg/database"
)

// bistro db:seed — load the sample catalogue into an empty database.
var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the menu, reviews and a demo admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := database.Connect(ctx); err != nil {
			return err
		}
		defer database.Close(context.Background()) //nolint:errcheck

		return seeders.Run(ctx)
	},
}
