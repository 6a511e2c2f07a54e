// Package seeders loads demo data into an empty database.
package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/database"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
)

// Run seeds the menu, reviews and a demo admin account. Collections that
// already hold documents are left untouched, so the seeder is safe to run
// against a live database.
func Run(ctx context.Context) error {
	if err := seedMenu(ctx); err != nil {
		return err
	}
	if err := seedReviews(ctx); err != nil {
		return err
	}
	return seedAdmin(ctx)
}

func seedMenu(ctx context.Context) error {
	col := database.Collection(repositories.ColMenu)

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("seed: menu count: %w", err)
	}
	if n > 0 {
		logger.Info("seed: menu already populated, skipping", "count", n)
		return nil
	}

	items := []interface{}{
		models.MenuItem{Name: "Roast Duck Breast", Recipe: "Roasted duck breast, confit leg, volute of cauliflower.", Category: "popular", Price: 14.5},
		models.MenuItem{Name: "Tuna Niçoise", Recipe: "Seared tuna, green beans, tomatoes, olives, hard-boiled egg.", Category: "salad", Price: 14.5},
		models.MenuItem{Name: "Escalope de Veau", Recipe: "Breaded veal cutlet, lemon butter, capers.", Category: "popular", Price: 12.5},
		models.MenuItem{Name: "Chicken and Walnut Salad", Recipe: "Poached chicken, toasted walnuts, celery, grapes.", Category: "salad", Price: 10.0},
		models.MenuItem{Name: "Margherita Pizza", Recipe: "San Marzano tomato, mozzarella di bufala, basil.", Category: "pizza", Price: 9.5},
		models.MenuItem{Name: "Quattro Formaggi", Recipe: "Mozzarella, gorgonzola, parmesan, taleggio.", Category: "pizza", Price: 11.0},
		models.MenuItem{Name: "French Onion Soup", Recipe: "Caramelized onions, beef broth, gruyère crouton.", Category: "soup", Price: 7.0},
		models.MenuItem{Name: "Lobster Bisque", Recipe: "Cream of lobster, cognac, chive oil.", Category: "soup", Price: 9.0},
		models.MenuItem{Name: "Chocolate Fondant", Recipe: "Warm chocolate cake, molten center, vanilla ice cream.", Category: "dessert", Price: 6.5},
		models.MenuItem{Name: "Crème Brûlée", Recipe: "Vanilla custard, caramelized sugar crust.", Category: "dessert", Price: 6.0},
		models.MenuItem{Name: "Fresh Lemonade", Recipe: "Pressed lemons, cane sugar, mint.", Category: "drinks", Price: 3.5},
		models.MenuItem{Name: "Espresso", Recipe: "Double shot, single origin.", Category: "drinks", Price: 2.5},
	}

	if _, err := col.InsertMany(ctx, items); err != nil {
		return fmt.Errorf("seed: menu insert: %w", err)
	}
	logger.Info("seed: menu populated", "count", len(items))
	return nil
}

func seedReviews(ctx context.Context) error {
	col := database.Collection(repositories.ColReviews)

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("seed: review count: %w", err)
	}
	if n > 0 {
		logger.Info("seed: reviews already populated, skipping", "count", n)
		return nil
	}

	reviews := []interface{}{
		models.Review{Name: "Ava Martin", Details: "The duck was cooked perfectly and the service was warm and quick.", Rating: 5},
		models.Review{Name: "Noah Chen", Details: "Great pizza, generous portions. The fondant is a must.", Rating: 4},
		models.Review{Name: "Mia Lopez", Details: "Cozy atmosphere and the lobster bisque is outstanding.", Rating: 5},
	}

	if _, err := col.InsertMany(ctx, reviews); err != nil {
		return fmt.Errorf("seed: review insert: %w", err)
	}
	logger.Info("seed: reviews populated", "count", len(reviews))
	return nil
}

func seedAdmin(ctx context.Context) error {
	col := database.Collection(repositories.ColUsers)

	err := col.FindOne(ctx, map[string]string{"email": "admin@bistroboss.app"}).Err()
	if err == nil {
		logger.Info("seed: admin account present, skipping")
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("seed: admin lookup: %w", err)
	}

	admin := models.User{Name: "Bistro Admin", Email: "admin@bistroboss.app", Role: models.RoleAdmin}
	if _, err := col.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("seed: admin insert: %w", err)
	}
	logger.Info("seed: admin account created", "email", admin.Email)
	return nil
}
