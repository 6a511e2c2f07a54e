package services

import (
	"context"
	"fmt"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/collection"
)

// Summary is the admin dashboard headline block. Counts are approximate;
// Revenue is exact over the payment history and 0 when it is empty.
type Summary struct {
	Users     int64   `json:"users"`
	MenuItems int64   `json:"menuItems"`
	Orders    int64   `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// AnalyticsService aggregates revenue and category statistics from the
// payment history joined against the menu catalogue. Payment records are
// the sole revenue source; cart data is never consulted.
type AnalyticsService struct {
	users    repositories.UserStore
	menu     repositories.MenuStore
	payments repositories.PaymentStore
}

func NewAnalyticsService(users repositories.UserStore, menu repositories.MenuStore, payments repositories.PaymentStore) *AnalyticsService {
	return &AnalyticsService{users: users, menu: menu, payments: payments}
}

// Summary returns collection cardinalities and total revenue.
func (s *AnalyticsService) Summary(ctx context.Context) (Summary, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("analytics: user count: %w", err)
	}
	menuItems, err := s.menu.Count(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("analytics: menu count: %w", err)
	}
	orders, err := s.payments.Count(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("analytics: order count: %w", err)
	}
	revenue, err := s.payments.TotalRevenue(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("analytics: revenue: %w", err)
	}

	return Summary{Users: users, MenuItems: menuItems, Orders: orders, Revenue: revenue}, nil
}

// CategoryBreakdown expands every payment's purchased-item list into one
// row per item, joins each row against the current catalogue, and groups
// by category. Purchased items that no longer exist in the catalogue drop
// out of the join. Revenue is priced at the item's current price, so the
// figures shift when menu prices change after a sale — known behavior.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context) ([]models.CategoryStat, error) {
	items, err := s.menu.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: load menu: %w", err)
	}
	payments, err := s.payments.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: load payments: %w", err)
	}

	byID := collection.KeyBy(items, func(m models.MenuItem) string { return m.ID.Hex() })
	purchased := collection.Flatten(collection.Map(payments, func(p models.PaymentRecord) []string {
		return p.MenuIDs
	}))

	grouped := map[string]*models.CategoryStat{}
	for _, id := range purchased {
		item, ok := byID[id]
		if !ok {
			continue
		}
		stat, ok := grouped[item.Category]
		if !ok {
			stat = &models.CategoryStat{Category: item.Category}
			grouped[item.Category] = stat
		}
		stat.Quantity++
		stat.TotalRevenue += item.Price
	}

	stats := make([]models.CategoryStat, 0, len(grouped))
	for _, stat := range grouped {
		stats = append(stats, *stat)
	}
	// Grouping is the only contract; sort for stable output anyway.
	collection.SortBy(stats, func(a, b models.CategoryStat) bool {
		return a.Category < b.Category
	})
	return stats, nil
}
