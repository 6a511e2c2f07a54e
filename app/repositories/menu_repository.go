package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/pkg/database"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
)

// MenuRepository is the MongoDB-backed MenuStore.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{col: database.Collection(ColMenu)}
}

// All returns the full catalogue.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("menu: find: %w", err)
	}
	items := []models.MenuItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("menu: decode: %w", err)
	}
	return items, nil
}

// Count returns the approximate number of menu items.
func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	return r.col.EstimatedDocumentCount(ctx)
}

// ReviewRepository is the MongoDB-backed ReviewStore.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{col: database.Collection(ColReviews)}
}

// All returns every review.
func (r *ReviewRepository) All(ctx context.Context) ([]models.Review, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("reviews: find: %w", err)
	}
	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("reviews: decode: %w", err)
	}
	return reviews, nil
}
