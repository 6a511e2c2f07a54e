package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/pkg/database"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
)

// CartRepository is the MongoDB-backed CartStore.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository() *CartRepository {
	return &CartRepository{col: database.Collection(ColCarts)}
}

// FindByEmail returns all cart entries owned by the given email.
func (r *CartRepository) FindByEmail(ctx context.Context, email string) ([]models.CartEntry, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("carts: find: %w", err)
	}
	entries := []models.CartEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("carts: decode: %w", err)
	}
	return entries, nil
}

// Create persists a new cart entry and fills in the generated id.
func (r *CartRepository) Create(ctx context.Context, entry *models.CartEntry) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	res, err := r.col.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("carts: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return nil
}

// Delete removes a single cart entry. Deleting an absent id reports 0
// without error.
func (r *CartRepository) Delete(ctx context.Context, id string) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("carts: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteMany removes every entry whose id is in ids with a single bulk
// delete. Malformed ids are dropped from the filter, so they count as
// already absent rather than failing the whole call.
func (r *CartRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("carts: delete many: %w", err)
	}
	return res.DeletedCount, nil
}
