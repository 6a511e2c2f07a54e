package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/pkg/database"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
)

// PaymentRepository is the MongoDB-backed PaymentStore.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{col: database.Collection(ColPayments)}
}

// Create inserts the payment record and returns the generated id as a hex
// string. This insert is the settlement durability boundary.
func (r *PaymentRepository) Create(ctx context.Context, rec *models.PaymentRecord) (string, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())

	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("payments: insert: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("payments: unexpected inserted id %T", res.InsertedID)
	}
	rec.ID = oid
	return oid.Hex(), nil
}

// FindByID returns a single payment record.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (models.PaymentRecord, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.PaymentRecord{}, ErrNotFound
	}
	var rec models.PaymentRecord
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PaymentRecord{}, ErrNotFound
	}
	if err != nil {
		return models.PaymentRecord{}, fmt.Errorf("payments: find by id: %w", err)
	}
	return rec, nil
}

// FindByEmail returns the payment history for one payer.
func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]models.PaymentRecord, error) {
	return r.find(ctx, bson.M{"email": email})
}

// FindSince returns payments created at or after since. Used by the stale
// cart reconciliation sweep.
func (r *PaymentRepository) FindSince(ctx context.Context, since time.Time) ([]models.PaymentRecord, error) {
	return r.find(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

// All returns the full payment history.
func (r *PaymentRepository) All(ctx context.Context) ([]models.PaymentRecord, error) {
	return r.find(ctx, bson.M{})
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]models.PaymentRecord, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("payments: find: %w", err)
	}
	recs := []models.PaymentRecord{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("payments: decode: %w", err)
	}
	return recs, nil
}

// Count returns the approximate number of settled payments.
func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	return r.col.EstimatedDocumentCount(ctx)
}

// TotalRevenue sums the amount field across all payments with a $group
// pipeline. An empty collection yields 0, never an error.
func (r *PaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("payments: revenue aggregate: %w", err)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("payments: revenue decode: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
