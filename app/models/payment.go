package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRecord is a settled payment. It is immutable once written and is
// the sole source of truth for revenue reporting; cart data is never
// consulted after settlement.
//
// MenuIDs lists the purchased menu items in order; CartIDs lists the cart
// entries this payment supersedes. Both are preserved verbatim from the
// settlement request.
type PaymentRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email"         json:"email"`
	Amount        float64            `bson:"amount"        json:"amount"`
	Currency      string             `bson:"currency"      json:"currency"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	MenuIDs       []string           `bson:"menuIds"       json:"menuIds"`
	CartIDs       []string           `bson:"cartIds"       json:"cartIds"`
	CreatedAt     time.Time          `bson:"createdAt"     json:"createdAt"`
}

// CategoryStat is one row of the per-category revenue breakdown.
// TotalRevenue is priced at the *current* catalogue price of each purchased
// item, not the price paid at purchase time, so figures shift when menu
// prices change. Known behavior, kept deliberately.
type CategoryStat struct {
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	TotalRevenue float64 `json:"totalRevenue"`
}
