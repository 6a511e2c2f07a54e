// Package repositories provides data access for the five MongoDB
// collections. Each store is exposed as a small interface so the guard,
// settlement and analytics services can be tested against in-memory fakes.
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mahimDev/bistro-boss-server/app/models"
)

// ErrNotFound is returned when a referenced document does not exist.
// Deletes of absent documents are no-ops, not errors.
var ErrNotFound = errors.New("repositories: not found")

// Collection names in bistroBossDb.
const (
	ColUsers    = "users"
	ColMenu     = "menu"
	ColReviews  = "reviews"
	ColCarts    = "carts"
	ColPayments = "payments"
)

// UserStore handles account records.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	All(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetRole(ctx context.Context, id string, role models.Role) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// MenuStore reads the dish catalogue.
type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewStore reads customer reviews.
type ReviewStore interface {
	All(ctx context.Context) ([]models.Review, error)
}

// CartStore handles cart entries.
type CartStore interface {
	FindByEmail(ctx context.Context, email string) ([]models.CartEntry, error)
	Create(ctx context.Context, entry *models.CartEntry) error
	// Delete removes one entry by id and reports how many documents went
	// away (0 when the id was already absent).
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteMany removes every entry whose id is in ids. Unknown or
	// malformed ids are skipped silently.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// PaymentStore handles the immutable payment history. There is no update
// or delete: settled payments are written once and only ever read.
type PaymentStore interface {
	Create(ctx context.Context, rec *models.PaymentRecord) (string, error)
	FindByID(ctx context.Context, id string) (models.PaymentRecord, error)
	FindByEmail(ctx context.Context, email string) ([]models.PaymentRecord, error)
	FindSince(ctx context.Context, since time.Time) ([]models.PaymentRecord, error)
	All(ctx context.Context) ([]models.PaymentRecord, error)
	Count(ctx context.Context) (int64, error)
	// TotalRevenue sums the amount field across every payment record.
	// Zero when the collection is empty.
	TotalRevenue(ctx context.Context) (float64, error)
}
