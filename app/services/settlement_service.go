package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/event"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
)

// EventPaymentSettled is fired with a models.PaymentRecord payload after a
// payment has been durably recorded.
const EventPaymentSettled = "payment.settled"

// SettleInput carries one completed payment from the client.
type SettleInput struct {
	Email         string   `json:"email" validate:"required,email"`
	Amount        float64  `json:"amount" validate:"required,gt=0"`
	Currency      string   `json:"currency"`
	TransactionID string   `json:"transactionId"`
	MenuIDs       []string `json:"menu_ids"`
	CartIDs       []string `json:"cartIds" validate:"required"`
}

// PaymentResult reports the persist step.
type PaymentResult struct {
	InsertedID string `json:"insertedId"`
}

// DeleteResult reports the cart retirement step. A non-empty Error means
// the payment is recorded but some cart entries may still be present.
type DeleteResult struct {
	DeletedCount int64  `json:"deletedCount"`
	Error        string `json:"error,omitempty"`
}

// SettleResult is the full settlement outcome. Both steps are reported so
// the caller can show partial results; there is no rollback.
type SettleResult struct {
	PaymentResult PaymentResult `json:"paymentResult"`
	DeleteResult  DeleteResult  `json:"deleteResult"`
}

// SettlementService durably records completed payments and retires the
// cart entries they supersede.
type SettlementService struct {
	payments repositories.PaymentStore
	carts    repositories.CartStore
}

func NewSettlementService(payments repositories.PaymentStore, carts repositories.CartStore) *SettlementService {
	return &SettlementService{payments: payments, carts: carts}
}

// Settle records the payment, then deletes the superseded cart entries,
// then fires a confirmation event.
//
// The payment insert is the durability boundary: once it succeeds the
// payment is settled no matter what happens to the cart delete. The steps
// are deliberately not wrapped in a transaction — losing a paid order is
// worse than showing a stale cart row. A failed delete is folded into the
// returned DeleteResult and left for reconciliation (RetireCarts).
func (s *SettlementService) Settle(ctx context.Context, in SettleInput) (SettleResult, error) {
	currency := in.Currency
	if currency == "" {
		currency = "usd"
	}

	rec := models.PaymentRecord{
		Email:         in.Email,
		Amount:        in.Amount,
		Currency:      currency,
		TransactionID: in.TransactionID,
		MenuIDs:       in.MenuIDs,
		CartIDs:       in.CartIDs,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := s.payments.Create(ctx, &rec)
	if err != nil {
		return SettleResult{}, fmt.Errorf("settlement: record payment: %w", err)
	}
	metrics.PaymentsSettled.Inc()

	result := SettleResult{PaymentResult: PaymentResult{InsertedID: id}}

	deleted, err := s.carts.DeleteMany(ctx, in.CartIDs)
	if err != nil {
		// Payment stays authoritative. The stale entries are picked up by
		// the reconcile sweep or a manual retire.
		metrics.SettlementCartDeletes.WithLabelValues("failed").Inc()
		logger.WithCtx(ctx).Error("cart retirement failed after settled payment",
			"payment_id", id, "cart_ids", in.CartIDs, "error", err)
		result.DeleteResult.Error = err.Error()
		event.Fire(EventPaymentSettled, rec)
		return result, nil
	}
	metrics.SettlementCartDeletes.WithLabelValues("ok").Inc()
	result.DeleteResult.DeletedCount = deleted

	event.Fire(EventPaymentSettled, rec)
	return result, nil
}

// RetireCarts re-issues the cart delete for an already-settled payment.
// Idempotent: entries deleted by an earlier attempt count as already gone,
// so a second call reports 0.
func (s *SettlementService) RetireCarts(ctx context.Context, paymentID string) (int64, error) {
	rec, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return 0, err
	}
	deleted, err := s.carts.DeleteMany(ctx, rec.CartIDs)
	if err != nil {
		return 0, fmt.Errorf("settlement: retire carts: %w", err)
	}
	return deleted, nil
}

// ReconcileWindow sweeps payments settled in the last window and retires
// any cart entries a failed Step-2 delete left behind. Safe to run
// repeatedly.
func (s *SettlementService) ReconcileWindow(ctx context.Context, window time.Duration) (int64, error) {
	recs, err := s.payments.FindSince(ctx, time.Now().Add(-window))
	if err != nil {
		return 0, fmt.Errorf("settlement: reconcile scan: %w", err)
	}

	var total int64
	for _, rec := range recs {
		deleted, err := s.carts.DeleteMany(ctx, rec.CartIDs)
		if err != nil {
			logger.WithCtx(ctx).Warn("reconcile delete failed",
				"payment_id", rec.ID.Hex(), "error", err)
			continue
		}
		total += deleted
	}
	return total, nil
}
