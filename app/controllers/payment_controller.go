package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/app/services"
	"github.com/mahimDev/bistro-boss-server/pkg/bind"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/response"
)

// PaymentController handles payment authorization, settlement and the
// per-customer payment history.
type PaymentController struct {
	payments   *services.PaymentService
	settlement *services.SettlementService
	history    repositories.PaymentStore
}

func NewPaymentController(payments *services.PaymentService, settlement *services.SettlementService, history repositories.PaymentStore) *PaymentController {
	return &PaymentController{payments: payments, settlement: settlement, history: history}
}

// CreateIntent asks the processor to authorize the given amount and hands
// the opaque client secret back for the client-side card flow.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	}

	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	secret, err := c.payments.CreateAuthorization(r.Context(), body.Price)
	if errors.Is(err, services.ErrPaymentAuthorizationFailed) {
		logger.WithCtx(r.Context()).Warn("payment authorization rejected", "error", err)
		response.Error(w, http.StatusPaymentRequired, "payment authorization failed")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment intent failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}

	response.Success(w, map[string]string{"clientSecret": secret})
}

// Settle records a completed payment and retires its cart entries. Both
// step outcomes are reported; a failed cart delete does not undo the
// recorded payment.
func (c *PaymentController) Settle(w http.ResponseWriter, r *http.Request) {
	var in services.SettleInput

	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.settlement.Settle(r.Context(), in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("settlement failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not record payment")
		return
	}

	response.Success(w, result)
}

// History lists the caller's settled payments, oldest first.
func (c *PaymentController) History(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	recs, err := c.history.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment history failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}
	response.Success(w, recs)
}

// Reconcile re-issues the cart retirement for an already-settled payment.
// Admin only; idempotent.
func (c *PaymentController) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := c.settlement.RetireCarts(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("reconcile failed", "payment_id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not reconcile payment")
		return
	}

	response.Success(w, map[string]int64{"deletedCount": deleted})
}
