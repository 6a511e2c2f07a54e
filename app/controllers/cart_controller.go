package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/bind"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/response"
)

// CartController manages pre-checkout cart entries. Entries carry a
// denormalized snapshot of the dish so the cart renders without a join.
type CartController struct {
	carts repositories.CartStore
}

func NewCartController(carts repositories.CartStore) *CartController {
	return &CartController{carts: carts}
}

// List returns the cart entries for the email given in the query string.
// A missing email yields an empty list, matching the storefront's initial
// unauthenticated render.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	entries, err := c.carts.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}
	response.Success(w, entries)
}

// Create adds one entry to the cart.
func (c *CartController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email  string  `json:"email" validate:"required,email"`
		MenuID string  `json:"menuId" validate:"required"`
		Name   string  `json:"name"`
		Image  string  `json:"image"`
		Price  float64 `json:"price" validate:"gte=0"`
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

	entry := models.CartEntry{
		Email:  body.Email,
		MenuID: body.MenuID,
		Name:   body.Name,
		Image:  body.Image,
		Price:  body.Price,
	}
	if err := c.carts.Create(r.Context(), &entry); err != nil {
		logger.WithCtx(r.Context()).Error("cart insert failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not add to cart")
		return
	}

	response.Created(w, map[string]string{"insertedId": entry.ID.Hex()})
}

// Delete removes one entry by id. Deleting an absent entry reports a
// deletedCount of 0 instead of failing.
func (c *CartController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := c.carts.Delete(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart delete failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not delete cart entry")
		return
	}

	response.Success(w, map[string]int64{"deletedCount": deleted})
}
