package controllers

import (
	"net/http"
	"time"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/cache"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/response"
)

const catalogueTTL = 60 * time.Second

// MenuController serves the public dish catalogue and customer reviews.
// Both listings are read-mostly and go through the Redis cache.
type MenuController struct {
	menu    repositories.MenuStore
	reviews repositories.ReviewStore
}

func NewMenuController(menu repositories.MenuStore, reviews repositories.ReviewStore) *MenuController {
	return &MenuController{menu: menu, reviews: reviews}
}

// Menu lists every dish.
func (c *MenuController) Menu(w http.ResponseWriter, r *http.Request) {
	var items []models.MenuItem
	if cache.Get("menu:all", &items) {
		response.Success(w, items)
		return
	}

	items, err := c.menu.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("menu list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}

	if err := cache.Set("menu:all", items, catalogueTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("menu cache write failed", "error", err)
	}
	response.Success(w, items)
}

// Reviews lists every customer review.
func (c *MenuController) Reviews(w http.ResponseWriter, r *http.Request) {
	var reviews []models.Review
	if cache.Get("reviews:all", &reviews) {
		response.Success(w, reviews)
		return
	}

	reviews, err := c.reviews.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("review list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}

	if err := cache.Set("reviews:all", reviews, catalogueTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("review cache write failed", "error", err)
	}
	response.Success(w, reviews)
}
