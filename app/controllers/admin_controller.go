package controllers

import (
	"net/http"

	"github.com/mahimDev/bistro-boss-server/app/services"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/response"
)

// AdminController serves the dashboard aggregates. Every route here sits
// behind the admin guard.
type AdminController struct {
	analytics *services.AnalyticsService
}

func NewAdminController(analytics *services.AnalyticsService) *AdminController {
	return &AdminController{analytics: analytics}
}

// Stats returns the headline dashboard block.
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	summary, err := c.analytics.Summary(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin stats failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}
	response.Success(w, summary)
}

// OrderStats returns the per-category sales breakdown.
func (c *AdminController) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.analytics.CategoryBreakdown(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("order stats failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}
	response.Success(w, stats)
}
